package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound                   = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists              = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput               = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict        = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized               = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidTransition          = NewDomainError("INVALID_TRANSITION", "Status transition not allowed")
	ErrInsufficientStock          = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock on hand")
	ErrInsufficientAvailableStock = NewDomainError("INSUFFICIENT_AVAILABLE_STOCK", "Insufficient available stock to reserve")
	ErrOverAllocation             = NewDomainError("OVER_ALLOCATION", "Allocations exceed payment amount")
	ErrDocumentLocked             = NewDomainError("DOCUMENT_LOCKED", "Document is not editable in its current status")
	ErrPaymentLocked              = NewDomainError("PAYMENT_LOCKED", "Payment is not editable in its current status")
	ErrInvalidContactType         = NewDomainError("INVALID_CONTACT_TYPE", "Contact role does not match payment direction")
)
