package dto

import "net/http"

// Error code constants, format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeBusinessRule       = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock  = "ERR_INSUFFICIENT_STOCK"
	ErrCodeOverAllocation     = "ERR_OVER_ALLOCATION"
	ErrCodeDocumentLocked     = "ERR_DOCUMENT_LOCKED"
	ErrCodePaymentLocked      = "ERR_PAYMENT_LOCKED"
	ErrCodeInvalidContactType = "ERR_INVALID_CONTACT_TYPE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodeOverAllocation:     http.StatusUnprocessableEntity,
	ErrCodeDocumentLocked:     http.StatusUnprocessableEntity,
	ErrCodePaymentLocked:      http.StatusUnprocessableEntity,
	ErrCodeInvalidContactType: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                    ErrCodeNotFound,
	"ALREADY_EXISTS":               ErrCodeAlreadyExists,
	"INVALID_INPUT":                ErrCodeInvalidInput,
	"CONCURRENCY_CONFLICT":         ErrCodeConcurrencyConflict,
	"UNAUTHORIZED":                 ErrCodeUnauthorized,
	"INVALID_TRANSITION":           ErrCodeInvalidState,
	"INVALID_STATE":                ErrCodeInvalidState,
	"INSUFFICIENT_STOCK":           ErrCodeInsufficientStock,
	"INSUFFICIENT_AVAILABLE_STOCK": ErrCodeInsufficientStock,
	"OVER_ALLOCATION":              ErrCodeOverAllocation,
	"DOCUMENT_LOCKED":              ErrCodeDocumentLocked,
	"PAYMENT_LOCKED":               ErrCodePaymentLocked,
	"INVALID_CONTACT_TYPE":         ErrCodeInvalidContactType,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes without an explicit mapping are treated as business rule
// violations: everything a domain constructor or transition rejects is a
// 422, not a 500.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return ErrCodeBusinessRule
}
