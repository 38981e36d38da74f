package partner

import (
	"time"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateContactRequest represents a request to register a customer or vendor
type CreateContactRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=150"`
	ContactType string     `json:"contact_type" binding:"required,oneof=CUSTOMER VENDOR BOTH"`
	Email       string     `json:"email" binding:"omitempty,email,max=150"`
	Phone       string     `json:"phone" binding:"omitempty,max=30"`
	OperatorID  *uuid.UUID `json:"-"`
}

// UpdateContactRequest changes a contact's descriptive fields
type UpdateContactRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=150"`
	Email *string `json:"email" binding:"omitempty,email,max=150"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	ContactType partner.ContactType `json:"contact_type"`
	Email       string              `json:"email,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Balance     decimal.Decimal     `json:"balance"`
	Active      bool                `json:"active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Version     int                 `json:"version"`
}

// ToContactResponse converts a domain contact to a response
func ToContactResponse(c *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContactType: c.ContactType,
		Email:       c.Email,
		Phone:       c.Phone,
		Balance:     c.Balance,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// ToContactResponses converts a slice of contacts to responses
func ToContactResponses(contacts []partner.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}

// ContactListFilter represents filter options for the contact list
type ContactListFilter struct {
	Search      string `form:"search"`
	ContactType string `form:"contact_type" binding:"omitempty,oneof=CUSTOMER VENDOR BOTH"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BalanceEntryResponse represents one balance adjustment in API responses
type BalanceEntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	ContactID     uuid.UUID       `json:"contact_id"`
	PaymentID     *uuid.UUID      `json:"payment_id,omitempty"`
	Delta         decimal.Decimal `json:"delta"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToBalanceEntryResponses converts a slice of balance entries to responses
func ToBalanceEntryResponses(entries []partner.BalanceEntry) []BalanceEntryResponse {
	responses := make([]BalanceEntryResponse, len(entries))
	for i := range entries {
		responses[i] = BalanceEntryResponse{
			ID:            entries[i].ID,
			ContactID:     entries[i].ContactID,
			PaymentID:     entries[i].PaymentID,
			Delta:         entries[i].Delta,
			BalanceBefore: entries[i].BalanceBefore,
			BalanceAfter:  entries[i].BalanceAfter,
			Note:          entries[i].Note,
			CreatedAt:     entries[i].CreatedAt,
		}
	}
	return responses
}
