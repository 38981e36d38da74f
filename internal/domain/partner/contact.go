package partner

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactType declares which sides of the ledger a contact can sit on
type ContactType string

const (
	ContactTypeCustomer ContactType = "CUSTOMER"
	ContactTypeVendor   ContactType = "VENDOR"
	ContactTypeBoth     ContactType = "BOTH"
)

// String returns the string representation of ContactType
func (t ContactType) String() string {
	return string(t)
}

// IsValid returns true if the contact type is valid
func (t ContactType) IsValid() bool {
	return t == ContactTypeCustomer || t == ContactTypeVendor || t == ContactTypeBoth
}

// IsCustomerCapable returns true if the contact can be invoiced and pay us
func (t ContactType) IsCustomerCapable() bool {
	return t == ContactTypeCustomer || t == ContactTypeBoth
}

// IsVendorCapable returns true if the contact can bill us and be paid
func (t ContactType) IsVendorCapable() bool {
	return t == ContactTypeVendor || t == ContactTypeBoth
}

// Contact is a customer, vendor or both. Balance is a denormalized running
// total adjusted by every settlement: receipts increase it, payments decrease
// it. Every adjustment appends a BalanceEntry for audit.
type Contact struct {
	shared.AuditedAggregateRoot
	Name        string          `gorm:"type:varchar(150);not null;index"`
	ContactType ContactType     `gorm:"type:varchar(10);not null;index"`
	Email       string          `gorm:"type:varchar(150)"`
	Phone       string          `gorm:"type:varchar(30)"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new active contact with a zero balance
func NewContact(name string, contactType ContactType) (*Contact, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if !contactType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTACT_TYPE", "Invalid contact type")
	}

	return &Contact{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 name,
		ContactType:          contactType,
		Balance:              decimal.Zero,
		Active:               true,
	}, nil
}

// AdjustBalance applies a signed delta to the running balance and returns
// the audit entry recording the movement
func (c *Contact) AdjustBalance(delta decimal.Decimal, paymentID *uuid.UUID, note string) (*BalanceEntry, error) {
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Balance delta cannot be zero")
	}

	before := c.Balance
	c.Balance = c.Balance.Add(delta)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	entry := NewBalanceEntry(c.ID, delta, before, c.Balance, paymentID, note)
	c.AddDomainEvent(NewContactBalanceAdjustedEvent(c, delta, before))

	return entry, nil
}

// UpdateDetails changes the contact's descriptive fields
func (c *Contact) UpdateDetails(name, email, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the contact
func (c *Contact) Deactivate() error {
	if !c.Active {
		return shared.ErrNotFound
	}
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// BalanceEntry is an immutable audit record of one running-balance adjustment
type BalanceEntry struct {
	shared.BaseEntity
	ContactID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_balance_entry_contact"`
	PaymentID     *uuid.UUID      `gorm:"type:uuid;index"`
	Delta         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note          string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (BalanceEntry) TableName() string {
	return "contact_balance_entries"
}

// NewBalanceEntry creates a new balance audit entry
func NewBalanceEntry(contactID uuid.UUID, delta, before, after decimal.Decimal, paymentID *uuid.UUID, note string) *BalanceEntry {
	return &BalanceEntry{
		BaseEntity:    shared.NewBaseEntity(),
		ContactID:     contactID,
		PaymentID:     paymentID,
		Delta:         delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		Note:          note,
	}
}
