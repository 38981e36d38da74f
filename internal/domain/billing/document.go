package billing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind discriminates the two settlable document types.
// Invoices are receivable from customers; bills are payable to vendors.
type DocumentKind string

const (
	DocumentKindInvoice DocumentKind = "INVOICE"
	DocumentKindBill    DocumentKind = "BILL"
)

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// IsValid returns true if the document kind is valid
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindInvoice || k == DocumentKindBill
}

// DocumentStatus represents the lifecycle status of a settlable document
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusApproved  DocumentStatus = "APPROVED"
	DocumentStatusPaid      DocumentStatus = "PAID"
	DocumentStatusOverdue   DocumentStatus = "OVERDUE"
	DocumentStatusCancelled DocumentStatus = "CANCELLED"
)

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusApproved, DocumentStatusPaid,
		DocumentStatusOverdue, DocumentStatusCancelled:
		return true
	}
	return false
}

// IsTerminalForEdits returns true if structural edits are rejected in this status
func (s DocumentStatus) IsTerminalForEdits() bool {
	return s == DocumentStatusPaid || s == DocumentStatusCancelled
}

// LineItem is a priced line on a settlable document
type LineItem struct {
	shared.BaseEntity
	DocumentID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_line_item_document"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice, excluding tax
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "document_line_items"
}

// recalculate updates the line total from quantity and price
func (l *LineItem) recalculate() {
	l.LineTotal = l.Quantity.Mul(l.UnitPrice)
}

// Document is a settlable document (invoice or bill). Line items drive the
// derived totals; PaidAmount is mutated only by the settlement engine and
// BalanceAmount is recomputed on every mutation of either operand.
type Document struct {
	shared.AuditedAggregateRoot
	Kind           DocumentKind    `gorm:"type:varchar(10);not null;index:idx_document_kind"`
	DocumentNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_document_number"`
	ContactID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_document_contact"`
	IssueDate      time.Time       `gorm:"not null"`
	DueDate        time.Time       `gorm:"not null;index"`
	LineItems      []LineItem      `gorm:"foreignKey:DocumentID;references:ID"`
	Discount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status         DocumentStatus  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a new draft document
func NewDocument(kind DocumentKind, documentNumber string, contactID uuid.UUID, issueDate, dueDate time.Time) (*Document, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Invalid document kind")
	}
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before issue date")
	}

	return &Document{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Kind:                 kind,
		DocumentNumber:       documentNumber,
		ContactID:            contactID,
		IssueDate:            issueDate,
		DueDate:              dueDate,
		LineItems:            make([]LineItem, 0),
		Discount:             decimal.Zero,
		Subtotal:             decimal.Zero,
		TaxAmount:            decimal.Zero,
		TotalAmount:          decimal.Zero,
		PaidAmount:           decimal.Zero,
		BalanceAmount:        decimal.Zero,
		Status:               DocumentStatusDraft,
	}, nil
}

// IsEditable returns true if structural edits are allowed
func (d *Document) IsEditable() bool {
	return !d.Status.IsTerminalForEdits()
}

// AddLineItem appends a priced line and recomputes the totals
func (d *Document) AddLineItem(productID *uuid.UUID, description string, quantity, unitPrice, taxAmount decimal.Decimal) (*LineItem, error) {
	if !d.IsEditable() {
		return nil, shared.ErrDocumentLocked
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Line description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() || taxAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Line price and tax cannot be negative")
	}

	line := LineItem{
		BaseEntity:  shared.NewBaseEntity(),
		DocumentID:  d.ID,
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxAmount:   taxAmount,
	}
	line.recalculate()

	d.LineItems = append(d.LineItems, line)
	d.recalculateTotals()

	return &d.LineItems[len(d.LineItems)-1], nil
}

// UpdateLineItem changes quantity/price/tax on an existing line and recomputes totals
func (d *Document) UpdateLineItem(lineID uuid.UUID, quantity, unitPrice, taxAmount decimal.Decimal) error {
	if !d.IsEditable() {
		return shared.ErrDocumentLocked
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() || taxAmount.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Line price and tax cannot be negative")
	}

	for idx := range d.LineItems {
		if d.LineItems[idx].ID == lineID {
			d.LineItems[idx].Quantity = quantity
			d.LineItems[idx].UnitPrice = unitPrice
			d.LineItems[idx].TaxAmount = taxAmount
			d.LineItems[idx].recalculate()
			d.recalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Line item not found")
}

// RemoveLineItem deletes a line and recomputes totals
func (d *Document) RemoveLineItem(lineID uuid.UUID) error {
	if !d.IsEditable() {
		return shared.ErrDocumentLocked
	}

	for idx := range d.LineItems {
		if d.LineItems[idx].ID == lineID {
			d.LineItems = append(d.LineItems[:idx], d.LineItems[idx+1:]...)
			d.recalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Line item not found")
}

// SetDiscount sets the document-level discount and recomputes totals
func (d *Document) SetDiscount(discount decimal.Decimal) error {
	if !d.IsEditable() {
		return shared.ErrDocumentLocked
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	d.Discount = discount
	d.recalculateTotals()
	return nil
}

// Approve moves a draft document into circulation
func (d *Document) Approve(approverID uuid.UUID) error {
	if d.Status != DocumentStatusDraft {
		return shared.ErrInvalidTransition
	}
	if len(d.LineItems) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Cannot approve a document without line items")
	}

	d.Status = DocumentStatusApproved
	d.touch()

	d.AddDomainEvent(NewDocumentApprovedEvent(d, approverID))
	return nil
}

// Cancel voids the document. Paid documents cannot be cancelled.
func (d *Document) Cancel() error {
	if d.Status == DocumentStatusPaid || d.Status == DocumentStatusCancelled {
		return shared.ErrInvalidTransition
	}
	if d.PaidAmount.IsPositive() {
		return shared.NewDomainError("HAS_SETTLEMENTS", "Cannot cancel a document with applied settlements")
	}

	d.Status = DocumentStatusCancelled
	d.touch()

	d.AddDomainEvent(NewDocumentCancelledEvent(d))
	return nil
}

// ApplySettlement credits a settlement amount against the document.
// Only the settlement engine calls this; the balance and status are re-derived.
func (d *Document) ApplySettlement(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Settlement amount must be positive")
	}
	if d.Status == DocumentStatusCancelled {
		return shared.ErrDocumentLocked
	}

	d.PaidAmount = d.PaidAmount.Add(amount)
	d.recalculateBalance()

	if d.Status == DocumentStatusPaid {
		d.AddDomainEvent(NewDocumentPaidEvent(d))
	}
	return nil
}

// ReverseSettlement withdraws a previously applied settlement amount.
// The status is re-derived purely from the resulting balance and due date;
// a document never stays Paid with a nonzero balance.
func (d *Document) ReverseSettlement(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Settlement amount must be positive")
	}
	if amount.GreaterThan(d.PaidAmount) {
		return shared.NewDomainError("EXCEEDS_PAID", "Cannot reverse more than the paid amount")
	}

	d.PaidAmount = d.PaidAmount.Sub(amount)
	d.recalculateBalance()
	return nil
}

// IsOverdue returns true if the document is unpaid past its due date
func (d *Document) IsOverdue(now time.Time) bool {
	return d.BalanceAmount.IsPositive() && now.After(d.DueDate) &&
		d.Status != DocumentStatusCancelled && d.Status != DocumentStatusDraft
}

// DaysOverdue returns the number of whole days past due, zero when not overdue
func (d *Document) DaysOverdue(now time.Time) int {
	if !d.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(d.DueDate).Hours() / 24)
}

// RefreshStatus re-derives Overdue/Approved from the balance and due date.
// Draft and Cancelled documents are left untouched.
func (d *Document) RefreshStatus(now time.Time) {
	if d.Status == DocumentStatusDraft || d.Status == DocumentStatusCancelled {
		return
	}
	d.deriveSettlementStatus(now)
}

// recalculateTotals recomputes subtotal, tax, total and balance from the lines
func (d *Document) recalculateTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for idx := range d.LineItems {
		subtotal = subtotal.Add(d.LineItems[idx].LineTotal)
		tax = tax.Add(d.LineItems[idx].TaxAmount)
	}

	d.Subtotal = subtotal
	d.TaxAmount = tax
	d.TotalAmount = subtotal.Add(tax).Sub(d.Discount)
	d.recalculateBalance()
}

// recalculateBalance recomputes the balance and re-derives the settlement status
func (d *Document) recalculateBalance() {
	d.BalanceAmount = d.TotalAmount.Sub(d.PaidAmount)
	if d.Status != DocumentStatusDraft && d.Status != DocumentStatusCancelled {
		d.deriveSettlementStatus(time.Now())
	}
	d.touch()
}

// deriveSettlementStatus maps the balance and due date to a status:
// balance <= 0 -> Paid; balance > 0 and past due -> Overdue; else Approved.
func (d *Document) deriveSettlementStatus(now time.Time) {
	switch {
	case d.BalanceAmount.LessThanOrEqual(decimal.Zero):
		d.Status = DocumentStatusPaid
	case now.After(d.DueDate):
		d.Status = DocumentStatusOverdue
	default:
		d.Status = DocumentStatusApproved
	}
}

func (d *Document) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
