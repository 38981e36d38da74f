package partner

import (
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeContact = "Contact"

// Event type constants
const (
	EventTypeContactBalanceAdjusted = "ContactBalanceAdjusted"
)

// ContactBalanceAdjustedEvent is raised when a settlement moves the running balance
type ContactBalanceAdjustedEvent struct {
	shared.BaseDomainEvent
	ContactID     uuid.UUID       `json:"contact_id"`
	Delta         decimal.Decimal `json:"delta"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// NewContactBalanceAdjustedEvent creates a new ContactBalanceAdjustedEvent
func NewContactBalanceAdjustedEvent(c *Contact, delta, before decimal.Decimal) *ContactBalanceAdjustedEvent {
	return &ContactBalanceAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactBalanceAdjusted, AggregateTypeContact, c.ID),
		ContactID:       c.ID,
		Delta:           delta,
		BalanceBefore:   before,
		BalanceAfter:    c.Balance,
	}
}

// EventType returns the event type name
func (e *ContactBalanceAdjustedEvent) EventType() string {
	return EventTypeContactBalanceAdjusted
}
