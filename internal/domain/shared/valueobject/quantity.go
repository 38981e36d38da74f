package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is a value object representing non-negative quantities
// It supports decimal quantities for items handled by weight/volume
// It is immutable - all operations return new Quantity instances
type Quantity struct {
	value decimal.Decimal
}

// NewQuantity creates a new Quantity with the specified value
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value}, nil
}

// NewQuantityFromFloat creates Quantity from a float64 value
func NewQuantityFromFloat(value float64) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(value))
}

// NewQuantityFromString creates Quantity from a string representation
func NewQuantityFromString(value string) (Quantity, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity string: %w", err)
	}
	return NewQuantity(d)
}

// MustNewQuantity creates a Quantity and panics on error
func MustNewQuantity(value decimal.Decimal) Quantity {
	q, err := NewQuantity(value)
	if err != nil {
		panic(err)
	}
	return q
}

// ZeroQuantity returns a zero quantity
func ZeroQuantity() Quantity {
	return Quantity{value: decimal.Zero}
}

// Amount returns the decimal value
func (q Quantity) Amount() decimal.Decimal {
	return q.value
}

// IsZero returns true if the quantity is zero
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive returns true if the quantity is positive
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// Add returns a new Quantity with the sum of both quantities
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Subtract returns a new Quantity with the difference
// Returns error if the result would be negative
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	result := q.value.Sub(other.value)
	if result.IsNegative() {
		return Quantity{}, errors.New("quantity subtraction would be negative")
	}
	return Quantity{value: result}, nil
}

// LessThan returns true if this quantity is less than the other
func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}

// GreaterThanOrEqual returns true if this quantity is at least the other
func (q Quantity) GreaterThanOrEqual(other Quantity) bool {
	return q.value.GreaterThanOrEqual(other.value)
}

// String returns a string representation of the Quantity
func (q Quantity) String() string {
	return q.value.String()
}
