package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(100))
	b := NewMoneyUSD(decimal.NewFromInt(40))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(140)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(60)))

	product := a.Multiply(decimal.NewFromFloat(0.5))
	assert.True(t, product.Amount().Equal(decimal.NewFromInt(50)))

	_, err = a.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := NewMoneyUSD(decimal.NewFromInt(10))
	eur, err := NewMoney(decimal.NewFromInt(10), EUR)
	require.NoError(t, err)

	_, err = usd.Add(eur)
	assert.Error(t, err)
	_, err = usd.Subtract(eur)
	assert.Error(t, err)
	_, err = usd.LessThan(eur)
	assert.Error(t, err)
	assert.False(t, usd.Equals(eur))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("1234.56", USD)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.56","currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("99.95"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.95)))
	assert.Equal(t, DefaultCurrency, m.Currency())

	var null Money
	require.NoError(t, null.Scan(nil))
	assert.True(t, null.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestQuantity_NonNegative(t *testing.T) {
	_, err := NewQuantityFromString("-1")
	assert.Error(t, err)

	q, err := NewQuantityFromString("7.5")
	require.NoError(t, err)

	_, err = q.Subtract(MustNewQuantity(decimal.NewFromInt(10)))
	assert.Error(t, err)

	rest, err := q.Subtract(MustNewQuantity(decimal.NewFromFloat(2.5)))
	require.NoError(t, err)
	assert.Equal(t, "5", rest.String())
}
