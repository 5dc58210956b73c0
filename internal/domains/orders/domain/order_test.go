package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var now = time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)

func pickupCustomer() Customer {
	return Customer{Name: "Ana", Phone: "(11) 98765-4321", DeliveryType: DeliveryTypePickup}
}

func items(unitPrice string, qty int) []catalogdomain.ComposedLine {
	return []catalogdomain.ComposedLine{{
		BaseItemID:   "sq-calabresa",
		BaseItemName: "Calabresa",
		Category:     catalogdomain.CategorySquare,
		Size:         catalogdomain.SizeMedium,
		Flavors:      []catalogdomain.Flavor{{ID: "sq-calabresa", Name: "Calabresa"}},
		Quantity:     qty,
		UnitPrice:    decimal.RequireFromString(unitPrice),
	}}
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newOrder(t *testing.T, payment Payment) *Order {
	t.Helper()
	o, err := NewOrder("o-1", pickupCustomer(), items("15.00", 1), payment, now)
	require.NoError(t, err)
	return o
}

func TestAdvance_IsLinear(t *testing.T) {
	o := newOrder(t, Payment{Method: MethodPix})
	require.Equal(t, StatusNew, o.Status)

	want := []Status{StatusAccepted, StatusProduction, StatusDelivery, StatusCompleted}
	for _, next := range want {
		from, to, err := o.Advance(now)
		require.NoError(t, err)
		assert.Equal(t, next, to)
		assert.NotEqual(t, from, to)
		assert.Equal(t, next, o.Status)
	}
}

func TestAdvance_CompletedIsTerminal(t *testing.T) {
	o := newOrder(t, Payment{Method: MethodPix})
	for range 4 {
		_, _, err := o.Advance(now)
		require.NoError(t, err)
	}
	before := o.Clone()

	_, _, err := o.Advance(now.Add(time.Hour))
	require.ErrorIs(t, err, ErrAlreadyTerminal)
	var termErr *AlreadyTerminalError
	require.ErrorAs(t, err, &termErr)
	assert.Equal(t, StatusCompleted, termErr.Status)
	assert.Equal(t, before, o)
}

func TestCancel(t *testing.T) {
	o := newOrder(t, Payment{Method: MethodCash})
	_, _, err := o.Advance(now)
	require.NoError(t, err)

	from, err := o.Cancel(now)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, from)
	assert.Equal(t, StatusCancelled, o.Status)

	_, err = o.Cancel(now)
	require.ErrorIs(t, err, ErrAlreadyTerminal)
	_, _, err = o.Advance(now)
	require.ErrorIs(t, err, ErrAlreadyTerminal)
	_, err = o.ConfirmCash(now)
	require.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestTransition(t *testing.T) {
	require.NoError(t, Transition(StatusNew, StatusAccepted))
	require.NoError(t, Transition(StatusDelivery, StatusCancelled))
	require.ErrorIs(t, Transition(StatusNew, StatusDelivery), ErrIllegalTransition)
	require.ErrorIs(t, Transition(StatusAccepted, StatusNew), ErrIllegalTransition)
	require.ErrorIs(t, Transition(StatusCompleted, StatusCancelled), ErrAlreadyTerminal)
}

func TestSupersedes(t *testing.T) {
	stored := newOrder(t, Payment{Method: MethodPix})
	stored.Version = 2

	next := stored.Clone()
	_, _, err := next.Advance(now)
	require.NoError(t, err)
	require.NoError(t, next.Supersedes(stored))

	stale := next.Clone()
	stale.Version = 1
	require.ErrorIs(t, stale.Supersedes(stored), ErrConcurrentUpdate)

	skipped := stored.Clone()
	skipped.Status = StatusDelivery
	var illegal *IllegalTransitionError
	require.ErrorAs(t, skipped.Supersedes(stored), &illegal)
	assert.Equal(t, StatusNew, illegal.From)
	assert.Equal(t, StatusDelivery, illegal.To)

	stored.Status = StatusCompleted
	reopened := stored.Clone()
	reopened.Status = StatusCancelled
	require.ErrorIs(t, reopened.Supersedes(stored), ErrAlreadyTerminal)

	paid := stored.Clone()
	paid.Payment.Paid = true
	require.NoError(t, paid.Supersedes(stored))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(StatusProduction)
	require.True(t, ok)
	assert.Equal(t, StatusDelivery, next)

	_, ok = NextStatus(StatusCompleted)
	assert.False(t, ok)
	_, ok = NextStatus(StatusCancelled)
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"NEW":        StatusNew,
		" Accepted ": StatusAccepted,
		"PRODUCTION": StatusProduction,
		"canceled":   StatusCancelled,
		"Cancelled":  StatusCancelled,
		"completed":  StatusCompleted,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseStatus("shipped")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewOrder_CashChangePrecondition(t *testing.T) {
	_, err := NewOrder("o-1", pickupCustomer(), items("15.00", 1), Payment{Method: MethodCash, NeedsChange: true, ChangeAmount: amount("10.00")}, now)
	require.ErrorIs(t, err, ErrPaymentPrecondition)

	_, err = NewOrder("o-1", pickupCustomer(), items("15.00", 1), Payment{Method: MethodCash, NeedsChange: true}, now)
	require.ErrorIs(t, err, ErrPaymentPrecondition)

	o, err := NewOrder("o-1", pickupCustomer(), items("15.00", 1), Payment{Method: MethodCash, NeedsChange: true, ChangeAmount: amount("20.00")}, now)
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("15.00")))

	exact, err := NewOrder("o-2", pickupCustomer(), items("15.00", 1), Payment{Method: MethodCash, NeedsChange: true, ChangeAmount: amount("15.00")}, now)
	require.NoError(t, err)
	assert.NotNil(t, exact.Payment.ChangeAmount)
}

func TestNewOrder_MethodIsNormalizedBeforeCashChecks(t *testing.T) {
	_, err := NewOrder("o-1", pickupCustomer(), items("15.00", 1), Payment{Method: " CASH ", NeedsChange: true, ChangeAmount: amount("10.00")}, now)
	require.ErrorIs(t, err, ErrPaymentPrecondition)

	o, err := NewOrder("o-1", pickupCustomer(), items("15.00", 1), Payment{Method: "Cash", NeedsChange: true, ChangeAmount: amount("20.00")}, now)
	require.NoError(t, err)
	assert.Equal(t, MethodCash, o.Payment.Method)
	require.NotNil(t, o.Payment.ChangeAmount)

	changed, err := o.ConfirmCash(now)
	require.NoError(t, err)
	assert.True(t, changed)

	pix, err := NewOrder("o-2", pickupCustomer(), items("15.00", 1), Payment{Method: "PIX", NeedsChange: true, ChangeAmount: amount("20.00")}, now)
	require.NoError(t, err)
	assert.Equal(t, MethodPix, pix.Payment.Method)
	assert.Nil(t, pix.Payment.ChangeAmount)
}

func TestNewOrder_TotalAndSnapshot(t *testing.T) {
	lines := items("35.50", 2)
	o, err := NewOrder("o-1", pickupCustomer(), lines, Payment{Method: MethodPix}, now)
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("71.00")))
	assert.Equal(t, lines, o.Items)
	assert.Equal(t, "11987654321", o.Customer.Phone)

	lines[0].Flavors[0].Name = "mutated"
	assert.Equal(t, "Calabresa", o.Items[0].Flavors[0].Name)
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := NewOrder("o-1", pickupCustomer(), nil, Payment{Method: MethodPix}, now)
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, ErrNoItems)

	delivery := Customer{Name: "Ana", Phone: "11 3333-4444", DeliveryType: DeliveryTypeDelivery, Address: "Rua A, 10"}
	_, err = NewOrder("o-1", delivery, items("10.00", 1), Payment{Method: MethodPix}, now)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"neighborhood"}, valErr.Fields)

	_, err = NewOrder("o-1", pickupCustomer(), items("10.00", 1), Payment{Method: "cheque"}, now)
	require.ErrorIs(t, err, ErrValidation)
}

func TestConfirmCash_IdempotentAndStatusUnchanged(t *testing.T) {
	o := newOrder(t, Payment{Method: MethodCash})

	changed, err := o.ConfirmCash(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, o.Payment.Confirmed)
	assert.Equal(t, StatusNew, o.Status)

	changed, err = o.ConfirmCash(now)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = o.ConfirmPix(now)
	require.ErrorIs(t, err, ErrPaymentPrecondition)
}

func TestConfirmPix(t *testing.T) {
	o := newOrder(t, Payment{Method: MethodPix, PixCode: "000201"})
	assert.False(t, o.Payment.Paid)

	changed, err := o.ConfirmPix(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, o.Payment.Paid)
	assert.Equal(t, StatusNew, o.Status)

	_, err = o.ConfirmCash(now)
	require.ErrorIs(t, err, ErrPaymentPrecondition)
}

func TestNormalizePhone(t *testing.T) {
	for raw, ok := range map[string]bool{
		"(11) 98765-4321":   true,
		"11 3333-4444":      true,
		"+55 11 98765-4321": false,
		"98765-4321":        false,
	} {
		_, got := NormalizePhone(raw)
		assert.Equal(t, ok, got, raw)
	}
}

func TestCardDetails(t *testing.T) {
	card := CardDetails{Number: "4111 1111 1111 1234", Expiry: "12/30", CVC: "123"}
	assert.Equal(t, "1234", card.Last4())
	assert.Equal(t, []string{"holderName"}, card.Missing())
}
