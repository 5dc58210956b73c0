package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

var _ ports.CardAuthorizer = (*LocalCardAuthorizer)(nil)

// LocalCardAuthorizer checks card data offline and issues an authorization reference.
// It stands in for an acquirer integration; the card details are never retained.
type LocalCardAuthorizer struct {
	now func() time.Time
}

func NewLocalCardAuthorizer() *LocalCardAuthorizer {
	return &LocalCardAuthorizer{now: time.Now}
}

func (a *LocalCardAuthorizer) Authorize(_ context.Context, _ string, amount decimal.Decimal, cardType domain.CardType, card domain.CardDetails) (string, error) {
	reject := func(reason string) error {
		return &domain.PaymentPreconditionError{Method: domain.MethodCard, Reason: reason}
	}
	if !amount.IsPositive() {
		return "", reject("amount must be positive")
	}
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, card.Number)
	if len(digits) < 12 || len(digits) > 19 || !luhn(digits) {
		return "", reject("card number is invalid")
	}
	if len(strings.TrimSpace(card.CVC)) < 3 || len(strings.TrimSpace(card.CVC)) > 4 {
		return "", reject("cvc is invalid")
	}
	if err := checkExpiry(card.Expiry, a.now()); err != nil {
		return "", reject(err.Error())
	}
	return fmt.Sprintf("auth_%s_%s", cardType, uuid.NewString()), nil
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// checkExpiry accepts MM/YY or MM/YYYY; a card is valid through the end of its month.
func checkExpiry(raw string, now time.Time) error {
	month, year, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return fmt.Errorf("expiry %q must be MM/YY", raw)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return fmt.Errorf("expiry month %q is invalid", month)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Errorf("expiry year %q is invalid", year)
	}
	if len(year) == 2 {
		y += 2000
	}
	endOfMonth := time.Date(y, time.Month(m)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.UTC().Before(endOfMonth) {
		return fmt.Errorf("card expired")
	}
	return nil
}
