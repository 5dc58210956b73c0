package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Method is the payment method chosen at checkout.
type Method string

const (
	MethodCash Method = "cash"
	MethodPix  Method = "pix"
	MethodCard Method = "card"
)

// CardType distinguishes credit from debit.
type CardType string

const (
	CardTypeCredit CardType = "credit"
	CardTypeDebit  CardType = "debit"
)

// Payment is the order's payment state. Only Paid and Confirmed change after submission.
type Payment struct {
	Method           Method
	NeedsChange      bool
	ChangeAmount     *decimal.Decimal
	PixCode          string
	Paid             bool
	Confirmed        bool
	CardType         CardType
	AuthorizationRef string
	CardLast4        string
}

// CardDetails is held only for the authorization call and never stored.
type CardDetails struct {
	Number     string
	Expiry     string
	CVC        string
	HolderName string
}

// Missing lists blank card fields.
func (c CardDetails) Missing() []string {
	var fields []string
	for _, f := range [...]struct{ name, value string }{
		{"number", c.Number},
		{"expiry", c.Expiry},
		{"cvc", c.CVC},
		{"holderName", c.HolderName},
	} {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// Last4 returns the last four digits of the card number.
func (c CardDetails) Last4() string {
	var digits []rune
	for _, r := range c.Number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

// ParseMethod normalizes a payment method token.
func ParseMethod(raw string) (Method, bool) {
	m := Method(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case MethodCash, MethodPix, MethodCard:
		return m, true
	default:
		return "", false
	}
}

// ParseCardType normalizes a card type token; empty defaults to credit.
func ParseCardType(raw string) (CardType, bool) {
	t := CardType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case "":
		return CardTypeCredit, true
	case CardTypeCredit, CardTypeDebit:
		return t, true
	default:
		return "", false
	}
}

// CheckCash enforces the change precondition against the order total.
func CheckCash(p Payment, total decimal.Decimal) error {
	if !p.NeedsChange {
		return nil
	}
	if p.ChangeAmount == nil {
		return &PaymentPreconditionError{Method: MethodCash, Reason: "change amount is required when change is needed"}
	}
	if p.ChangeAmount.LessThan(total) {
		return &PaymentPreconditionError{
			Method: MethodCash,
			Reason: "change amount " + p.ChangeAmount.StringFixed(2) + " is below total " + total.StringFixed(2),
		}
	}
	return nil
}
