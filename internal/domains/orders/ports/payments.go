package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

// PixCodeGenerator issues the copy-and-paste pix code shown to the customer.
type PixCodeGenerator interface {
	Generate(ctx context.Context, orderID string, amount decimal.Decimal) (string, error)
}

// CardAuthorizer authorizes a card charge and returns an opaque reference.
type CardAuthorizer interface {
	Authorize(ctx context.Context, orderID string, amount decimal.Decimal, cardType domain.CardType, card domain.CardDetails) (string, error)
}

// Availability tells whether the storefront currently accepts orders.
type Availability interface {
	AcceptingOrders(ctx context.Context) (bool, string)
}
