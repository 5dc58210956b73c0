package ports

import (
	"context"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
	orderdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

// View is a read-only snapshot of a cart.
type View struct {
	SessionID string
	Lines     []catalogdomain.ComposedLine
	Total     decimal.Decimal
}

// CheckoutInput is everything besides the lines needed to place an order.
type CheckoutInput struct {
	Customer orderdomain.Customer
	Payment  orderdomain.Payment
	Card     *orderdomain.CardDetails
}

// Service manages session carts and hands them to order submission.
type Service interface {
	AddItem(ctx context.Context, sessionID string, input catalogports.ComposeInput) (View, error)
	UpdateQuantity(ctx context.Context, sessionID string, key catalogdomain.LineKey, quantity int) (View, error)
	RemoveItem(ctx context.Context, sessionID string, key catalogdomain.LineKey) (View, error)
	View(ctx context.Context, sessionID string) (View, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*orderdomain.Order, error)
}
