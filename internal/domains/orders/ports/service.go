package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

// SubmitOrderInput carries a cart snapshot into order submission.
type SubmitOrderInput struct {
	Customer domain.Customer
	Items    []catalogdomain.ComposedLine
	Payment  domain.Payment
	Card     *domain.CardDetails
}

// Service exposes the order lifecycle to the transport layer.
type Service interface {
	SubmitOrder(ctx context.Context, input SubmitOrderInput) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, id string) (*domain.Order, error)
	CancelOrder(ctx context.Context, id string) (*domain.Order, error)
	ConfirmCashPayment(ctx context.Context, id string) (*domain.Order, error)
	ConfirmPixPayment(ctx context.Context, id string) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
}
