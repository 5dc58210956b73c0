package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows ListOrders. A zero Status matches every order.
type ListFilter struct {
	Status domain.Status
}

// Repository abstracts order persistence.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
}
