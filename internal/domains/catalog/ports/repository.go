package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("catalog entry not found")

// Repository persists catalog items and additions.
type Repository interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	SaveItem(ctx context.Context, item domain.Item) (domain.Item, error)
	ListAdditions(ctx context.Context) ([]domain.Addition, error)
	GetAddition(ctx context.Context, id string) (domain.Addition, error)
	SaveAddition(ctx context.Context, addition domain.Addition) (domain.Addition, error)
}
