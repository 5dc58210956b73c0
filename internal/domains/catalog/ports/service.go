package ports

import (
	"context"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

// ComposeInput references catalog entries by id.
type ComposeInput struct {
	BaseItemID  string
	Size        domain.Size
	FlavorIDs   []string
	AdditionIDs []string
	Notes       string
	Quantity    int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	ListCatalog(ctx context.Context) ([]domain.Item, error)
	ListAdditions(ctx context.Context) ([]domain.Addition, error)
	Compose(ctx context.Context, input ComposeInput) (domain.ComposedLine, error)
	SaveItem(ctx context.Context, item domain.Item) (domain.Item, error)
	SaveAddition(ctx context.Context, addition domain.Addition) (domain.Addition, error)
}
