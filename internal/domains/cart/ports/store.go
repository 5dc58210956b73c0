package ports

import (
	"context"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/domain"
)

// Store persists carts by session. Load returns an empty cart for unknown sessions.
type Store interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
