package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
)

var ErrNotFound = errors.New("storefront schedule not configured")

// Repository persists the single storefront schedule.
type Repository interface {
	Get(ctx context.Context) (domain.Schedule, error)
	Save(ctx context.Context, schedule domain.Schedule) error
}
