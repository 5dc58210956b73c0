package ports

import (
	"context"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
)

// Status is the availability answer rendered by the storefront.
type Status struct {
	Open          bool
	ClosedMessage string
	Window        *domain.Window
}

// Service exposes storefront availability use cases to adapters.
type Service interface {
	Status(ctx context.Context) (Status, error)
	Schedule(ctx context.Context) (domain.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error)
}
