package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

// StatusNotification is emitted once per committed forward transition.
type StatusNotification struct {
	Phone      string
	Order      *domain.Order
	Status     domain.Status
	OccurredAt time.Time
}

// StatusNotifier hands notifications to whatever delivers them. Delivery failures
// are reported back but never undo the transition.
type StatusNotifier interface {
	NotifyStatus(ctx context.Context, n StatusNotification) error
}

// NotifierFunc adapts a function to StatusNotifier.
type NotifierFunc func(ctx context.Context, n StatusNotification) error

func (f NotifierFunc) NotifyStatus(ctx context.Context, n StatusNotification) error {
	return f(ctx, n)
}
