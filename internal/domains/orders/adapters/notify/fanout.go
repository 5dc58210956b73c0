package notify

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

var _ ports.StatusNotifier = Fanout(nil)

// Fanout delivers each notification to every notifier and joins their errors.
type Fanout []ports.StatusNotifier

func (f Fanout) NotifyStatus(ctx context.Context, n ports.StatusNotification) error {
	var errs []error
	for _, notifier := range f {
		if notifier == nil {
			continue
		}
		if err := notifier.NotifyStatus(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
