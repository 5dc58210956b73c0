package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

// DeliverStatusNotificationActivityName hands one notification to the configured channels.
const DeliverStatusNotificationActivityName = "orders.activities.DeliverStatusNotification"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	notifier ports.StatusNotifier
}

// NewActivities wires the delivery channels (WhatsApp, Kafka, ...) into the activities bundle.
func NewActivities(notifier ports.StatusNotifier) *Activities {
	return &Activities{notifier: notifier}
}

// DeliverStatusNotification calls the delivery channels once per successful attempt.
func (a *Activities) DeliverStatusNotification(ctx context.Context, n ports.StatusNotification) error {
	logger := activity.GetLogger(ctx)
	orderID := ""
	if n.Order != nil {
		orderID = n.Order.ID
	}
	if a == nil || a.notifier == nil {
		logger.Error("status notification activity not initialized", "orderId", orderID)
		return errors.New("status notification activity not initialized")
	}

	var hb deliveryHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Delivered {
		logger.Info("DeliverStatusNotification already delivered in prior attempt; skipping", "orderId", orderID)
		return nil
	}

	logger.Info("DeliverStatusNotification started", "orderId", orderID, "status", string(n.Status))
	if err := a.notifier.NotifyStatus(ctx, n); err != nil {
		logger.Error("DeliverStatusNotification failed", "orderId", orderID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, deliveryHeartbeat{Delivered: true})
	logger.Info("DeliverStatusNotification completed", "orderId", orderID)
	return nil
}

type deliveryHeartbeat struct {
	Delivered bool
}
