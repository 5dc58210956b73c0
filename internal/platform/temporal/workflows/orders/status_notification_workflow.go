package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-pizzeria/internal/platform/temporal/activities/orders"
)

const (
	// StatusNotificationWorkflowName is the public identifier for registering the workflow.
	StatusNotificationWorkflowName = "orders.workflows.StatusNotification"
	// StatusNotificationTaskQueue is the queue consumed by the worker delivering notifications.
	StatusNotificationTaskQueue = "ORDER_STATUS_NOTIFICATIONS"
)

// StatusNotificationWorkflowInput carries one committed transition.
type StatusNotificationWorkflowInput struct {
	Notification ports.StatusNotification
	TraceID      string
}

// StatusNotificationWorkflow delivers a status notification with retries. A delivery that
// exhausts its retries is logged and the workflow completes without error.
func StatusNotificationWorkflow(ctx workflow.Context, input StatusNotificationWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := ""
	if input.Notification.Order != nil {
		orderID = input.Notification.Order.ID
	}
	status := string(input.Notification.Status)
	logger.Info("StatusNotificationWorkflow started", withTraceID(input.TraceID, "orderId", orderID, "status", status)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)
	err := workflow.ExecuteActivity(ctx, orderactivities.DeliverStatusNotificationActivityName, input.Notification).Get(ctx, nil)
	if err != nil {
		logger.Error("StatusNotificationWorkflow gave up", withTraceID(input.TraceID, "orderId", orderID, "status", status, "error", err)...)
		return nil
	}
	logger.Info("StatusNotificationWorkflow completed", withTraceID(input.TraceID, "orderId", orderID, "status", status)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
