package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-gin-pizzeria/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.StatusNotifier = (*TemporalNotifier)(nil)
	_ ports.StatusNotifier = (*InlineNotifier)(nil)
)

// WorkflowStarter is the part of client.Client used to start notification workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalNotifier hands each notification to a durable workflow and returns once it is started.
type TemporalNotifier struct {
	client    WorkflowStarter
	taskQueue string
}

// NewTemporalNotifier wires a Temporal client into the notifier.
func NewTemporalNotifier(c WorkflowStarter) *TemporalNotifier {
	return &TemporalNotifier{client: c, taskQueue: orderworkflows.StatusNotificationTaskQueue}
}

// NotifyStatus starts one workflow per (order, status). A second start for the same pair is
// rejected by Temporal and treated as already delivered.
func (n *TemporalNotifier) NotifyStatus(ctx context.Context, note ports.StatusNotification) error {
	if n == nil || n.client == nil {
		return errors.New("temporal notifier not configured")
	}
	if note.Order == nil {
		return errors.New("status notification without order")
	}
	options := client.StartWorkflowOptions{
		ID:                                       WorkflowID(note),
		TaskQueue:                                n.taskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	_, err := n.client.ExecuteWorkflow(ctx, options, orderworkflows.StatusNotificationWorkflowName,
		orderworkflows.StatusNotificationWorkflowInput{Notification: note, TraceID: workflowTraceID(ctx)})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// WorkflowID is deterministic per transition.
func WorkflowID(note ports.StatusNotification) string {
	return fmt.Sprintf("order-status-%s-%s", note.Order.ID, note.Status)
}

// ErrNotifierClosed is returned for notifications handed in after Close.
var ErrNotifierClosed = errors.New("inline notifier closed")

const defaultInlineDeliveryTimeout = 15 * time.Second

// InlineNotifier calls the delivery channels directly without durable orchestration.
// Used when Temporal is unavailable. Delivery runs in the background so a slow
// channel never holds up the transition that produced the notification.
type InlineNotifier struct {
	delegate ports.StatusNotifier
	logger   *slog.Logger
	timeout  time.Duration

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

type InlineOption func(*InlineNotifier)

func WithInlineLogger(logger *slog.Logger) InlineOption {
	return func(n *InlineNotifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithDeliveryTimeout bounds each background delivery.
func WithDeliveryTimeout(timeout time.Duration) InlineOption {
	return func(n *InlineNotifier) {
		if timeout > 0 {
			n.timeout = timeout
		}
	}
}

func NewInlineNotifier(delegate ports.StatusNotifier, opts ...InlineOption) *InlineNotifier {
	n := &InlineNotifier{delegate: delegate, logger: slog.Default(), timeout: defaultInlineDeliveryTimeout}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyStatus schedules delivery and returns without waiting for it. Delivery
// failures are logged.
func (n *InlineNotifier) NotifyStatus(ctx context.Context, note ports.StatusNotification) error {
	if n == nil || n.delegate == nil {
		return errors.New("inline notifier not configured")
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierClosed
	}
	n.inflight.Add(1)
	go n.deliver(context.WithoutCancel(ctx), note)
	return nil
}

func (n *InlineNotifier) deliver(ctx context.Context, note ports.StatusNotification) {
	defer n.inflight.Done()
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.delegate.NotifyStatus(ctx, note); err != nil {
		attrs := []any{slog.String("order.status", string(note.Status)), slog.String("error", err.Error())}
		if note.Order != nil {
			attrs = append(attrs, slog.String("order.id", note.Order.ID))
		}
		n.logger.WarnContext(ctx, "inline status delivery failed", attrs...)
	}
}

// Close stops accepting notifications and waits for pending deliveries or ctx.
func (n *InlineNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
