package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) SubmitOrder(ctx context.Context, input ports.SubmitOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.SubmitOrder",
		trace.WithAttributes(
			attribute.String("order.payment_method", string(input.Payment.Method)),
			attribute.Int("order.line_count", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "submitting order",
		slog.String("payment.method", string(input.Payment.Method)),
		slog.String("delivery.type", string(input.Customer.DeliveryType)),
		slog.Int("lines", len(input.Items)))
	result, err := s.inner.SubmitOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, string(input.Payment.Method))
		return nil, s.handleError(ctx, span, err, "failed to submit order", slog.String("payment.method", string(input.Payment.Method)))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordSubmitted(ctx, result.Payment.Method)
	s.logInfo(ctx, "order submitted", slog.String("order.id", result.ID), slog.String("total", result.Total.StringFixed(2)))
	return result, nil
}

func (s *Service) AdvanceStatus(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.AdvanceStatus", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.AdvanceStatus(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to advance order", slog.String("order.id", id))
	}
	span.SetAttributes(attribute.String("order.status", string(result.Status)))
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order advanced", slog.String("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CancelOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.CancelOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order cancelled", slog.String("order.id", id))
	return result, nil
}

func (s *Service) ConfirmCashPayment(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ConfirmCashPayment", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.ConfirmCashPayment(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm cash payment", slog.String("order.id", id))
	}
	s.metrics.recordConfirmed(ctx, domain.MethodCash)
	s.logInfo(ctx, "cash payment confirmed", slog.String("order.id", id))
	return result, nil
}

func (s *Service) ConfirmPixPayment(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ConfirmPixPayment", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.ConfirmPixPayment(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm pix payment", slog.String("order.id", id))
	}
	s.metrics.recordConfirmed(ctx, domain.MethodPix)
	s.logInfo(ctx, "pix payment confirmed", slog.String("order.id", id))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders", trace.WithAttributes(attribute.String("filter.status", string(filter.Status))))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("filter.status", string(filter.Status)))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersSubmitted   metric.Int64Counter
	ordersRejected    metric.Int64Counter
	statusTransitions metric.Int64Counter
	paymentsConfirmed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("orders.service.orders_submitted", metric.WithDescription("Number of orders submitted"))
	rejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of order submissions rejected"))
	transitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of order status transitions"))
	confirmed, _ := m.Int64Counter("orders.service.payments_confirmed", metric.WithDescription("Number of payment confirmations"))
	return serviceMetrics{
		ordersSubmitted:   submitted,
		ordersRejected:    rejected,
		statusTransitions: transitions,
		paymentsConfirmed: confirmed,
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, method domain.Method) {
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", string(method))))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, method string) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", method)))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, to domain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(to))))
	}
}

func (m serviceMetrics) recordConfirmed(ctx context.Context, method domain.Method) {
	if m.paymentsConfirmed != nil {
		m.paymentsConfirmed.Add(ctx, 1, metric.WithAttributes(attribute.String("payment.method", string(method))))
	}
}

var _ ports.Service = (*Service)(nil)
