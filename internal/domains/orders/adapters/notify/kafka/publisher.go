package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

const (
	EventOrderStatusChanged = "order.status_changed"
	eventVersion            = 1
)

var _ ports.StatusNotifier = (*Publisher)(nil)

// Producer enqueues a keyed message.
type Producer interface {
	Publish(key, value []byte, headers ...kafkago.Header) error
}

// Envelope wraps every order event on the topic.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// StatusChangedPayload is the payload of EventOrderStatusChanged.
type StatusChangedPayload struct {
	OrderID       string          `json:"order_id"`
	Status        string          `json:"status"`
	Phone         string          `json:"phone"`
	CustomerName  string          `json:"customer_name"`
	DeliveryType  string          `json:"delivery_type"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// Publisher emits status changes as Kafka events keyed by order id.
type Publisher struct {
	producer Producer
	source   string
}

func NewPublisher(producer Producer, source string) *Publisher {
	if source == "" {
		source = "pizzeria-api"
	}
	return &Publisher{producer: producer, source: source}
}

func (p *Publisher) NotifyStatus(ctx context.Context, n ports.StatusNotification) error {
	payload := StatusChangedPayload{
		Status: string(n.Status),
		Phone:  n.Phone,
	}
	if o := n.Order; o != nil {
		payload.OrderID = o.ID
		payload.CustomerName = o.Customer.Name
		payload.DeliveryType = string(o.Customer.DeliveryType)
		payload.Total = o.Total
		payload.PaymentMethod = string(o.Payment.Method)
		for _, line := range o.Items {
			payload.ItemCount += line.Quantity
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderStatusChanged,
		EventVersion:  eventVersion,
		OccurredAt:    n.OccurredAt.UTC(),
		Producer:      p.source,
		TraceID:       traceID(ctx),
		CorrelationID: payload.OrderID,
		Payload:       raw,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return p.producer.Publish([]byte(payload.OrderID), value,
		kafkago.Header{Key: "event_type", Value: []byte(EventOrderStatusChanged)})
}

func traceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
