package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	whatsappclient "github.com/Apurer/go-gin-pizzeria/internal/clients/http/whatsapp"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/notify"
	kafkanotify "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/notify/kafka"
	whatsappnotify "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/notify/whatsapp"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	platformkafka "github.com/Apurer/go-gin-pizzeria/internal/platform/kafka"
	platformobservability "github.com/Apurer/go-gin-pizzeria/internal/platform/observability"
)

// BuildDeliveryNotifier assembles the channels that actually deliver a status change:
// WhatsApp to the customer and a Kafka event for downstream consumers. Channels whose
// configuration is missing are skipped. The cleanup flushes buffered events.
func BuildDeliveryNotifier(cfg Config, service string, logger *slog.Logger) (ports.StatusNotifier, func()) {
	var channels notify.Fanout
	cleanups := []func(){}

	if cfg.WhatsAppURL != "" {
		httpClient := &http.Client{Timeout: 5 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)}
		wa, err := whatsappclient.NewClient(cfg.WhatsAppURL, cfg.WhatsAppToken, httpClient)
		if err != nil {
			logger.Warn("whatsapp notifications disabled", slog.String("error", err.Error()))
		} else {
			channels = append(channels, whatsappnotify.NewNotifier(wa))
			logger.Info("whatsapp notifications enabled")
		}
	} else {
		logger.Warn("WHATSAPP_API_URL not set, customer messages disabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer := platformkafka.NewProducer(
			platformkafka.NewWriter(cfg.KafkaBrokers, cfg.OrderEventsTopic),
			256,
			platformkafka.WithLogger(logger),
		)
		channels = append(channels, kafkanotify.NewPublisher(producer, service))
		cleanups = append(cleanups, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := producer.Close(ctx); err != nil {
				logger.Error("failed to flush order events", slog.String("error", err.Error()))
			}
		})
		logger.Info("order events enabled", slog.String("topic", cfg.OrderEventsTopic))
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	return channels, func() {
		for _, fn := range cleanups {
			fn()
		}
	}
}

// DialTemporal connects a Temporal client with tracing and structured logging.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
