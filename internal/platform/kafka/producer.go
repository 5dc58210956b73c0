package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// ErrBufferFull is returned by Publish when the inbox cannot take another message.
var ErrBufferFull = errors.New("kafka producer buffer full")

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("kafka producer closed")

// MessageWriter is the subset of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer buffers messages and writes them from a single background goroutine,
// so Publish never blocks on the broker.
type Producer struct {
	w       MessageWriter
	inbox   chan kafkago.Message
	done    chan struct{}
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

type Option func(*Producer)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Producer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWriteTimeout bounds each broker write.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *Producer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewWriter builds a hash-balanced writer that waits for all in-sync replicas.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewProducer(w MessageWriter, buf int, opts ...Option) *Producer {
	if buf <= 0 {
		buf = 256
	}
	p := &Producer{
		w:       w,
		inbox:   make(chan kafkago.Message, buf),
		done:    make(chan struct{}),
		logger:  slog.Default(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	go p.run()
	return p
}

func (p *Producer) run() {
	defer close(p.done)
	for m := range p.inbox {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.w.WriteMessages(ctx, m); err != nil {
			p.logger.Error("kafka write failed",
				slog.String("topic", m.Topic),
				slog.String("key", string(m.Key)),
				slog.String("error", err.Error()))
		}
		cancel()
	}
	if err := p.w.Close(); err != nil {
		p.logger.Warn("kafka writer close failed", slog.String("error", err.Error()))
	}
}

// Publish enqueues a message without waiting for the broker.
func (p *Producer) Publish(key, value []byte, headers ...kafkago.Header) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- kafkago.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting messages, flushes what is buffered and closes the writer.
func (p *Producer) Close(ctx context.Context) error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()
	})
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
