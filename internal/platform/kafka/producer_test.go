package kafka

import (
	"context"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type memoryWriter struct {
	mu     sync.Mutex
	msgs   []kafkago.Message
	closed bool
}

func (w *memoryWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memoryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestProducer_FlushesOnClose(t *testing.T) {
	w := &memoryWriter{}
	p := NewProducer(w, 8)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, p.Publish([]byte(key), []byte("{}")))
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))

	require.Len(t, w.msgs, 3)
	require.Equal(t, "a", string(w.msgs[0].Key))
	require.True(t, w.closed)
	require.ErrorIs(t, p.Publish([]byte("d"), nil), ErrClosed)
}
