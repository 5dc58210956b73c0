package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	var calls []string
	record := func(name string, err error) ports.StatusNotifier {
		return ports.NotifierFunc(func(context.Context, ports.StatusNotification) error {
			calls = append(calls, name)
			return err
		})
	}
	boom := errors.New("boom")
	f := Fanout{record("kafka", boom), nil, record("whatsapp", nil)}

	err := f.NotifyStatus(context.Background(), ports.StatusNotification{Status: domain.StatusAccepted})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"kafka", "whatsapp"}, calls)
}
