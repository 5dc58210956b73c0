package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/memory"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
)

type failingRepo struct{}

func (failingRepo) Get(context.Context) (domain.Schedule, error) {
	return domain.Schedule{}, errors.New("db down")
}

func (failingRepo) Save(context.Context, domain.Schedule) error { return errors.New("db down") }

func fixedClock(value string) func() time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestStatus_DefaultScheduleWhenNothingSaved(t *testing.T) {
	svc := NewService(memory.NewRepository(), WithClock(fixedClock("2024-06-14T19:30:00Z")), WithLocation(time.UTC))

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.True(t, status.Open)
	require.NotNil(t, status.Window)
	require.Equal(t, domain.Friday, status.Window.Day)
}

func TestStatus_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 22:30 UTC is 19:30 in BRT.
	svc := NewService(memory.NewRepository(), WithClock(fixedClock("2024-06-14T22:30:00Z")), WithLocation(loc))
	schedule := domain.DefaultSchedule()
	schedule.Days[domain.Friday] = domain.DaySchedule{IsOpen: true, OpenTime: "19:00", CloseTime: "20:00"}
	_, err := svc.UpdateSchedule(context.Background(), schedule)
	require.NoError(t, err)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.True(t, status.Open)
}

func TestUpdateSchedule_RejectsMalformedTimes(t *testing.T) {
	svc := NewService(memory.NewRepository())
	schedule := domain.DefaultSchedule()
	schedule.Days[domain.Monday] = domain.DaySchedule{IsOpen: true, OpenTime: "18h", CloseTime: "23:00"}

	_, err := svc.UpdateSchedule(context.Background(), schedule)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidTime)
}

func TestAcceptingOrders_FailsClosedOnRepositoryError(t *testing.T) {
	svc := NewService(failingRepo{}, WithClock(fixedClock("2024-06-14T19:30:00Z")), WithLocation(time.UTC))

	open, msg := svc.AcceptingOrders(context.Background())
	require.False(t, open)
	require.Equal(t, domain.DefaultClosedMessage, msg)
}

func TestAcceptingOrders_ClosedMessageFromSchedule(t *testing.T) {
	repo := memory.NewRepository()
	schedule := domain.DefaultSchedule()
	schedule.IsOpen = false
	schedule.ClosedMessage = "Férias coletivas"
	require.NoError(t, repo.Save(context.Background(), schedule))
	svc := NewService(repo, WithClock(fixedClock("2024-06-14T19:30:00Z")), WithLocation(time.UTC))

	open, msg := svc.AcceptingOrders(context.Background())
	require.False(t, open)
	require.Equal(t, "Férias coletivas", msg)
}

var _ ports.Repository = failingRepo{}
