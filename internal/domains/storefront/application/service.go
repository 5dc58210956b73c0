package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
)

// Service answers "is the storefront open now" from the persisted schedule.
type Service struct {
	repo     ports.Repository
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger
}

type Option func(*Service)

// WithClock overrides the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation evaluates the schedule in the given time zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, location: time.Local}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Schedule returns the persisted schedule, or the default one when none was saved yet.
func (s *Service) Schedule(ctx context.Context) (domain.Schedule, error) {
	schedule, err := s.repo.Get(ctx)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.DefaultSchedule(), nil
	}
	if err != nil {
		return domain.Schedule{}, err
	}
	if schedule.ClosedMessage == "" {
		schedule.ClosedMessage = domain.DefaultClosedMessage
	}
	return schedule, nil
}

func (s *Service) Status(ctx context.Context) (ports.Status, error) {
	schedule, err := s.Schedule(ctx)
	if err != nil {
		return ports.Status{Open: false, ClosedMessage: domain.DefaultClosedMessage}, err
	}
	window, open := schedule.ActiveWindow(s.now().In(s.location))
	status := ports.Status{Open: open, ClosedMessage: schedule.ClosedMessage}
	if open {
		status.Window = &window
	}
	return status, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	if err := schedule.Validate(); err != nil {
		return domain.Schedule{}, mapError(err)
	}
	if schedule.ClosedMessage == "" {
		schedule.ClosedMessage = domain.DefaultClosedMessage
	}
	if err := s.repo.Save(ctx, schedule); err != nil {
		return domain.Schedule{}, err
	}
	return schedule, nil
}

// AcceptingOrders never fails: lookup errors are logged and treated as closed.
func (s *Service) AcceptingOrders(ctx context.Context) (bool, string) {
	status, err := s.Status(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "storefront schedule unavailable, refusing orders", slog.String("error", err.Error()))
		}
		return false, status.ClosedMessage
	}
	return status.Open, status.ClosedMessage
}

var _ ports.Service = (*Service)(nil)
