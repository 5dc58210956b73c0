package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizzeria/internal/shared/keylock"
)

// Service runs order submission and the fulfillment state machine.
type Service struct {
	repo         ports.Repository
	availability ports.Availability
	pix          ports.PixCodeGenerator
	cards        ports.CardAuthorizer
	notifier     ports.StatusNotifier
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
	locks        *keylock.Map
}

type Option func(*Service)

func WithAvailability(a ports.Availability) Option {
	return func(s *Service) { s.availability = a }
}

func WithPixGenerator(g ports.PixCodeGenerator) Option {
	return func(s *Service) { s.pix = g }
}

func WithCardAuthorizer(a ports.CardAuthorizer) Option {
	return func(s *Service) { s.cards = a }
}

func WithNotifier(n ports.StatusNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the UUID order ids, mostly for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
		locks:  keylock.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitOrder snapshots the given lines into a new order.
func (s *Service) SubmitOrder(ctx context.Context, input ports.SubmitOrderInput) (*domain.Order, error) {
	if s.availability != nil {
		if open, msg := s.availability.AcceptingOrders(ctx); !open {
			return nil, &StoreClosedError{Message: msg}
		}
	}
	order, err := domain.NewOrder(s.newID(), input.Customer, input.Items, input.Payment, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.preparePayment(ctx, order, input.Card); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

func (s *Service) preparePayment(ctx context.Context, order *domain.Order, card *domain.CardDetails) error {
	switch order.Payment.Method {
	case domain.MethodPix:
		if s.pix == nil {
			return &domain.PaymentPreconditionError{Method: domain.MethodPix, Reason: "pix payments are not available"}
		}
		code, err := s.pix.Generate(ctx, order.ID, order.Total)
		if err != nil {
			return err
		}
		order.Payment.PixCode = code
	case domain.MethodCard:
		if card == nil {
			return &domain.PaymentPreconditionError{Method: domain.MethodCard, Reason: "card details are required"}
		}
		if missing := card.Missing(); len(missing) > 0 {
			return &domain.PaymentPreconditionError{Method: domain.MethodCard, Reason: "missing card fields: " + strings.Join(missing, ", ")}
		}
		cardType, ok := domain.ParseCardType(string(order.Payment.CardType))
		if !ok {
			return &domain.ValidationError{Fields: []string{"payment.cardType"}}
		}
		if s.cards == nil {
			return &domain.PaymentPreconditionError{Method: domain.MethodCard, Reason: "card payments are not available"}
		}
		ref, err := s.cards.Authorize(ctx, order.ID, order.Total, cardType, *card)
		if err != nil {
			return err
		}
		order.Payment.CardType = cardType
		order.Payment.AuthorizationRef = ref
		order.Payment.CardLast4 = card.Last4()
	}
	return nil
}

// AdvanceStatus moves the order one step forward and notifies the customer.
func (s *Service) AdvanceStatus(ctx context.Context, id string) (*domain.Order, error) {
	var to domain.Status
	saved, err := s.mutate(ctx, id, func(order *domain.Order) error {
		var err error
		_, to, err = order.Advance(s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	if to.Notifies() {
		s.notify(ctx, saved)
	}
	return saved, nil
}

// CancelOrder is the administrative exit from any non-terminal state.
func (s *Service) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.mutate(ctx, id, func(order *domain.Order) error {
		_, err := order.Cancel(s.now())
		return err
	})
}

func (s *Service) ConfirmCashPayment(ctx context.Context, id string) (*domain.Order, error) {
	return s.mutate(ctx, id, func(order *domain.Order) error {
		_, err := order.ConfirmCash(s.now())
		return err
	})
}

// ConfirmPixPayment is driven by the payment provider callback.
func (s *Service) ConfirmPixPayment(ctx context.Context, id string) (*domain.Order, error) {
	return s.mutate(ctx, id, func(order *domain.Order) error {
		_, err := order.ConfirmPix(s.now())
		return err
	})
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	return s.repo.List(ctx, filter)
}

// mutate applies fn under the per-order lock and persists the result.
func (s *Service) mutate(ctx context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

func (s *Service) notify(ctx context.Context, order *domain.Order) {
	if s.notifier == nil {
		return
	}
	n := ports.StatusNotification{
		Phone:      order.Customer.Phone,
		Order:      order.Clone(),
		Status:     order.Status,
		OccurredAt: order.UpdatedAt,
	}
	if err := s.notifier.NotifyStatus(context.WithoutCancel(ctx), n); err != nil {
		s.logger.WarnContext(ctx, "status notification failed",
			slog.String("order.id", order.ID),
			slog.String("order.status", string(order.Status)),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
