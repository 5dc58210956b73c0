package application

import (
	"context"
	"log/slog"

	cartdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
	orderdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizzeria/internal/shared/keylock"
)

// Composer prices a line from catalog ids.
type Composer interface {
	Compose(ctx context.Context, input catalogports.ComposeInput) (catalogdomain.ComposedLine, error)
}

// OrderSubmitter turns a cart snapshot into an order.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, input orderports.SubmitOrderInput) (*orderdomain.Order, error)
}

// Service serializes mutations per session; different sessions never contend.
type Service struct {
	store    ports.Store
	composer Composer
	orders   OrderSubmitter
	locks    *keylock.Map
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(store ports.Store, composer Composer, orders OrderSubmitter, opts ...Option) *Service {
	s := &Service{
		store:    store,
		composer: composer,
		orders:   orders,
		locks:    keylock.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddItem composes the requested line and merges it into the cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, input catalogports.ComposeInput) (ports.View, error) {
	if sessionID == "" {
		return ports.View{}, mapError(cartdomain.ErrEmptySessionID)
	}
	line, err := s.composer.Compose(ctx, input)
	if err != nil {
		return ports.View{}, err
	}
	return s.mutate(ctx, sessionID, func(c *cartdomain.Cart) error {
		c.Add(line)
		return nil
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, key catalogdomain.LineKey, quantity int) (ports.View, error) {
	return s.mutate(ctx, sessionID, func(c *cartdomain.Cart) error {
		return c.UpdateQuantity(key, quantity)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, key catalogdomain.LineKey) (ports.View, error) {
	return s.mutate(ctx, sessionID, func(c *cartdomain.Cart) error {
		c.Remove(key)
		return nil
	})
}

func (s *Service) View(ctx context.Context, sessionID string) (ports.View, error) {
	if sessionID == "" {
		return ports.View{}, mapError(cartdomain.ErrEmptySessionID)
	}
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return ports.View{}, err
	}
	return view(cart), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return mapError(cartdomain.ErrEmptySessionID)
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.store.Delete(ctx, sessionID)
}

// Checkout submits the cart as an order and empties it only when submission succeeds.
// A failed submission leaves the cart exactly as it was.
func (s *Service) Checkout(ctx context.Context, sessionID string, input ports.CheckoutInput) (*orderdomain.Order, error) {
	if sessionID == "" {
		return nil, mapError(cartdomain.ErrEmptySessionID)
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Len() == 0 {
		return nil, mapError(cartdomain.ErrEmptyCart)
	}
	order, err := s.orders.SubmitOrder(ctx, orderports.SubmitOrderInput{
		Customer: input.Customer,
		Items:    cart.Lines(),
		Payment:  input.Payment,
		Card:     input.Card,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "cart not cleared after checkout",
			slog.String("cart.session_id", sessionID),
			slog.String("order.id", order.ID),
			slog.String("error", err.Error()))
	}
	return order, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*cartdomain.Cart) error) (ports.View, error) {
	if sessionID == "" {
		return ports.View{}, mapError(cartdomain.ErrEmptySessionID)
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return ports.View{}, err
	}
	if err := fn(cart); err != nil {
		return ports.View{}, mapError(err)
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return ports.View{}, err
	}
	return view(cart), nil
}

func view(c *cartdomain.Cart) ports.View {
	return ports.View{SessionID: c.SessionID, Lines: c.Lines(), Total: c.Total()}
}

var _ ports.Service = (*Service)(nil)
