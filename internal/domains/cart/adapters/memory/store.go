package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var _ ports.Store = (*Store)(nil)

// Store keeps carts in process memory. Carts never expire.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]catalogdomain.ComposedLine
}

func NewStore() *Store {
	return &Store{carts: map[string][]catalogdomain.ComposedLine{}}
}

func (s *Store) Load(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	lines := s.carts[sessionID]
	s.mu.RUnlock()
	return domain.Restore(sessionID, lines)
}

func (s *Store) Save(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart.Len() == 0 {
		delete(s.carts, cart.SessionID)
		return nil
	}
	s.carts[cart.SessionID] = cart.Lines()
	return nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
