package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.ID == "" {
		return nil, domain.ErrEmptyOrderID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := order.Clone()
	if saved.Version == 0 {
		if _, exists := r.orders[saved.ID]; exists {
			return nil, fmt.Errorf("%w: order %s already exists", domain.ErrConcurrentUpdate, saved.ID)
		}
	} else {
		stored, ok := r.orders[saved.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		if err := saved.Supersedes(stored); err != nil {
			return nil, err
		}
	}
	saved.Version++
	r.orders[saved.ID] = saved
	return saved.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

// List returns matching orders, oldest first.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		list = append(list, order.Clone())
	}
	slices.SortFunc(list, func(a, b *domain.Order) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return list, nil
}
