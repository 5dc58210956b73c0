package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps the schedule in process memory.
type Repository struct {
	mu       sync.RWMutex
	schedule *domain.Schedule
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Get(_ context.Context) (domain.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.schedule == nil {
		return domain.Schedule{}, ports.ErrNotFound
	}
	return clone(*r.schedule), nil
}

func (r *Repository) Save(_ context.Context, schedule domain.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := clone(schedule)
	r.schedule = &c
	return nil
}

func clone(s domain.Schedule) domain.Schedule {
	s.Days = maps.Clone(s.Days)
	return s
}
