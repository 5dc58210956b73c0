package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter.
type Repository struct {
	mu        sync.RWMutex
	items     map[string]domain.Item
	additions map[string]domain.Addition
}

func NewRepository() *Repository {
	return &Repository{
		items:     map[string]domain.Item{},
		additions: map[string]domain.Addition{},
	}
}

// NewSeededRepository returns a repository preloaded with the house menu.
func NewSeededRepository() *Repository {
	r := NewRepository()
	for _, item := range SeedItems() {
		r.items[item.ID] = cloneItem(item)
	}
	for _, a := range SeedAdditions() {
		r.additions[a.ID] = a
	}
	return r
}

func (r *Repository) ListItems(_ context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Item, 0, len(r.items))
	for _, id := range slices.Sorted(maps.Keys(r.items)) {
		list = append(list, cloneItem(r.items[id]))
	}
	return list, nil
}

func (r *Repository) GetItem(_ context.Context, id string) (domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, ports.ErrNotFound
	}
	return cloneItem(item), nil
}

func (r *Repository) SaveItem(_ context.Context, item domain.Item) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

func (r *Repository) ListAdditions(_ context.Context) ([]domain.Addition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Addition, 0, len(r.additions))
	for _, id := range slices.Sorted(maps.Keys(r.additions)) {
		list = append(list, r.additions[id])
	}
	return list, nil
}

func (r *Repository) GetAddition(_ context.Context, id string) (domain.Addition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.additions[id]
	if !ok {
		return domain.Addition{}, ports.ErrNotFound
	}
	return a, nil
}

func (r *Repository) SaveAddition(_ context.Context, addition domain.Addition) (domain.Addition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.additions[addition.ID] = addition
	return addition, nil
}

func cloneItem(item domain.Item) domain.Item {
	item.SizePrices = maps.Clone(item.SizePrices)
	item.Ingredients = slices.Clone(item.Ingredients)
	return item
}
