package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
)

// Service orchestrates catalog listing and line composition.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

var categoryOrder = map[domain.Category]int{
	domain.CategorySquare:   0,
	domain.CategoryRound:    1,
	domain.CategorySweet:    2,
	domain.CategoryBeverage: 3,
}

// ListCatalog returns active items ordered by category, then name.
func (s *Service) ListCatalog(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.Active {
			active = append(active, item)
		}
	}
	slices.SortStableFunc(active, func(a, b domain.Item) int {
		if d := categoryOrder[a.Category] - categoryOrder[b.Category]; d != 0 {
			return d
		}
		return strings.Compare(a.Name, b.Name)
	})
	return active, nil
}

// ListAdditions returns active additions ordered by name.
func (s *Service) ListAdditions(ctx context.Context) ([]domain.Addition, error) {
	additions, err := s.repo.ListAdditions(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Addition, 0, len(additions))
	for _, a := range additions {
		if a.Active {
			active = append(active, a)
		}
	}
	slices.SortStableFunc(active, func(a, b domain.Addition) int { return strings.Compare(a.Name, b.Name) })
	return active, nil
}

// Compose resolves ids through the repository and runs the composition engine.
func (s *Service) Compose(ctx context.Context, input ports.ComposeInput) (domain.ComposedLine, error) {
	base, err := s.item(ctx, input.BaseItemID)
	if err != nil {
		return domain.ComposedLine{}, mapError(err)
	}
	flavors := make([]domain.Item, 0, len(input.FlavorIDs))
	for _, id := range input.FlavorIDs {
		flavor, err := s.item(ctx, id)
		if err != nil {
			return domain.ComposedLine{}, mapError(err)
		}
		flavors = append(flavors, flavor)
	}
	additions := make([]domain.Addition, 0, len(input.AdditionIDs))
	for _, id := range input.AdditionIDs {
		addition, err := s.repo.GetAddition(ctx, id)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return domain.ComposedLine{}, mapError(fmt.Errorf("%w: addition %q", ErrUnknownEntry, id))
			}
			return domain.ComposedLine{}, err
		}
		additions = append(additions, addition)
	}
	line, err := domain.Compose(domain.ComposeRequest{
		Base:      base,
		Size:      input.Size,
		Flavors:   flavors,
		Additions: additions,
		Notes:     input.Notes,
		Quantity:  input.Quantity,
	})
	if err != nil {
		return domain.ComposedLine{}, mapError(err)
	}
	return line, nil
}

func (s *Service) SaveItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := item.Validate(); err != nil {
		return domain.Item{}, mapError(err)
	}
	return s.repo.SaveItem(ctx, item)
}

func (s *Service) SaveAddition(ctx context.Context, addition domain.Addition) (domain.Addition, error) {
	if err := addition.Validate(); err != nil {
		return domain.Addition{}, mapError(err)
	}
	return s.repo.SaveAddition(ctx, addition)
}

func (s *Service) item(ctx context.Context, id string) (domain.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.Item{}, fmt.Errorf("%w: item %q", ErrUnknownEntry, id)
	}
	return item, err
}

var _ ports.Service = (*Service)(nil)
