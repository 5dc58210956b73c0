package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
)

func TestListCatalog_ActiveItemsGroupedByCategory(t *testing.T) {
	repo := memory.NewSeededRepository()
	_, err := repo.SaveItem(context.Background(), domain.Item{
		ID:         "sq-retired",
		Name:       "Aaa Retired",
		Category:   domain.CategorySquare,
		SizePrices: map[domain.Size]decimal.Decimal{domain.SizeMedium: decimal.NewFromInt(30)},
	})
	require.NoError(t, err)
	svc := NewService(repo)

	items, err := svc.ListCatalog(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)
	require.Equal(t, domain.CategorySquare, items[0].Category)
	require.Equal(t, domain.CategoryBeverage, items[len(items)-1].Category)
	for _, item := range items {
		require.NotEqual(t, "sq-retired", item.ID)
	}
}

func TestCompose_ResolvesIDs(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	line, err := svc.Compose(context.Background(), ports.ComposeInput{
		BaseItemID:  "sq-calabresa",
		Size:        domain.SizeMedium,
		FlavorIDs:   []string{"sq-calabresa", "sq-marguerita"},
		AdditionIDs: []string{"ad-bacon"},
	})
	require.NoError(t, err)
	require.Equal(t, "Calabresa", line.BaseItemName)
	require.Len(t, line.Flavors, 2)
	require.True(t, line.UnitPrice.Equal(decimal.RequireFromString("41.00")), line.UnitPrice.String())
}

func TestCompose_UnknownIDsAreInvalidInput(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	_, err := svc.Compose(context.Background(), ports.ComposeInput{BaseItemID: "nope", Size: domain.SizeMedium})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ErrUnknownEntry)

	_, err = svc.Compose(context.Background(), ports.ComposeInput{
		BaseItemID:  "rd-mussarela",
		Size:        domain.SizeMedium,
		FlavorIDs:   []string{"rd-mussarela"},
		AdditionIDs: []string{"ad-missing"},
	})
	require.ErrorIs(t, err, ErrUnknownEntry)
}

func TestCompose_DomainErrorsPassThrough(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	_, err := svc.Compose(context.Background(), ports.ComposeInput{
		BaseItemID: "rd-quatro-queijos",
		Size:       domain.SizeSmall,
		FlavorIDs:  []string{"rd-quatro-queijos"},
	})
	require.ErrorIs(t, err, domain.ErrSizeUnavailable)
	require.NotErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Compose(context.Background(), ports.ComposeInput{
		BaseItemID: "rd-mussarela",
		Size:       domain.SizeSmall,
		FlavorIDs:  []string{"rd-mussarela", "rd-pepperoni"},
	})
	require.ErrorIs(t, err, domain.ErrComposition)
}

func TestSaveItem_Validates(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SaveItem(context.Background(), domain.Item{ID: "x", Name: "X", Category: "calzone"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
