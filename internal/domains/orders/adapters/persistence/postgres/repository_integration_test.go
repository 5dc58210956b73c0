//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizzeria/internal/platform/postgres/postgrestest"
)

func newTestOrder(t *testing.T, id string, payment domain.Payment, at time.Time) *domain.Order {
	t.Helper()
	customer := domain.Customer{
		Name:         "Bruno",
		Phone:        "11987654321",
		DeliveryType: domain.DeliveryTypeDelivery,
		Address:      "Rua das Flores, 10",
		Neighborhood: "Centro",
		Location:     &domain.GeoPoint{Lat: -23.55, Lng: -46.63},
	}
	lines := []catalogdomain.ComposedLine{{
		BaseItemID:   "sq-calabresa",
		BaseItemName: "Calabresa",
		Category:     catalogdomain.CategorySquare,
		Size:         catalogdomain.SizeFamily,
		Flavors:      []catalogdomain.Flavor{{ID: "sq-calabresa", Name: "Calabresa"}, {ID: "sq-marguerita", Name: "Marguerita"}},
		Additions:    []catalogdomain.SelectedAddition{{ID: "ad-bacon", Name: "Bacon", Price: decimal.RequireFromString("6.00")}},
		Quantity:     2,
		UnitPrice:    decimal.RequireFromString("66.00"),
	}}
	order, err := domain.NewOrder(id, customer, lines, payment, at)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	db := postgrestest.Start(t, &OrderRecord{})
	repo := NewRepository(db)
	ctx := context.Background()

	change := decimal.RequireFromString("150.00")
	order := newTestOrder(t, "o-1", domain.Payment{Method: domain.MethodCash, NeedsChange: true, ChangeAmount: &change}, time.Now().UTC())

	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, domain.StatusNew, saved.Status)
	assert.True(t, saved.Total.Equal(decimal.RequireFromString("132.00")), saved.Total.String())

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Len(t, fetched.Items[0].Flavors, 2)
	assert.Equal(t, "Bacon", fetched.Items[0].Additions[0].Name)
	require.NotNil(t, fetched.Payment.ChangeAmount)
	assert.True(t, fetched.Payment.ChangeAmount.Equal(change))
	require.NotNil(t, fetched.Customer.Location)
	assert.InDelta(t, -23.55, fetched.Customer.Location.Lat, 1e-9)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdatesStatusAndPayment(t *testing.T) {
	db := postgrestest.Start(t, &OrderRecord{})
	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.Save(ctx, newTestOrder(t, "o-2", domain.Payment{Method: domain.MethodPix, PixCode: "000201"}, time.Now().UTC()))
	require.NoError(t, err)
	assert.Equal(t, 1, order.Version)

	_, _, err = order.Advance(time.Now().UTC())
	require.NoError(t, err)
	_, err = order.ConfirmPix(time.Now().UTC())
	require.NoError(t, err)

	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	assert.True(t, updated.Payment.Paid)
	assert.Equal(t, "000201", updated.Payment.PixCode)
	assert.Equal(t, 2, updated.Version)
}

func TestRepository_SaveGuardsVersionAndStatus(t *testing.T) {
	db := postgrestest.Start(t, &OrderRecord{})
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Save(ctx, newTestOrder(t, "o-3", domain.Payment{Method: domain.MethodCash}, time.Now().UTC()))
	require.NoError(t, err)

	_, err = repo.Save(ctx, newTestOrder(t, "o-3", domain.Payment{Method: domain.MethodCash}, time.Now().UTC()))
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	replicaA, replicaB := first.Clone(), first.Clone()
	_, _, err = replicaA.Advance(time.Now().UTC())
	require.NoError(t, err)
	_, _, err = replicaB.Advance(time.Now().UTC())
	require.NoError(t, err)

	_, err = repo.Save(ctx, replicaA)
	require.NoError(t, err)
	_, err = repo.Save(ctx, replicaB)
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	current, err := repo.GetByID(ctx, "o-3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, current.Status)
	assert.Equal(t, 2, current.Version)

	current.Status = domain.StatusCompleted
	_, err = repo.Save(ctx, current)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)

	missing := first.Clone()
	missing.ID = "o-missing"
	_, err = repo.Save(ctx, missing)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListFiltersByStatus(t *testing.T) {
	db := postgrestest.Start(t, &OrderRecord{})
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"o-a", "o-b", "o-c"} {
		order := newTestOrder(t, id, domain.Payment{Method: domain.MethodCash}, base.Add(time.Duration(i)*time.Minute))
		if id == "o-b" {
			_, err := order.Cancel(base)
			require.NoError(t, err)
		}
		_, err := repo.Save(ctx, order)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "o-a", all[0].ID)
	assert.Equal(t, "o-c", all[2].ID)

	cancelled, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "o-b", cancelled[0].ID)
}
