package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
	ordermemory "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/application"
	orderdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

type switchableAvailability struct {
	mu   sync.Mutex
	open bool
}

func (a *switchableAvailability) AcceptingOrders(context.Context) (bool, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open, "Fechado agora"
}

func setup(t *testing.T, open bool) (*Service, *memory.Store) {
	t.Helper()
	catalog := catalogapp.NewService(catalogmemory.NewSeededRepository())
	orders := orderapp.NewService(ordermemory.NewRepository(), orderapp.WithAvailability(&switchableAvailability{open: open}))
	store := memory.NewStore()
	return NewService(store, catalog, orders), store
}

func margueritaMedium() catalogports.ComposeInput {
	return catalogports.ComposeInput{
		BaseItemID: "sq-marguerita",
		Size:       catalogdomain.SizeMedium,
		FlavorIDs:  []string{"sq-marguerita"},
		Quantity:   1,
	}
}

func pickup() ports.CheckoutInput {
	return ports.CheckoutInput{
		Customer: orderdomain.Customer{Name: "Carla", Phone: "21 99999-0000", DeliveryType: orderdomain.DeliveryTypePickup},
		Payment:  orderdomain.Payment{Method: orderdomain.MethodCash},
	}
}

func TestAddItem_MergesByItemAndSize(t *testing.T) {
	svc, _ := setup(t, true)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", margueritaMedium())
	require.NoError(t, err)

	withBacon := margueritaMedium()
	withBacon.FlavorIDs = []string{"sq-marguerita", "sq-calabresa"}
	withBacon.AdditionIDs = []string{"ad-bacon"}
	view, err := svc.AddItem(ctx, "s1", withBacon)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Empty(t, view.Lines[0].Additions)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("70.00")), view.Total.String())
}

func TestAddItem_CompositionErrorLeavesCartUntouched(t *testing.T) {
	svc, _ := setup(t, true)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", margueritaMedium())
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "s1", catalogports.ComposeInput{
		BaseItemID: "rd-mussarela",
		Size:       catalogdomain.SizeSmall,
		FlavorIDs:  []string{"rd-mussarela", "rd-pepperoni"},
	})
	require.ErrorIs(t, err, catalogdomain.ErrComposition)

	view, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestUpdateAndRemove(t *testing.T) {
	svc, _ := setup(t, true)
	ctx := context.Background()
	key := catalogdomain.LineKey{BaseItemID: "sq-marguerita", Size: catalogdomain.SizeMedium}
	_, err := svc.AddItem(ctx, "s1", margueritaMedium())
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "s1", key, 3)
	require.NoError(t, err)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("105.00")))

	view, err = svc.RemoveItem(ctx, "s1", key)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = svc.RemoveItem(ctx, "s1", key)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "s1", key, 1)
	require.Error(t, err)
}

func TestCheckout_RoundTrip(t *testing.T) {
	svc, _ := setup(t, true)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", margueritaMedium())
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", catalogports.ComposeInput{BaseItemID: "bv-guarana-2l", Size: catalogdomain.SizeMedium, FlavorIDs: []string{"bv-guarana-2l"}, Quantity: 2})
	require.NoError(t, err)

	before, err := svc.View(ctx, "s1")
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, "s1", pickup())
	require.NoError(t, err)
	assert.Equal(t, before.Lines, order.Items)
	assert.True(t, before.Total.Equal(order.Total))
	assert.Equal(t, orderdomain.StatusNew, order.Status)

	after, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, after.Lines)
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	svc, _ := setup(t, false)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", margueritaMedium())
	require.NoError(t, err)
	before, err := svc.View(ctx, "s1")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "s1", pickup())
	require.ErrorIs(t, err, orderapp.ErrStoreClosed)

	after, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := setup(t, true)
	_, err := svc.Checkout(context.Background(), "s1", pickup())
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, orderdomain.ErrValidation)
}

func TestAddItem_ConcurrentAddsMerge(t *testing.T) {
	svc, _ := setup(t, true)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "s1", margueritaMedium())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 20, view.Lines[0].Quantity)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := setup(t, true)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", margueritaMedium())
	require.NoError(t, err)

	view, err := svc.View(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = svc.View(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}
