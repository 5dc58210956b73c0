package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/application"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

type availability struct {
	open bool
	msg  string
}

func (a *availability) AcceptingOrders(context.Context) (bool, string) { return a.open, a.msg }

type pixCodes struct{}

func (pixCodes) Generate(_ context.Context, orderID string, amount decimal.Decimal) (string, error) {
	return "PIX-" + orderID + "-" + amount.StringFixed(2), nil
}

type notifications struct {
	mu       sync.Mutex
	statuses []string
}

func (n *notifications) NotifyStatus(_ context.Context, note ports.StatusNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, string(note.Status))
	return nil
}

type lifecycleContext struct {
	store    *availability
	notifier *notifications
	service  *application.Service
	order    *domain.Order
	err      error
}

func (c *lifecycleContext) reset() {
	c.store = &availability{open: true}
	c.notifier = &notifications{}
	c.service = application.NewService(memory.NewRepository(),
		application.WithAvailability(c.store),
		application.WithPixGenerator(pixCodes{}),
		application.WithNotifier(c.notifier),
	)
	c.order = nil
	c.err = nil
}

func (c *lifecycleContext) theStoreIsOpen() error {
	c.store.open = true
	return nil
}

func (c *lifecycleContext) theStoreIsClosedWithMessage(msg string) error {
	c.store.open, c.store.msg = false, msg
	return nil
}

func (c *lifecycleContext) submit(method, total string, change *decimal.Decimal) error {
	price, err := decimal.NewFromString(total)
	if err != nil {
		return err
	}
	payment := domain.Payment{Method: domain.Method(method)}
	if change != nil {
		payment.NeedsChange = true
		payment.ChangeAmount = change
	}
	c.order, c.err = c.service.SubmitOrder(context.Background(), ports.SubmitOrderInput{
		Customer: domain.Customer{
			Name:         "Ana Souza",
			Phone:        "(11) 98765-4321",
			DeliveryType: domain.DeliveryTypeDelivery,
			Address:      "Rua Augusta, 500",
			Neighborhood: "Consolação",
		},
		Items: []catalogdomain.ComposedLine{{
			BaseItemID: "sq-calabresa",
			Category:   catalogdomain.CategorySquare,
			Size:       catalogdomain.SizeMedium,
			Flavors:    []catalogdomain.Flavor{{ID: "sq-calabresa", Name: "Calabresa"}},
			Quantity:   1,
			UnitPrice:  price,
		}},
		Payment: payment,
	})
	return nil
}

func (c *lifecycleContext) aSubmittedOrderTotalling(method, total string) error {
	if err := c.submit(method, total, nil); err != nil {
		return err
	}
	if c.err != nil {
		return fmt.Errorf("submit order: %w", c.err)
	}
	return nil
}

func (c *lifecycleContext) anOrderIsSubmitted(method, total string) error {
	return c.submit(method, total, nil)
}

func (c *lifecycleContext) anOrderIsSubmittedWithChange(method, total, change string) error {
	amount, err := decimal.NewFromString(change)
	if err != nil {
		return err
	}
	return c.submit(method, total, &amount)
}

func (c *lifecycleContext) apply(action func(context.Context, string) (*domain.Order, error)) error {
	if c.order == nil {
		return errors.New("no order submitted")
	}
	updated, err := action(context.Background(), c.order.ID)
	c.err = err
	if err == nil {
		c.order = updated
	}
	return nil
}

func (c *lifecycleContext) theOrderIsAdvancedTimes(n int) error {
	for i := 0; i < n; i++ {
		if err := c.apply(c.service.AdvanceStatus); err != nil {
			return err
		}
		if c.err != nil {
			return nil
		}
	}
	return nil
}

func (c *lifecycleContext) theOrderIsCancelled() error {
	return c.apply(c.service.CancelOrder)
}

func (c *lifecycleContext) thePixPaymentIsConfirmed() error {
	return c.apply(c.service.ConfirmPixPayment)
}

func (c *lifecycleContext) theCashPaymentIsConfirmed() error {
	return c.apply(c.service.ConfirmCashPayment)
}

func (c *lifecycleContext) theOrderStatusIs(want string) error {
	stored, err := c.service.GetOrder(context.Background(), c.order.ID)
	if err != nil {
		return err
	}
	if string(stored.Status) != want {
		return fmt.Errorf("expected status %q, got %q", want, stored.Status)
	}
	return nil
}

func (c *lifecycleContext) theCustomerWasNotifiedOf(list string) error {
	want := strings.Split(list, ", ")
	c.notifier.mu.Lock()
	defer c.notifier.mu.Unlock()
	if strings.Join(c.notifier.statuses, ", ") != strings.Join(want, ", ") {
		return fmt.Errorf("expected notifications %v, got %v", want, c.notifier.statuses)
	}
	return nil
}

func (c *lifecycleContext) thePaymentIsMarkedPaid() error {
	if !c.order.Payment.Paid {
		return errors.New("expected payment to be marked paid")
	}
	return nil
}

func (c *lifecycleContext) theLastActionSucceeded() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %w", c.err)
	}
	return nil
}

func (c *lifecycleContext) rejectedWith(target error) error {
	if !errors.Is(c.err, target) {
		return fmt.Errorf("expected %v, got %v", target, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &lifecycleContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the store is open$`, tc.theStoreIsOpen)
	ctx.Step(`^the store is closed with message "([^"]*)"$`, tc.theStoreIsClosedWithMessage)
	ctx.Step(`^a submitted "([^"]*)" order totalling "([^"]*)"$`, tc.aSubmittedOrderTotalling)
	ctx.Step(`^a "([^"]*)" order totalling "([^"]*)" is submitted$`, tc.anOrderIsSubmitted)
	ctx.Step(`^a "([^"]*)" order totalling "([^"]*)" is submitted with change for "([^"]*)"$`, tc.anOrderIsSubmittedWithChange)
	ctx.Step(`^the order is advanced (\d+) times$`, tc.theOrderIsAdvancedTimes)
	ctx.Step(`^the order is cancelled$`, tc.theOrderIsCancelled)
	ctx.Step(`^the pix payment is confirmed$`, tc.thePixPaymentIsConfirmed)
	ctx.Step(`^the cash payment is confirmed$`, tc.theCashPaymentIsConfirmed)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
	ctx.Step(`^the customer was notified of "([^"]*)"$`, tc.theCustomerWasNotifiedOf)
	ctx.Step(`^the payment is marked paid$`, tc.thePaymentIsMarkedPaid)
	ctx.Step(`^the last action succeeded$`, tc.theLastActionSucceeded)
	ctx.Step(`^the last action is rejected as terminal$`, func() error { return tc.rejectedWith(domain.ErrAlreadyTerminal) })
	ctx.Step(`^the last action is rejected as a payment precondition$`, func() error { return tc.rejectedWith(domain.ErrPaymentPrecondition) })
	ctx.Step(`^the last action is rejected because the store is closed$`, func() error { return tc.rejectedWith(application.ErrStoreClosed) })
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"order_lifecycle.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
