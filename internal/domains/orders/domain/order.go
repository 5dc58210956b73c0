package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var ErrEmptyOrderID = errors.New("order id is required")

// Order is the submitted cart snapshot plus its fulfillment state.
// Customer, Items, Total and the payment method are fixed at creation.
// Version is zero until the order is first persisted and grows by one per save.
type Order struct {
	ID        string
	Customer  Customer
	Items     []catalogdomain.ComposedLine
	Total     decimal.Decimal
	Payment   Payment
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// NewOrder validates the customer and items and builds an order in status new.
// Method-specific payment preparation beyond the cash precondition is left to the caller.
func NewOrder(id string, customer Customer, items []catalogdomain.ComposedLine, payment Payment, now time.Time) (*Order, error) {
	if id == "" {
		return nil, ErrEmptyOrderID
	}
	customer, err := customer.Normalize()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &ValidationError{Fields: []string{"items"}, Err: ErrNoItems}
	}
	method, ok := ParseMethod(string(payment.Method))
	if !ok {
		return nil, &ValidationError{Fields: []string{"payment.method"}}
	}
	payment.Method = method
	snapshot := make([]catalogdomain.ComposedLine, len(items))
	total := decimal.Zero
	for i, line := range items {
		if line.Quantity < 1 {
			return nil, &ValidationError{Fields: []string{"items.quantity"}}
		}
		snapshot[i] = line.Clone()
		total = total.Add(line.Subtotal())
	}

	payment.Paid, payment.Confirmed = false, false
	if payment.Method == MethodCash {
		if err := CheckCash(payment, total); err != nil {
			return nil, err
		}
		if !payment.NeedsChange {
			payment.ChangeAmount = nil
		}
	} else {
		payment.NeedsChange, payment.ChangeAmount = false, nil
	}

	return &Order{
		ID:        id,
		Customer:  customer,
		Items:     snapshot,
		Total:     total,
		Payment:   payment,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Advance moves the order one step along the forward chain.
func (o *Order) Advance(now time.Time) (from, to Status, err error) {
	from = o.Status
	next, ok := NextStatus(from)
	if !ok {
		if from.Terminal() {
			return from, from, &AlreadyTerminalError{Status: from, Action: "advance"}
		}
		return from, from, &IllegalTransitionError{From: from}
	}
	o.Status = next
	o.UpdatedAt = now
	return from, next, nil
}

// Cancel moves any non-terminal order to cancelled.
func (o *Order) Cancel(now time.Time) (Status, error) {
	from := o.Status
	if from.Terminal() {
		return from, &AlreadyTerminalError{Status: from, Action: "cancel"}
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now
	return from, nil
}

// ConfirmCash records the front-desk confirmation of a cash payment. It never changes
// the status. Repeated confirmations report changed=false.
func (o *Order) ConfirmCash(now time.Time) (changed bool, err error) {
	if err := o.confirmable(MethodCash); err != nil {
		return false, err
	}
	if o.Payment.Confirmed {
		return false, nil
	}
	o.Payment.Confirmed = true
	o.UpdatedAt = now
	return true, nil
}

// ConfirmPix records the provider callback for a pix payment.
func (o *Order) ConfirmPix(now time.Time) (changed bool, err error) {
	if err := o.confirmable(MethodPix); err != nil {
		return false, err
	}
	if o.Payment.Paid {
		return false, nil
	}
	o.Payment.Paid = true
	o.UpdatedAt = now
	return true, nil
}

func (o *Order) confirmable(method Method) error {
	if o.Status == StatusCancelled {
		return &AlreadyTerminalError{Status: o.Status, Action: "confirm payment of"}
	}
	if o.Payment.Method != method {
		return &PaymentPreconditionError{Method: o.Payment.Method, Reason: "order is not paid with " + string(method)}
	}
	return nil
}

// Supersedes checks that o may replace the stored copy: both must descend from the
// same version, and a status change must be a legal move of the state machine.
func (o *Order) Supersedes(stored *Order) error {
	if stored.Version != o.Version {
		return fmt.Errorf("%w: order %s is at version %d, update based on %d", ErrConcurrentUpdate, o.ID, stored.Version, o.Version)
	}
	if stored.Status == o.Status {
		return nil
	}
	return Transition(stored.Status, o.Status)
}

// Clone returns a deep copy safe to hand across goroutines.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = make([]catalogdomain.ComposedLine, len(o.Items))
	for i, line := range o.Items {
		cp.Items[i] = line.Clone()
	}
	if o.Customer.Location != nil {
		loc := *o.Customer.Location
		cp.Customer.Location = &loc
	}
	if o.Payment.ChangeAmount != nil {
		amount := *o.Payment.ChangeAmount
		cp.Payment.ChangeAmount = &amount
	}
	return &cp
}
