package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrPaymentPrecondition = errors.New("payment precondition failed")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrAlreadyTerminal     = errors.New("order already terminal")
	ErrInvalidStatus       = errors.New("order status is invalid")
	ErrNoItems             = errors.New("order requires at least one item")
	ErrConcurrentUpdate    = errors.New("order was modified concurrently")
)

// ValidationError lists the offending input fields. Err optionally names the
// specific rule that failed.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

// PaymentPreconditionError reports a payment that cannot be accepted for the order.
type PaymentPreconditionError struct {
	Method Method
	Reason string
}

func (e *PaymentPreconditionError) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrPaymentPrecondition, e.Method, e.Reason)
}

func (e *PaymentPreconditionError) Is(target error) bool { return target == ErrPaymentPrecondition }

// IllegalTransitionError reports a move that is not the single forward step.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// AlreadyTerminalError reports any operation attempted on a completed or cancelled order.
type AlreadyTerminalError struct {
	Status Status
	Action string
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("%s: cannot %s a %s order", ErrAlreadyTerminal, e.Action, e.Status)
}

func (e *AlreadyTerminalError) Is(target error) bool { return target == ErrAlreadyTerminal }
