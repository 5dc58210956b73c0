package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrStoreClosed is returned by SubmitOrder outside opening hours.
	ErrStoreClosed = errors.New("store is closed")
)

// StoreClosedError carries the message customers should see.
type StoreClosedError struct {
	Message string
}

func (e *StoreClosedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStoreClosed, e.Message)
}

func (e *StoreClosedError) Is(target error) bool { return target == ErrStoreClosed }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrEmptyOrderID) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
