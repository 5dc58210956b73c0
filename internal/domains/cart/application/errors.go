package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/domain"
	orderdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptySessionID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrEmptyCart) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, &orderdomain.ValidationError{Fields: []string{"items"}, Err: orderdomain.ErrNoItems})
	}
	return err
}
