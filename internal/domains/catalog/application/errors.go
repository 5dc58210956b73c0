package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrUnknownEntry is returned when a composition references a missing item or addition.
	ErrUnknownEntry = errors.New("unknown catalog entry")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyItemID) ||
		errors.Is(err, domain.ErrEmptyItemName) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrMissingMediumSize) ||
		errors.Is(err, domain.ErrNoPrices) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNotesTooLong) ||
		errors.Is(err, ErrUnknownEntry) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
