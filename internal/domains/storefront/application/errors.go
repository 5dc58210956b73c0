package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
)

// ErrInvalidInput signals the submitted schedule is malformed.
var ErrInvalidInput = errors.New("invalid schedule input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidTime) || errors.Is(err, domain.ErrUnknownWeekday) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
