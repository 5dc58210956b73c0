package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups catalog items; it drives the flavor limits.
type Category string

const (
	CategorySquare   Category = "square"
	CategoryRound    Category = "round"
	CategorySweet    Category = "sweet"
	CategoryBeverage Category = "beverage"
)

// Size is a pizza size. Beverages reuse it but are priced the same for every size.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeFamily Size = "family"
)

// Sizes lists sizes from smallest to largest.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge, SizeFamily}

var (
	ErrEmptyItemID       = errors.New("item id is required")
	ErrEmptyItemName     = errors.New("item name is required")
	ErrInvalidCategory   = errors.New("item category is invalid")
	ErrInvalidSize       = errors.New("size is invalid")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrMissingMediumSize = errors.New("pizza and sweet items must offer the medium size")
	ErrNoPrices          = errors.New("item must offer at least one size")
)

// Item is a sellable catalog entry: a pizza flavor, a sweet pizza or a beverage.
type Item struct {
	ID          string
	Name        string
	Category    Category
	SizePrices  map[Size]decimal.Decimal
	Ingredients []string
	Active      bool
}

// Price returns the price for size, or SizeUnavailableError when the item does not offer it.
func (i Item) Price(size Size) (decimal.Decimal, error) {
	price, ok := i.SizePrices[size]
	if !ok {
		return decimal.Zero, &SizeUnavailableError{ItemID: i.ID, Size: size}
	}
	return price, nil
}

// Offers reports whether the item defines a price for size.
func (i Item) Offers(size Size) bool {
	_, ok := i.SizePrices[size]
	return ok
}

// Validate enforces catalog invariants. Presence of sizes is checked, not price equality.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyItemID
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, i.Category)
	}
	if len(i.SizePrices) == 0 {
		return ErrNoPrices
	}
	for size, price := range i.SizePrices {
		if !size.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidSize, size)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: %s %s", ErrNegativePrice, size, price)
		}
	}
	if i.Category != CategoryBeverage && !i.Offers(SizeMedium) {
		return ErrMissingMediumSize
	}
	return nil
}

func (c Category) Valid() bool {
	switch c {
	case CategorySquare, CategoryRound, CategorySweet, CategoryBeverage:
		return true
	default:
		return false
	}
}

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeFamily:
		return true
	default:
		return false
	}
}

// ParseSize normalizes case and surrounding space.
func ParseSize(value string) (Size, error) {
	size := Size(strings.ToLower(strings.TrimSpace(value)))
	if !size.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSize, value)
	}
	return size, nil
}

// ParseCategory normalizes case and surrounding space.
func ParseCategory(value string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	if !category.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
	}
	return category, nil
}

// Addition is an optional extra layered onto a composition.
type Addition struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	Active   bool
}

// Validate enforces addition invariants.
func (a Addition) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyItemID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyItemName
	}
	if a.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
