package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxNotesLength bounds the free-text notes on a line, in runes.
const MaxNotesLength = 200

// Flavor identifies one catalog item contributing to a composition.
type Flavor struct {
	ID   string
	Name string
}

// SelectedAddition freezes an addition's price at composition time.
type SelectedAddition struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// LineKey is the cart identity of a composed line.
type LineKey struct {
	BaseItemID string
	Size       Size
}

// ComposedLine is a priced, purchasable composition.
type ComposedLine struct {
	BaseItemID   string
	BaseItemName string
	Category     Category
	Size         Size
	Flavors      []Flavor
	Additions    []SelectedAddition
	Notes        string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// Key returns the line's cart identity. Flavors, additions and notes do not take part.
func (l ComposedLine) Key() LineKey {
	return LineKey{BaseItemID: l.BaseItemID, Size: l.Size}
}

// Subtotal is UnitPrice × Quantity.
func (l ComposedLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone deep-copies the slices so snapshots never alias cart state.
func (l ComposedLine) Clone() ComposedLine {
	l.Flavors = append([]Flavor(nil), l.Flavors...)
	l.Additions = append([]SelectedAddition(nil), l.Additions...)
	return l
}

// ComposeRequest carries resolved catalog entities into Compose.
type ComposeRequest struct {
	Base      Item
	Size      Size
	Flavors   []Item
	Additions []Addition
	Notes     string
	Quantity  int
}

// Compose validates flavor bounds and prices a line. It performs no I/O.
func Compose(req ComposeRequest) (ComposedLine, error) {
	base := req.Base
	if !base.Active {
		return ComposedLine{}, &CompositionError{Rule: RuleItemInactive, Detail: base.ID}
	}
	if !req.Size.Valid() {
		return ComposedLine{}, fmt.Errorf("%w: %q", ErrInvalidSize, req.Size)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return ComposedLine{}, ErrInvalidQuantity
	}
	notes := strings.TrimSpace(req.Notes)
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return ComposedLine{}, fmt.Errorf("%w: %d", ErrNotesTooLong, MaxNotesLength)
	}

	flavors, err := composeFlavors(base, req.Size, req.Flavors)
	if err != nil {
		return ComposedLine{}, err
	}
	additions, err := composeAdditions(base, req.Additions)
	if err != nil {
		return ComposedLine{}, err
	}

	price, err := base.Price(req.Size)
	if err != nil {
		return ComposedLine{}, err
	}
	for _, a := range additions {
		price = price.Add(a.Price)
	}

	return ComposedLine{
		BaseItemID:   base.ID,
		BaseItemName: base.Name,
		Category:     base.Category,
		Size:         req.Size,
		Flavors:      flavors,
		Additions:    additions,
		Notes:        notes,
		Quantity:     quantity,
		UnitPrice:    price,
	}, nil
}

func composeFlavors(base Item, size Size, candidates []Item) ([]Flavor, error) {
	if len(candidates) == 0 {
		return nil, &CompositionError{Rule: RuleFlavorRequired, Detail: "select at least one flavor"}
	}
	if singleFlavor(base.Category) {
		if len(candidates) > 1 || candidates[0].ID != base.ID {
			return nil, &CompositionError{
				Rule:   RuleSingleFlavor,
				Limit:  1,
				Got:    len(candidates),
				Detail: fmt.Sprintf("%s items cannot mix flavors", base.Category),
			}
		}
		return []Flavor{{ID: base.ID, Name: base.Name}}, nil
	}

	limit := MaxFlavors(base.Category, size)
	if len(candidates) > limit {
		return nil, &CompositionError{
			Rule:   RuleFlavorCount,
			Limit:  limit,
			Got:    len(candidates),
			Detail: fmt.Sprintf("%s/%s", base.Category, size),
		}
	}
	seen := make(map[string]struct{}, len(candidates))
	flavors := make([]Flavor, 0, len(candidates))
	for _, f := range candidates {
		if f.Category != base.Category {
			return nil, &CompositionError{
				Rule:   RuleFlavorCategory,
				Detail: fmt.Sprintf("flavor %q is %s, base is %s", f.ID, f.Category, base.Category),
			}
		}
		if !f.Active {
			return nil, &CompositionError{Rule: RuleItemInactive, Detail: f.ID}
		}
		if _, dup := seen[f.ID]; dup {
			return nil, &CompositionError{Rule: RuleFlavorDuplicate, Detail: f.ID}
		}
		seen[f.ID] = struct{}{}
		flavors = append(flavors, Flavor{ID: f.ID, Name: f.Name})
	}
	return flavors, nil
}

func composeAdditions(base Item, candidates []Addition) ([]SelectedAddition, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if !AllowsAdditions(base.Category) {
		return nil, &CompositionError{Rule: RuleAdditionsForbidden, Detail: string(base.Category)}
	}
	seen := make(map[string]struct{}, len(candidates))
	selected := make([]SelectedAddition, 0, len(candidates))
	for _, a := range candidates {
		if !a.Active {
			return nil, &CompositionError{Rule: RuleAdditionInactive, Detail: a.ID}
		}
		if _, dup := seen[a.ID]; dup {
			return nil, &CompositionError{Rule: RuleAdditionDuplicate, Detail: a.ID}
		}
		seen[a.ID] = struct{}{}
		selected = append(selected, SelectedAddition{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return selected, nil
}
