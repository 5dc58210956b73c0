package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrComposition is matched by every CompositionError.
	ErrComposition = errors.New("composition rule violated")
	// ErrSizeUnavailable is matched by every SizeUnavailableError.
	ErrSizeUnavailable = errors.New("size not offered")

	ErrInvalidQuantity = errors.New("quantity must be at least one")
	ErrNotesTooLong    = errors.New("notes exceed the maximum length")
)

// Composition rules named by CompositionError.Rule.
const (
	RuleFlavorRequired     = "flavor_required"
	RuleFlavorCount        = "flavor_count"
	RuleFlavorCategory     = "flavor_category"
	RuleFlavorDuplicate    = "flavor_duplicate"
	RuleSingleFlavor       = "single_flavor"
	RuleAdditionsForbidden = "additions_forbidden"
	RuleAdditionInactive   = "addition_inactive"
	RuleAdditionDuplicate  = "addition_duplicate"
	RuleItemInactive       = "item_inactive"
)

// CompositionError names the composition bound a request violated.
type CompositionError struct {
	Rule   string
	Limit  int
	Got    int
	Detail string
}

func (e *CompositionError) Error() string {
	switch {
	case e.Rule == RuleFlavorCount:
		return fmt.Sprintf("composition: %d flavors selected, at most %d allowed (%s)", e.Got, e.Limit, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("composition: %s: %s", e.Rule, e.Detail)
	default:
		return "composition: " + e.Rule
	}
}

func (e *CompositionError) Is(target error) bool { return target == ErrComposition }

// SizeUnavailableError reports a size the item does not define.
type SizeUnavailableError struct {
	ItemID string
	Size   Size
}

func (e *SizeUnavailableError) Error() string {
	return fmt.Sprintf("item %q is not offered in size %q", e.ItemID, e.Size)
}

func (e *SizeUnavailableError) Is(target error) bool { return target == ErrSizeUnavailable }
