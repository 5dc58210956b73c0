package domain

type ruleKey struct {
	category Category
	size     Size
}

// flavorLimits is the single source of truth for multi-flavor composition.
var flavorLimits = map[ruleKey]int{
	{CategorySquare, SizeSmall}:  2,
	{CategorySquare, SizeMedium}: 2,
	{CategorySquare, SizeLarge}:  2,
	{CategorySquare, SizeFamily}: 4,
	{CategoryRound, SizeSmall}:   1,
	{CategoryRound, SizeMedium}:  3,
	{CategoryRound, SizeLarge}:   3,
	{CategoryRound, SizeFamily}:  3,
}

// MaxFlavors returns how many flavors a composition of category at size may combine.
// Sweets, beverages and unknown pairs allow a single flavor.
func MaxFlavors(category Category, size Size) int {
	if limit, ok := flavorLimits[ruleKey{category, size}]; ok {
		return limit
	}
	return 1
}

// AllowsAdditions reports whether extras can be layered onto items of category.
func AllowsAdditions(category Category) bool {
	return category != CategoryBeverage
}

// singleFlavor categories never mix flavors.
func singleFlavor(category Category) bool {
	return category == CategorySweet || category == CategoryBeverage
}
