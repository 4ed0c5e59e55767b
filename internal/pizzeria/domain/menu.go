// Package domain defines the pizza catalog and order entities.
package domain

// MenuEntry is a pizza type offered by every restaurant in the catalog.
// Prices are kept in cents to avoid float drift in totals.
type MenuEntry struct {
	ID             string
	Name           string
	Description    string
	BasePriceCents int
}

// Restaurant is a delivery source with a flat fee.
type Restaurant struct {
	ID               string
	Name             string
	Phone            string
	DeliveryFeeCents int
}

// Size scales the base price of a pizza.
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

// sizeMultiplierPercent holds the recognized sizes and their price
// multipliers in percent, so price math stays integral.
var sizeMultiplierPercent = map[Size]int{
	SizeSmall:      80,
	SizeMedium:     100,
	SizeLarge:      120,
	SizeExtraLarge: 140,
}

// ValidSize reports whether s is in the recognized size set.
func ValidSize(s Size) bool {
	_, ok := sizeMultiplierPercent[s]
	return ok
}

// UnitPriceCents scales a base price by the size multiplier, rounding to
// the nearest cent.
func UnitPriceCents(basePriceCents int, size Size) int {
	percent, ok := sizeMultiplierPercent[size]
	if !ok {
		percent = 100
	}
	return (basePriceCents*percent + 50) / 100
}
