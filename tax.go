package geflip

import "strings"

// Grand Exchange tax rules: 2% of the total sale value, capped per
// transaction, with a fixed list of exempt items and a price floor under
// which sales are untaxed.
const (
	// taxRateDivisor encodes the 2% rate as an integer division (value/50)
	// so the tax is exact for any gp amount.
	taxRateDivisor = 50

	// TaxCap is the maximum tax charged on a single transaction.
	TaxCap = 5_000_000

	// TaxThreshold is the per-unit price under which sales are untaxed.
	TaxThreshold = 100
)

// taxExemptItems lists the items the Grand Exchange never taxes: bonds,
// staple foods, basic gathering/crafting tools, teleports and common
// ammunition. Keys are lower-cased item names.
var taxExemptItems = map[string]struct{}{
	"old school bond": {},

	// foods
	"bread":          {},
	"cooked chicken": {},
	"cooked meat":    {},
	"lobster":        {},
	"swordfish":      {},
	"shark":          {},

	// basic tools
	"chisel":             {},
	"gardening trowel":   {},
	"glassblowing pipe":  {},
	"hammer":             {},
	"needle":             {},
	"pestle and mortar":  {},
	"rake":               {},
	"saw":                {},
	"secateurs":          {},
	"seed dibber":        {},
	"shears":             {},
	"spade":              {},
	"bucket":             {},
	"tinderbox":          {},
	"knife":              {},
	"fishing rod":        {},
	"small fishing net":  {},

	// teleports
	"varrock teleport":   {},
	"lumbridge teleport": {},
	"falador teleport":   {},
	"camelot teleport":   {},
	"teleport to house":  {},

	// ammunition staples
	"bronze arrow": {},
	"iron arrow":   {},
	"steel arrow":  {},
	"mithril arrow": {},
	"adamant arrow": {},
	"rune arrow":    {},
	"bronze bolts":  {},
	"iron bolts":    {},
}

// IsTaxExempt reports whether an item is exempt from the Grand Exchange tax.
// The match is case-insensitive on the item name.
func IsTaxExempt(itemName string) bool {
	_, ok := taxExemptItems[strings.ToLower(itemName)]
	return ok
}

// CalculateGeTax returns the Grand Exchange tax for selling quantity units
// of an item at sellPrice gp each.
//
// The tax is 2% of the total transaction value (price x quantity), floored,
// and capped at TaxCap. It is computed on the whole transaction, never
// summed per unit: capping per-unit tax would materially understate the tax
// on large orders. Exempt items and per-unit prices under TaxThreshold pay
// no tax.
func CalculateGeTax(itemName string, sellPrice, quantity int64) int64 {
	if sellPrice < TaxThreshold || quantity <= 0 {
		return 0
	}
	if IsTaxExempt(itemName) {
		return 0
	}
	tax := sellPrice * quantity / taxRateDivisor
	if tax > TaxCap {
		return TaxCap
	}
	return tax
}
