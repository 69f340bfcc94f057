package geflip

import "testing"

func TestCalculateGeTax(t *testing.T) {
	testCases := []struct {
		name     string
		item     string
		price    int64
		quantity int64
		want     int64
	}{
		{name: "basic 2%", item: "Dragon bones", price: 2500, quantity: 1, want: 50},
		{name: "1100x40 taxed on total", item: "Yew logs", price: 1100, quantity: 40, want: 880},
		{name: "under threshold", item: "Feather", price: 99, quantity: 10_000, want: 0},
		{name: "at threshold", item: "Feather", price: 100, quantity: 1, want: 2},
		{name: "exempt bond", item: "Old school bond", price: 10_000_000, quantity: 1, want: 0},
		{name: "exempt is case-insensitive", item: "old SCHOOL bond", price: 10_000_000, quantity: 1, want: 0},
		{name: "exempt food", item: "Lobster", price: 250, quantity: 100, want: 0},
		{name: "exempt ammo", item: "Rune arrow", price: 120, quantity: 5000, want: 0},
		{name: "cap reached", item: "Twisted bow", price: 1_500_000_000, quantity: 1, want: 5_000_000},
		{name: "cap on big stack", item: "Zulrah's scales", price: 300, quantity: 1_000_000_000, want: 5_000_000},
		{name: "floors the total", item: "Nature rune", price: 101, quantity: 1, want: 2},
		{name: "zero quantity", item: "Nature rune", price: 500, quantity: 0, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateGeTax(tc.item, tc.price, tc.quantity)
			if got != tc.want {
				t.Errorf("CalculateGeTax(%q, %d, %d) = %d, want %d", tc.item, tc.price, tc.quantity, got, tc.want)
			}
		})
	}
}

// The tax is computed on the whole transaction value. Summing a capped
// per-unit tax would give a different, wrong figure for large orders; this
// pins the distinction.
func TestCalculateGeTaxTotalValueNotPerUnit(t *testing.T) {
	// 333 gp per unit: per-unit tax floors to 6 gp, but 100 units tax as
	// floor(33300/50) = 666, not 600.
	got := CalculateGeTax("Adamantite ore", 333, 100)
	if got != 666 {
		t.Fatalf("tax = %d, want 666", got)
	}
	perUnit := CalculateGeTax("Adamantite ore", 333, 1) * 100
	if perUnit == got {
		t.Fatalf("per-unit sum %d unexpectedly equals total-value tax", perUnit)
	}
}

func TestCalculateGeTaxMonotonicInQuantity(t *testing.T) {
	prev := int64(-1)
	for q := int64(1); q <= 1_000_000; q *= 10 {
		tax := CalculateGeTax("Rune platebody", 38_500, q)
		if tax < prev {
			t.Fatalf("tax decreased from %d to %d at quantity %d", prev, tax, q)
		}
		prev = tax
	}
}
