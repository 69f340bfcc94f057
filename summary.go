package geflip

// Summary is the at-a-glance profit and value overview of the portfolio.
// All figures are plain gp sums.
type Summary struct {
	TotalValue       int64 // current value of open lots
	UnrealisedProfit int64 // open lots, against current sell prices
	RealisedProfit   int64 // closed lots, after tax
	TotalTaxPaid     int64
	OpenLots         int
	ClosedLots       int
}

// Summarize aggregates a list of lots against the current sell price per
// item id.
//
// Open lots with a known current price contribute price*quantity to the
// total value and (price-buy)*quantity to unrealised profit. When the
// current price is unknown the lot is valued at its own purchase price and
// contributes zero profit: a deliberate neutral fallback that degrades
// precision instead of pretending the position is worthless.
//
// The result is independent of the order of the input lots.
func Summarize(lots []Investment, sellPriceByItem map[int]int64) Summary {
	var s Summary
	for _, lot := range lots {
		if lot.Closed() {
			s.ClosedLots++
			s.RealisedProfit += lot.Profit()
			s.TotalTaxPaid += lot.TaxPaid
			continue
		}
		s.OpenLots++
		price, ok := sellPriceByItem[lot.ItemID]
		if !ok || price <= 0 {
			price = lot.BuyPrice
		}
		s.TotalValue += price * lot.Quantity
		s.UnrealisedProfit += (price - lot.BuyPrice) * lot.Quantity
	}
	return s
}
