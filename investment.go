package geflip

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osrstools/geflip/date"
)

// ErrInvalidQuantity is returned when a sale asks for more units than the
// lot holds, or a non-positive quantity anywhere.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Investment is one lot in the portfolio: a quantity of a single item
// acquired at a purchase price and date. An open lot has no sell price or
// date. Once both are set the lot is closed and becomes an immutable
// financial record used for historical profit.
type Investment struct {
	ID       string    `json:"id"`
	ItemID   int       `json:"itemId"`
	ItemName string    `json:"itemName"`
	Quantity int64     `json:"quantity"`
	BuyPrice int64     `json:"buyPrice"` // per unit
	BuyDate  date.Date `json:"buyDate"`

	SellPrice *int64     `json:"sellPrice,omitempty"` // per unit
	SellDate  *date.Date `json:"sellDate,omitempty"`
	TaxPaid   int64      `json:"taxPaid,omitempty"`
}

// NewInvestment opens a new lot for the given item.
func NewInvestment(item Item, quantity, buyPrice int64, on date.Date) Investment {
	return Investment{
		ID:       uuid.NewString(),
		ItemID:   item.ID,
		ItemName: item.Name,
		Quantity: quantity,
		BuyPrice: buyPrice,
		BuyDate:  on,
	}
}

// Open reports whether the lot is still held.
func (inv Investment) Open() bool { return inv.SellPrice == nil && inv.SellDate == nil }

// Closed reports whether the lot has been sold.
func (inv Investment) Closed() bool { return inv.SellPrice != nil && inv.SellDate != nil }

// Profit returns the realised profit of a closed lot after tax.
// It is zero for open lots.
func (inv Investment) Profit() int64 {
	if !inv.Closed() {
		return 0
	}
	return (*inv.SellPrice-inv.BuyPrice)*inv.Quantity - inv.TaxPaid
}

// Validate checks the lot invariants.
func (inv Investment) Validate() error {
	if inv.ID == "" {
		return fmt.Errorf("investment has no id")
	}
	if inv.Quantity <= 0 {
		return fmt.Errorf("%w: lot quantity %d", ErrInvalidQuantity, inv.Quantity)
	}
	if inv.BuyPrice < 0 {
		return fmt.Errorf("negative buy price %d", inv.BuyPrice)
	}
	if (inv.SellPrice == nil) != (inv.SellDate == nil) {
		return fmt.Errorf("lot %s has a sell price without a sell date (or vice versa)", inv.ID)
	}
	return nil
}

// SaleEntry is one taxable sale of part of a lot.
type SaleEntry struct {
	Quantity int64     `json:"quantity"`
	Price    int64     `json:"price"` // per unit
	Date     date.Date `json:"date"`
}

// SplitResult is the outcome of splitting a lot on sale. Remainder is nil
// when the lot was fully consumed, in which case the caller must delete the
// original lot when applying the result.
type SplitResult struct {
	Remainder *Investment
	Closed    []Investment
}

// SplitSale splits an open lot across one or more sale entries.
//
// Each entry becomes its own brand-new closed lot carrying the sold
// quantity, the original purchase price and date, and the entry's sell
// price, date and independently computed tax (each entry is its own taxable
// transaction). The remainder, if any, keeps the original lot untouched
// except for the reduced quantity.
//
// Quantity is conserved: remainder quantity plus the sum of closed-lot
// quantities always equals the original lot quantity. Selling more than the
// lot holds fails with ErrInvalidQuantity and produces nothing. The
// function works on copies; applying the result atomically is the ledger's
// job.
func SplitSale(lot Investment, sales []SaleEntry) (SplitResult, error) {
	if err := lot.Validate(); err != nil {
		return SplitResult{}, err
	}
	if !lot.Open() {
		return SplitResult{}, fmt.Errorf("lot %s is already closed", lot.ID)
	}
	if len(sales) == 0 {
		return SplitResult{}, fmt.Errorf("no sale entries")
	}

	var total int64
	for i, s := range sales {
		if s.Quantity <= 0 {
			return SplitResult{}, fmt.Errorf("%w: sale entry %d has quantity %d", ErrInvalidQuantity, i, s.Quantity)
		}
		if s.Price < 0 {
			return SplitResult{}, fmt.Errorf("sale entry %d has negative price %d", i, s.Price)
		}
		total += s.Quantity
	}
	if total > lot.Quantity {
		return SplitResult{}, fmt.Errorf("%w: selling %d of %d available", ErrInvalidQuantity, total, lot.Quantity)
	}

	result := SplitResult{Closed: make([]Investment, 0, len(sales))}
	for _, s := range sales {
		price := s.Price
		on := s.Date
		closed := Investment{
			ID:        uuid.NewString(),
			ItemID:    lot.ItemID,
			ItemName:  lot.ItemName,
			Quantity:  s.Quantity,
			BuyPrice:  lot.BuyPrice,
			BuyDate:   lot.BuyDate,
			SellPrice: &price,
			SellDate:  &on,
			TaxPaid:   CalculateGeTax(lot.ItemName, s.Price, s.Quantity),
		}
		result.Closed = append(result.Closed, closed)
	}

	if total < lot.Quantity {
		remainder := lot
		remainder.Quantity = lot.Quantity - total
		result.Remainder = &remainder
	}
	return result, nil
}
