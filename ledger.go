package geflip

import (
	"fmt"
	"sort"
)

// Ledger is the in-memory portfolio state: investment lots, price alerts,
// the watchlist and the user profile. It is what the JSONL codec in
// encode.go reads and writes.
//
// Mutations go through methods so the lot-split invariant holds: a reader
// of a saved ledger can never see sold quantity that exists in neither the
// remainder nor a closed lot, nor in both.
type Ledger struct {
	investments []Investment
	alerts      []PriceAlert
	watchlist   Watchlist
	profile     Profile
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Investments returns all lots, open and closed.
func (l *Ledger) Investments() []Investment { return l.investments }

// OpenLots returns the lots still held.
func (l *Ledger) OpenLots() []Investment {
	var out []Investment
	for _, inv := range l.investments {
		if inv.Open() {
			out = append(out, inv)
		}
	}
	return out
}

// ClosedLots returns the sold lots, ordered by sell date.
func (l *Ledger) ClosedLots() []Investment {
	var out []Investment
	for _, inv := range l.investments {
		if inv.Closed() {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SellDate.Before(*out[j].SellDate)
	})
	return out
}

// Investment returns the lot with the given id.
func (l *Ledger) Investment(id string) (Investment, bool) {
	for _, inv := range l.investments {
		if inv.ID == id {
			return inv, true
		}
	}
	return Investment{}, false
}

// AddInvestment appends a validated lot.
func (l *Ledger) AddInvestment(inv Investment) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	if _, ok := l.Investment(inv.ID); ok {
		return fmt.Errorf("duplicate investment id %s", inv.ID)
	}
	l.investments = append(l.investments, inv)
	return nil
}

// DeleteInvestment removes a lot permanently. Deleting is independent of
// every other lot.
func (l *Ledger) DeleteInvestment(id string) error {
	for i, inv := range l.investments {
		if inv.ID == id {
			l.investments = append(l.investments[:i], l.investments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no investment with id %s", id)
}

// ApplySplit sells part (or all) of the identified lot and applies the
// split in one step: the remainder replaces the original (or the original
// is deleted on full consumption) and the closed lots are appended. On any
// error the ledger is untouched, so total quantity is conserved at every
// observable point.
func (l *Ledger) ApplySplit(id string, sales []SaleEntry) (SplitResult, error) {
	idx := -1
	for i, inv := range l.investments {
		if inv.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SplitResult{}, fmt.Errorf("no investment with id %s", id)
	}

	result, err := SplitSale(l.investments[idx], sales)
	if err != nil {
		return SplitResult{}, err
	}

	if result.Remainder != nil {
		l.investments[idx] = *result.Remainder
	} else {
		l.investments = append(l.investments[:idx], l.investments[idx+1:]...)
	}
	l.investments = append(l.investments, result.Closed...)
	return result, nil
}

// Alerts returns all price alerts.
func (l *Ledger) Alerts() []PriceAlert { return l.alerts }

// SetAlert stores an alert, replacing any existing alert for the same
// item: at most one alert per item.
func (l *Ledger) SetAlert(a PriceAlert) {
	for i, old := range l.alerts {
		if old.ItemID == a.ItemID {
			l.alerts[i] = a
			return
		}
	}
	l.alerts = append(l.alerts, a)
}

// DeleteAlert removes the alert for the given item. It reports whether an
// alert was removed.
func (l *Ledger) DeleteAlert(itemID int) bool {
	for i, a := range l.alerts {
		if a.ItemID == itemID {
			l.alerts = append(l.alerts[:i], l.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// Watchlist returns the mutable watchlist.
func (l *Ledger) Watchlist() *Watchlist { return &l.watchlist }

// Profile returns the mutable user profile.
func (l *Ledger) Profile() *Profile { return &l.profile }
