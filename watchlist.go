package geflip

import "slices"

// Watchlist is the ordered set of item ids the user tracks on the
// dashboard. Order is insertion order; ids are unique.
type Watchlist struct {
	ItemIDs []int `json:"itemIds"`
}

// Contains reports whether the item is on the watchlist.
func (w *Watchlist) Contains(itemID int) bool {
	return slices.Contains(w.ItemIDs, itemID)
}

// Add appends the item if absent. It reports whether the list changed.
func (w *Watchlist) Add(itemID int) bool {
	if w.Contains(itemID) {
		return false
	}
	w.ItemIDs = append(w.ItemIDs, itemID)
	return true
}

// Remove drops the item. It reports whether the list changed.
func (w *Watchlist) Remove(itemID int) bool {
	i := slices.Index(w.ItemIDs, itemID)
	if i < 0 {
		return false
	}
	w.ItemIDs = slices.Delete(w.ItemIDs, i, i+1)
	return true
}
