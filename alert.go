package geflip

import (
	"fmt"

	"github.com/google/uuid"
)

// Direction says which way a price alert fires.
type Direction string

const (
	Above Direction = "above"
	Below Direction = "below"
)

// ParseDirection parses "above" or "below".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Above, Below:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction %q (want above or below)", s)
	}
}

// PriceField selects which side of the latest price an alert watches.
type PriceField string

const (
	HighPrice PriceField = "high"
	LowPrice  PriceField = "low"
)

// ParsePriceField parses "high" or "low".
func ParsePriceField(s string) (PriceField, error) {
	switch PriceField(s) {
	case HighPrice, LowPrice:
		return PriceField(s), nil
	default:
		return "", fmt.Errorf("unknown price field %q (want high or low)", s)
	}
}

// PriceAlert watches one side of an item's latest price against a target.
// The ledger keeps at most one alert per item.
type PriceAlert struct {
	ID        string     `json:"id"`
	ItemID    int        `json:"itemId"`
	ItemName  string     `json:"itemName"`
	Target    int64      `json:"target"`
	Direction Direction  `json:"direction"`
	Field     PriceField `json:"field"`
}

// NewPriceAlert creates an alert for the given item.
func NewPriceAlert(item Item, target int64, dir Direction, field PriceField) PriceAlert {
	return PriceAlert{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		Target:    target,
		Direction: dir,
		Field:     field,
	}
}

// Check reports whether the alert fires against the given latest price.
// An unknown price side never fires.
func (a PriceAlert) Check(lp LatestPrice) bool {
	var price int64
	switch a.Field {
	case LowPrice:
		price = lp.Low
	default:
		price = lp.High
	}
	if price <= 0 {
		return false
	}
	if a.Direction == Below {
		return price <= a.Target
	}
	return price >= a.Target
}

// CheckAlerts returns the alerts that fire against the latest prices.
func CheckAlerts(alerts []PriceAlert, latest map[int]LatestPrice) []PriceAlert {
	var fired []PriceAlert
	for _, a := range alerts {
		if lp, ok := latest[a.ItemID]; ok && a.Check(lp) {
			fired = append(fired, a)
		}
	}
	return fired
}
