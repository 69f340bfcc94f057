package geflip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// gpCurrency registers gold pieces with go-money so gp amounts format with
// the usual thousands grouping ("1,234,567 gp"). Gold has no fractional unit.
const gpCurrency = "OSGP"

func init() {
	money.AddCurrency(gpCurrency, "gp", "1 $", ".", ",", 0)
}

// FormatGp renders an exact gp amount with thousands grouping, e.g.
// "1,234,567 gp". Use FormatLargeNumber for abbreviated magnitudes.
func FormatGp(n int64) string {
	return money.New(n, gpCurrency).Display()
}

// shorthand multipliers accepted by ParseShorthandPrice.
var shorthandSuffixes = map[byte]int64{
	'k': 1_000,
	'm': 1_000_000,
}

// ParseShorthandPrice parses a gp amount in the shorthand players type into
// the dashboard: an optional case-insensitive "k" or "m" suffix and optional
// thousands separators. "120k" is 120000, "3.5m" is 3500000, "1,250" is
// 1250. Fractional results are floored. Empty or malformed input returns an
// error; callers must check it before using the value.
func ParseShorthandPrice(input string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	mult := int64(1)
	if m, ok := shorthandSuffixes[s[len(s)-1]]; ok {
		mult = m
		s = s[:len(s)-1]
	}

	// decimal keeps "3.5m" exact where float math would not.
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", input, err)
	}
	return d.Mul(decimal.NewFromInt(mult)).Floor().IntPart(), nil
}

// magnitude units for FormatLargeNumber, largest first.
var magnitudes = []struct {
	unit   int64
	suffix string
}{
	{1_000_000_000_000, "t"},
	{1_000_000_000, "b"},
	{1_000_000, "m"},
	{1_000, "k"},
}

// FormatLargeNumber abbreviates a gp amount using the largest applicable
// unit among t/b/m/k with one decimal place, preserving the sign:
// 1234567 renders as "1.2m", -2500000 as "-2.5m". Values under 1000 render
// as plain integers.
func FormatLargeNumber(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	for _, m := range magnitudes {
		if abs >= m.unit {
			return strconv.FormatFloat(float64(n)/float64(m.unit), 'f', 1, 64) + m.suffix
		}
	}
	return strconv.FormatInt(n, 10)
}

// FormatPercent renders a signed percentage with one decimal, e.g. "+3.4%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}
