package renderer

import (
	"fmt"
	"strings"

	"github.com/osrstools/geflip"
)

// HistoryMarkdown renders the cumulative realised profit curve as a table
// with a coarse inline bar chart. The bar is scaled to the largest absolute
// cumulative value in the window.
func HistoryMarkdown(points []geflip.DailyProfit) string {
	if len(points) == 0 {
		return "No history for this period.\n"
	}

	var max int64
	for _, p := range points {
		if v := abs(p.Cumulative); v > max {
			max = v
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Profit History from %s to %s\n\n", points[0].Date, points[len(points)-1].Date)
	fmt.Fprintln(&b, "| Date | Cumulative | |")
	fmt.Fprintln(&b, "|:---|---:|:---|")
	for _, p := range points {
		row(&b, p.Date.String(), signedGp(p.Cumulative), bar(p.Cumulative, max))
	}
	return b.String()
}

const barWidth = 20

func bar(v, max int64) string {
	if max == 0 {
		return ""
	}
	n := int(abs(v) * barWidth / max)
	if v < 0 {
		return strings.Repeat("▒", n)
	}
	return strings.Repeat("█", n)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
