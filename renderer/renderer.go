// Package renderer builds the markdown reports printed by the gfl command
// line and, pre-rendered, served over the HTTP API.
package renderer

import (
	"fmt"
	"strings"

	"github.com/osrstools/geflip"
)

// signedGp formats an amount with an explicit sign, for gain/loss columns.
func signedGp(n int64) string {
	if n > 0 {
		return "+" + geflip.FormatGp(n)
	}
	return geflip.FormatGp(n)
}

// row writes one pipe-table row.
func row(b *strings.Builder, cells ...string) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
}
