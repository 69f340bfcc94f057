package renderer

import (
	"fmt"
	"strings"

	"github.com/osrstools/geflip/advisor"
)

// AdviceMarkdown renders the advisor's picks.
func AdviceMarkdown(suggestions []advisor.Suggestion) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Advisor Picks\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&b, "## %s\n\n", s.ItemName)
		fmt.Fprintf(&b, "%s\n\n", s.Why)
		fmt.Fprintf(&b, "*confidence: %s, risk: %s*\n\n", s.Confidence, s.Risk)
	}
	return b.String()
}
