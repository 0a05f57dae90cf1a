package format

import (
	"fmt"

	"github.com/narendrapsgim/rasa/pkg/advisory"
)

const messageWidth = 72

// FindingsTable renders a validation run's findings: every advisory as a
// warning row and, when the run failed hard, the error as the final row.
func FindingsTable(mode Mode, advisories []advisory.Advisory, hard error) string {
	tb := NewTable(mode)
	tb.Header("#", "Severity", "Finding", "Docs")
	tb.WrapColumn(3, messageWidth)

	n := 0
	for _, a := range advisories {
		n++
		tb.Row(n, "warning", a.Message, a.Docs)
	}
	if hard != nil {
		n++
		tb.Row(n, "error", hard.Error(), "")
	}
	tb.Footer("", "", fmt.Sprintf("%d finding(s)", n), "")
	return tb.String()
}
