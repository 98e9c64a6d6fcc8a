package transpileerr

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is the structured diagnostic the input parser produces when
// source text does not match the start rule of an input grammar. It reports
// the furthest position any backtracked alternative reached (§4.2, P1),
// together with enough context to render the §6 diagnostic format.
type ParseError struct {
	// Position is the furthest byte offset reached.
	Position int
	// Line and Column are 1-indexed.
	Line   int
	Column int
	// Expected holds the deduplicated expected-set at Position, in the
	// order each expectation was first recorded.
	Expected []string
	// Found is up to 20 characters of source text starting at Position,
	// "end of input" if Position is at the end of the source, or suffixed
	// with "..." if longer than 20 characters.
	Found string
	// Rule is the name of the innermost rule being parsed when the
	// furthest position was reached.
	Rule string
	// SourceLine is the full source line containing Position.
	SourceLine string
}

// Error renders the bit-exact format specified in spec.md §6:
//
//	Parse error at line L, column C:
//
//	 L | <source line>
//	    ^                 (arrow column = C, preceded by the line-number gutter)
//
//	Expected: E1 or E2 or …
//	Found: '<up to 20 chars, "…" if truncated, or "end of input">'
//	While parsing: <rule name>
func (e *ParseError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Parse error at line %d, column %d:\n\n", e.Line, e.Column)

	lineNumWidth := len(strconv.Itoa(e.Line))
	fmt.Fprintf(&b, " %*d | %s\n", lineNumWidth, e.Line, e.SourceLine)

	b.WriteString(strings.Repeat(" ", lineNumWidth+3+e.Column-1))
	b.WriteString("^\n\n")

	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "Expected: %s\n", strings.Join(e.Expected, " or "))
	}

	fmt.Fprintf(&b, "Found: '%s'\n", e.Found)
	fmt.Fprintf(&b, "While parsing: %s", e.Rule)

	return b.String()
}
