package inputgrammar

import (
	"strings"

	"github.com/Dangornushi/hensan/transpileerr"
)

// recordError tracks the furthest position the parser ever reached while
// trying an expectation, regardless of which alternative ultimately
// succeeds or fails (spec.md §4.2, P1). A strictly further position
// replaces the recorded expectation set outright; a tie appends to it,
// deduplicated, so a report names every terminal that was viable at the
// deepest point of failure.
func (p *Parser) recordError(expected, contextRule string) {
	if p.pos > p.furthestPos {
		p.furthestPos = p.pos
		p.furthestExpected = []string{expected}
		p.furthestRule = contextRule
		return
	}
	if p.pos == p.furthestPos {
		for _, e := range p.furthestExpected {
			if e == expected {
				return
			}
		}
		p.furthestExpected = append(p.furthestExpected, expected)
	}
}

// buildError renders the furthest-position failure recorded during the
// parse into a *transpileerr.ParseError, computing the 1-based line and
// column, the offending source line, and a truncated preview of what was
// actually found there (spec.md §6, §7).
func (p *Parser) buildError() *transpileerr.ParseError {
	line, col := p.lineCol(p.furthestPos)
	return &transpileerr.ParseError{
		Position:   p.furthestPos,
		Line:       line,
		Column:     col,
		Expected:   p.furthestExpected,
		Found:      p.foundText(p.furthestPos),
		Rule:       p.furthestRule,
		SourceLine: p.sourceLine(line),
	}
}

// lineCol converts a byte offset into a 1-based line and column.
func (p *Parser) lineCol(pos int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < pos && i < len(p.input); i++ {
		if p.input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// sourceLine returns the full text of the given 1-based line number.
func (p *Parser) sourceLine(line int) string {
	lines := strings.Split(p.input, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// foundText returns a short preview of the input starting at pos, for
// display in a parse error, or "end of input" if pos is at or past the end
// of the source (spec.md §6). The preview takes up to 20 raw characters
// regardless of embedded newlines, matching the reference's get_found_text.
func (p *Parser) foundText(pos int) string {
	if pos >= len(p.input) {
		return "end of input"
	}
	const maxPreview = 20
	rest := p.input[pos:]
	if len(rest) > maxPreview {
		return rest[:maxPreview] + "..."
	}
	return rest
}
