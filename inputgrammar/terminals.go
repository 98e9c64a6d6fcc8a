package inputgrammar

import (
	"fmt"
	"regexp"

	"github.com/Dangornushi/hensan/ast"
)

// skipHorizontalWhitespace skips spaces, tabs, and carriage returns without
// crossing a newline: ordinary matching never crosses a "\n" (spec.md
// §4.2's whitespace policy), only the explicit Newline terminal does.
func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			p.pos++
		} else {
			break
		}
	}
}

func (p *Parser) parseLiteral(lit, contextRule string) *ast.ASTNode {
	p.skipHorizontalWhitespace()
	if hasPrefixAt(p.input, p.pos, lit) {
		p.pos += len(lit)
		p.atLineStart = false
		return ast.NewLeaf(nodeLiteral, lit)
	}
	p.recordError(fmt.Sprintf("%q", lit), contextRule)
	return nil
}

func (p *Parser) parsePattern(pattern, contextRule string) *ast.ASTNode {
	p.skipHorizontalWhitespace()

	re := p.compilePattern(pattern)
	loc := re.FindStringIndex(p.remaining())
	if loc == nil {
		p.recordError(fmt.Sprintf("pattern /%s/", pattern), contextRule)
		return nil
	}

	matched := p.remaining()[loc[0]:loc[1]]
	p.pos += len(matched)
	p.atLineStart = false
	return ast.NewLeaf(nodePattern, matched)
}

// regexPanic carries an invalid-pattern failure up to Parse's recover,
// since a broken regex is a fatal configuration error (spec.md §7), not a
// backtrackable parse failure: it must abort the whole parse rather than
// merely fail one alternative.
type regexPanic struct {
	pattern string
	err     error
}

// compilePattern anchors pattern at the current cursor (an implicit
// leading "^") and caches the compiled regex, scoped to this Parser, keyed
// by the verbatim anchored pattern string (spec.md §4.2, §9).
func (p *Parser) compilePattern(pattern string) *regexp.Regexp {
	anchored := "^" + pattern
	if re, ok := p.regexCache[anchored]; ok {
		return re
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		panic(regexPanic{pattern: pattern, err: err})
	}
	p.regexCache[anchored] = re
	return re
}

func hasPrefixAt(s string, pos int, prefix string) bool {
	if pos+len(prefix) > len(s) {
		return false
	}
	return s[pos:pos+len(prefix)] == prefix
}
