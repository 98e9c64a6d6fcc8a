package inputgrammar

import "github.com/Dangornushi/hensan/ast"

// updateLineIndent recomputes currentLineIndent by scanning (without
// consuming) the leading whitespace of the current line, expanding tabs to
// the next multiple of 8 (spec.md §4.2). It is a no-op unless the cursor is
// positioned at the start of a line.
func (p *Parser) updateLineIndent() {
	if !p.atLineStart {
		return
	}

	indent := 0
	i := p.pos
	for i < len(p.input) {
		switch p.input[i] {
		case ' ':
			indent++
			i++
		case '\t':
			indent = (indent/8 + 1) * 8
			i++
		default:
			i = len(p.input) + 1 // sentinel: stop the loop
		}
		if i > len(p.input) {
			break
		}
	}
	p.currentLineIndent = indent
}

func (p *Parser) topIndent() int {
	if len(p.indentStack) == 0 {
		return 0
	}
	return p.indentStack[len(p.indentStack)-1]
}

// parseIndent succeeds only when the current line's indentation exceeds the
// indent-stack top and no dedents are pending (spec.md §4.2).
func (p *Parser) parseIndent(contextRule string) *ast.ASTNode {
	if p.pendingDedents > 0 {
		p.recordError("INDENT", contextRule)
		return nil
	}

	if p.currentLineIndent <= p.topIndent() {
		p.recordError("INDENT", contextRule)
		return nil
	}

	p.indentStack = append(p.indentStack, p.currentLineIndent)
	p.skipHorizontalWhitespace()
	p.atLineStart = false
	return ast.NewLeaf(nodeIndent, "")
}

// parseDedent pops one indentation level. If a previous Dedent already
// determined that multiple levels must be popped, it drains pendingDedents
// first; otherwise it pops once and recomputes how many additional dedents
// are still needed to reach a stack level at or below the current line's
// indentation (spec.md §4.2).
func (p *Parser) parseDedent(contextRule string) *ast.ASTNode {
	if p.pendingDedents > 0 {
		p.pendingDedents--
		p.indentStack = p.indentStack[:len(p.indentStack)-1]
		return ast.NewLeaf(nodeDedent, "")
	}

	if p.currentLineIndent >= p.topIndent() {
		p.recordError("DEDENT", contextRule)
		return nil
	}

	p.indentStack = p.indentStack[:len(p.indentStack)-1]

	testStack := append([]int(nil), p.indentStack...)
	extra := 0
	for len(testStack) > 1 && p.currentLineIndent < testStack[len(testStack)-1] {
		testStack = testStack[:len(testStack)-1]
		extra++
	}
	p.pendingDedents = extra

	return ast.NewLeaf(nodeDedent, "")
}

// parseNewline consumes one line break, preceded by horizontal whitespace,
// then greedily skips further blank lines, and finally recomputes the new
// line's indentation (spec.md §4.2).
func (p *Parser) parseNewline(contextRule string) *ast.ASTNode {
	p.skipHorizontalWhitespace()

	if !p.consumeNewline() {
		p.recordError("NEWLINE", contextRule)
		return nil
	}

	for {
		lineStart := p.pos
		p.skipHorizontalWhitespace()
		if !p.consumeNewline() {
			p.pos = lineStart
			break
		}
	}

	p.atLineStart = true
	p.updateLineIndent()
	return ast.NewLeaf(nodeNewline, "\n")
}

func (p *Parser) consumeNewline() bool {
	if hasPrefixAt(p.input, p.pos, "\r\n") {
		p.pos += 2
		return true
	}
	if hasPrefixAt(p.input, p.pos, "\n") {
		p.pos++
		return true
	}
	return false
}

// parseSameIndent succeeds iff the current line's indentation exactly
// matches the indent-stack top (spec.md §4.2).
func (p *Parser) parseSameIndent(contextRule string) *ast.ASTNode {
	if p.currentLineIndent != p.topIndent() {
		p.recordError("SAME_INDENT", contextRule)
		return nil
	}
	p.skipHorizontalWhitespace()
	p.atLineStart = false
	return ast.NewLeaf(nodeSameIndent, "")
}
