// Package inputgrammar is the backtracking recursive-descent engine that
// executes an InputGrammar over source text to produce an ast.ASTNode or a
// structured parse error. Every alternative that may fail snapshots the
// full cursor state (position, indentation stack, pending dedents, and
// line-start bookkeeping) before attempting a branch and restores it
// atomically on failure; this discipline is the parser's central
// correctness property (spec.md §5).
package inputgrammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Dangornushi/hensan/ast"
	"github.com/Dangornushi/hensan/metagrammar"
	"github.com/Dangornushi/hensan/transpileerr"
)

// internal node names the parser uses to mark splice points. Only _literal,
// _pattern, _optional_empty, _indent, _dedent, _newline, and _same_indent are
// discarded outright by Sequence/Choice/repetition; _group and _repeat are spliced
// (their children promoted into the enclosing construct).
const (
	nodeLiteral       = "_literal"
	nodePattern       = "_pattern"
	nodeGroup         = "_group"
	nodeRepeat        = "_repeat"
	nodeIndent        = "_indent"
	nodeDedent        = "_dedent"
	nodeNewline       = "_newline"
	nodeSameIndent    = "_same_indent"
	nodeOptionalEmpty = "_optional_empty"
)

// Parser executes a single InputGrammar against a single source string. It
// is not safe for concurrent use; construct one Parser per Parse call.
type Parser struct {
	grammar *metagrammar.InputGrammar
	input   string
	pos     int

	regexCache map[string]*regexp.Regexp

	furthestPos      int
	furthestExpected []string
	furthestRule     string

	indentStack       []int
	pendingDedents    int
	atLineStart       bool
	currentLineIndent int
}

// NewParser prepares a Parser to run grammar over input.
func NewParser(grammar *metagrammar.InputGrammar, input string) *Parser {
	return &Parser{
		grammar:     grammar,
		input:       input,
		regexCache:  make(map[string]*regexp.Regexp),
		indentStack: []int{0},
		atLineStart: true,
	}
}

// Parse runs the grammar's start rule against the full input. On success it
// returns the resulting AST; any unconsumed non-whitespace input after the
// start rule succeeds is itself a parse error (spec.md §4.2's termination
// condition). A *transpileerr.ParseError is returned for ordinary
// backtracking failure; a *transpileerr.GrammarError is returned if a
// Pattern terminal's regex turns out to be invalid (a fatal configuration
// error, spec.md §7, not a recoverable parse failure).
func (p *Parser) Parse() (result *ast.ASTNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			rp, ok := r.(regexPanic)
			if !ok {
				panic(r)
			}
			result = nil
			err = &transpileerr.GrammarError{
				Cause: fmt.Errorf("invalid regex pattern %q: %v", rp.pattern, rp.err),
			}
		}
	}()

	p.updateLineIndent()

	node := p.parseRule(p.grammar.StartRule)
	p.skipHorizontalWhitespace()

	if node == nil {
		return nil, p.buildError()
	}
	if p.pos < len(p.input) {
		p.recordError("end of input", p.grammar.StartRule)
		return nil, p.buildError()
	}
	return node, nil
}

// cursorState is the full backtrackable state snapshot described in §5.
type cursorState struct {
	pos               int
	indentStack       []int
	pendingDedents    int
	atLineStart       bool
	currentLineIndent int
}

func (p *Parser) snapshot() cursorState {
	stack := make([]int, len(p.indentStack))
	copy(stack, p.indentStack)
	return cursorState{
		pos:               p.pos,
		indentStack:       stack,
		pendingDedents:    p.pendingDedents,
		atLineStart:       p.atLineStart,
		currentLineIndent: p.currentLineIndent,
	}
}

func (p *Parser) restore(s cursorState) {
	p.pos = s.pos
	p.indentStack = s.indentStack
	p.pendingDedents = s.pendingDedents
	p.atLineStart = s.atLineStart
	p.currentLineIndent = s.currentLineIndent
}

func (p *Parser) remaining() string {
	return p.input[p.pos:]
}

// parseRule parses the named rule's body and returns a node named after the
// rule. If the body produced neither children nor a captured value, the
// value falls back to the substring the rule consumed, without the leading
// horizontal whitespace its terminals skipped (spec.md §4.2).
func (p *Parser) parseRule(name string) *ast.ASTNode {
	rule, ok := p.grammar.Rules[name]
	if !ok {
		return nil
	}

	start := p.pos
	node := p.parseExpr(rule.Expr, name)
	if node == nil {
		p.pos = start
		return nil
	}

	if len(node.Children) == 0 && node.Value == "" {
		node.Value = strings.TrimLeft(p.input[start:p.pos], " \t\r")
	}
	node.Name = name
	return node
}

func (p *Parser) parseExpr(expr metagrammar.GrammarExpr, contextRule string) *ast.ASTNode {
	switch e := expr.(type) {
	case metagrammar.Literal:
		return p.parseLiteral(e.Value, contextRule)
	case metagrammar.Pattern:
		return p.parsePattern(e.Value, contextRule)
	case metagrammar.RuleRef:
		return p.parseRule(e.Name)
	case metagrammar.Sequence:
		return p.parseSequence(e.Items, contextRule)
	case metagrammar.Choice:
		return p.parseChoice(e.Alternatives, contextRule)
	case metagrammar.ZeroOrMore:
		return p.parseZeroOrMore(e.Elem, contextRule)
	case metagrammar.OneOrMore:
		return p.parseOneOrMore(e.Elem, contextRule)
	case metagrammar.Optional:
		return p.parseOptional(e.Elem, contextRule)
	case metagrammar.Group:
		inner := p.parseExpr(e.Elem, contextRule)
		if inner == nil {
			return nil
		}
		group := ast.NewNode(nodeGroup)
		group.Merge(inner)
		return group
	case metagrammar.Indent:
		return p.parseIndent(contextRule)
	case metagrammar.Dedent:
		return p.parseDedent(contextRule)
	case metagrammar.Newline:
		return p.parseNewline(contextRule)
	case metagrammar.SameIndent:
		return p.parseSameIndent(contextRule)
	default:
		return nil
	}
}

// addAsChild folds one parsed sub-result into an enclosing node per the
// AST construction rules of spec.md §4.2: user-named nodes become children,
// _group/_repeat nodes are spliced, and the remaining internal leaf kinds
// (_literal, _pattern, _optional_empty, _indent, _dedent, _newline,
// _same_indent) are discarded outright since their text is already captured
// by the enclosing rule's value fallback.
func addAsChild(node, child *ast.ASTNode) {
	if !strings.HasPrefix(child.Name, "_") {
		node.AddChild(child)
		return
	}
	switch child.Name {
	case nodeGroup, nodeRepeat:
		node.Merge(child)
	}
}

func (p *Parser) parseSequence(items []metagrammar.GrammarExpr, contextRule string) *ast.ASTNode {
	start := p.snapshot()
	node := ast.NewNode(contextRule)

	for _, item := range items {
		child := p.parseExpr(item, contextRule)
		if child == nil {
			p.restore(start)
			return nil
		}
		addAsChild(node, child)
	}

	return node
}

func (p *Parser) parseChoice(choices []metagrammar.GrammarExpr, contextRule string) *ast.ASTNode {
	start := p.snapshot()

	for _, choice := range choices {
		if child := p.parseExpr(choice, contextRule); child != nil {
			if child.Name == contextRule {
				return child
			}
			node := ast.NewNode(contextRule)
			addAsChild(node, child)
			return node
		}
		p.restore(start)
	}

	return nil
}

func (p *Parser) parseZeroOrMore(inner metagrammar.GrammarExpr, contextRule string) *ast.ASTNode {
	node := ast.NewNode(nodeRepeat)

	for {
		start := p.snapshot()
		child := p.parseExpr(inner, contextRule)
		if child == nil {
			p.restore(start)
			break
		}
		if start.pos == p.pos {
			// The body matched without consuming input: stop here to avoid
			// looping forever (spec.md §4.2).
			addAsChild(node, child)
			break
		}
		addAsChild(node, child)
	}

	return node
}

func (p *Parser) parseOneOrMore(inner metagrammar.GrammarExpr, contextRule string) *ast.ASTNode {
	first := p.parseExpr(inner, contextRule)
	if first == nil {
		return nil
	}

	node := ast.NewNode(nodeRepeat)
	addAsChild(node, first)

	for {
		start := p.snapshot()
		child := p.parseExpr(inner, contextRule)
		if child == nil {
			p.restore(start)
			break
		}
		if start.pos == p.pos {
			addAsChild(node, child)
			break
		}
		addAsChild(node, child)
	}

	return node
}

func (p *Parser) parseOptional(inner metagrammar.GrammarExpr, contextRule string) *ast.ASTNode {
	start := p.snapshot()
	if child := p.parseExpr(inner, contextRule); child != nil {
		return child
	}
	p.restore(start)
	return ast.NewNode(nodeOptionalEmpty)
}
