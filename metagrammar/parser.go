package metagrammar

import (
	"strings"

	"github.com/Dangornushi/hensan/transpileerr"
)

// ParseInputGrammar compiles input-grammar text (spec.md §4.1) into an
// InputGrammar. A malformed grammar returns a *transpileerr.GrammarError
// naming the offending construct and the line on which the error was
// detected; meta-parsing is
// fail-fast, there is no partial result on error.
func ParseInputGrammar(src string) (*InputGrammar, error) {
	p := &inputMetaParser{s: newScanner(src)}
	g, err := p.parseGrammar()
	if err != nil {
		return nil, &transpileerr.GrammarError{Cause: err, Row: p.s.line}
	}
	return g, nil
}

// ParseOutputGrammar compiles output-grammar text (spec.md §4.1) into an
// OutputGrammar, under the same fail-fast contract as ParseInputGrammar.
func ParseOutputGrammar(src string) (*OutputGrammar, error) {
	p := &outputMetaParser{s: newScanner(src)}
	g, err := p.parseGrammar()
	if err != nil {
		return nil, &transpileerr.GrammarError{Cause: err, Row: p.s.line}
	}
	return g, nil
}

type inputMetaParser struct {
	s *scanner
}

func (p *inputMetaParser) parseGrammar() (*InputGrammar, error) {
	rules := make(map[string]*InputRule)
	startRule := ""

	for {
		p.s.skipWhitespaceAndComments()
		if p.s.eof() {
			break
		}

		name := p.s.parseIdentifier()
		if name == "" {
			return nil, errf("expected a rule name, found %q", preview(p.s.remaining()))
		}
		if startRule == "" {
			startRule = name
		}

		p.s.skipWhitespaceAndComments()
		if !strings.HasPrefix(p.s.remaining(), ":=") {
			return nil, errf("expected ':=' after rule name %q", name)
		}
		p.s.pos += 2

		p.s.skipWhitespaceAndComments()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		p.s.skipWhitespaceAndComments()
		if err := p.s.expect(';'); err != nil {
			return nil, errf("%v after rule %q", err, name)
		}

		rules[name] = &InputRule{Name: name, Expr: expr}
	}

	if len(rules) == 0 {
		return nil, errf("grammar has no rules")
	}

	return &InputGrammar{Rules: rules, StartRule: startRule}, nil
}

func (p *inputMetaParser) parseExpr() (GrammarExpr, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	choices := []GrammarExpr{first}

	for {
		p.s.skipWhitespaceAndComments()
		ch, ok := p.s.peek()
		if !ok || ch != '|' {
			break
		}
		p.s.advance()
		p.s.skipWhitespaceAndComments()
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		choices = append(choices, next)
	}

	if len(choices) == 1 {
		return choices[0], nil
	}
	return Choice{Alternatives: choices}, nil
}

func (p *inputMetaParser) parseSequence() (GrammarExpr, error) {
	var items []GrammarExpr
	for {
		p.s.skipWhitespaceAndComments()
		item, ok, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, errf("expected an expression, found %q", preview(p.s.remaining()))
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Sequence{Items: items}, nil
}

// parseAtom returns (expr, true, nil) on success, (nil, false, nil) when the
// current position isn't the start of an atom (used to end a sequence), or
// (nil, false, err) on a genuine syntax error.
func (p *inputMetaParser) parseAtom() (GrammarExpr, bool, error) {
	p.s.skipWhitespaceAndComments()
	ch, ok := p.s.peek()
	if !ok {
		return nil, false, nil
	}

	var base GrammarExpr

	switch {
	case ch == '"':
		lit, err := p.s.parseStringLiteral()
		if err != nil {
			return nil, false, err
		}
		if isPatternLike(lit) {
			base = Pattern{Value: lit}
		} else {
			base = Literal{Value: lit}
		}
	case ch == '[':
		pattern, err := p.s.parseBracketedPattern()
		if err != nil {
			return nil, false, err
		}
		base = Pattern{Value: pattern}
	case ch == '(':
		p.s.advance()
		p.s.skipWhitespaceAndComments()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		p.s.skipWhitespaceAndComments()
		if err := p.s.expect(')'); err != nil {
			return nil, false, err
		}
		base = Group{Elem: inner}
	case isAlpha(ch):
		name := p.s.parseIdentifier()
		switch name {
		case "INDENT":
			base = Indent{}
		case "DEDENT":
			base = Dedent{}
		case "NEWLINE":
			base = Newline{}
		case "SAME_INDENT":
			base = SameIndent{}
		default:
			base = RuleRef{Name: name}
		}
	default:
		return nil, false, nil
	}

	p.s.skipWhitespaceAndComments()
	if ch, ok := p.s.peek(); ok {
		switch ch {
		case '*':
			p.s.advance()
			return ZeroOrMore{Elem: base}, true, nil
		case '+':
			p.s.advance()
			return OneOrMore{Elem: base}, true, nil
		case '?':
			p.s.advance()
			return Optional{Elem: base}, true, nil
		}
	}
	return base, true, nil
}

// isPatternLike implements the reclassification heuristic from spec.md
// §4.1/§9: a quoted string is treated as a regex Pattern, rather than a
// literal, when it looks like it contains regex metacharacters. The
// canonical, non-quirky way to write a Pattern is the bracketed "[...]"
// form handled directly in parseAtom.
func isPatternLike(s string) bool {
	if strings.HasPrefix(s, "[") {
		return true
	}
	return strings.ContainsAny(s, "+*\\")
}

func preview(s string) string {
	const max = 20
	r := []rune(s)
	if len(r) == 0 {
		return "end of input"
	}
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return string(r)
}

type outputMetaParser struct {
	s *scanner
}

func (p *outputMetaParser) parseGrammar() (*OutputGrammar, error) {
	rules := make(map[string]*OutputRule)

	for {
		p.s.skipWhitespaceAndComments()
		if p.s.eof() {
			break
		}

		name := p.s.parseIdentifier()
		if name == "" {
			return nil, errf("expected a rule name, found %q", preview(p.s.remaining()))
		}

		p.s.skipWhitespaceAndComments()
		if !strings.HasPrefix(p.s.remaining(), ":=") {
			return nil, errf("expected ':=' after rule name %q", name)
		}
		p.s.pos += 2

		p.s.skipWhitespaceAndComments()
		expr, err := p.parseOutExpr()
		if err != nil {
			return nil, err
		}

		p.s.skipWhitespaceAndComments()
		if err := p.s.expect(';'); err != nil {
			return nil, errf("%v after rule %q", err, name)
		}

		rules[name] = &OutputRule{Name: name, Expr: expr}
	}

	if len(rules) == 0 {
		return nil, errf("grammar has no rules")
	}

	return &OutputGrammar{Rules: rules}, nil
}

func (p *outputMetaParser) parseOutExpr() (OutputExpr, error) {
	p.s.skipWhitespaceAndComments()

	if p.s.startsWithKeyword("match") {
		return p.parseMatchExpr()
	}
	if p.s.startsWithKeyword("if") {
		return p.parseContextIfExpr()
	}

	var items []OutputExpr
	for {
		p.s.skipWhitespaceAndComments()
		item, ok, err := p.parseOutAtom()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		p.s.skipWhitespaceAndComments()
		if p.s.startsWithKeyword("join") {
			p.s.pos += len("join")
			p.s.skipWhitespaceAndComments()
			sep, err := p.s.parseStringLiteral()
			if err != nil {
				return nil, err
			}
			ref, ok := item.(OutRuleRef)
			if !ok {
				return nil, errf("join must follow a rule reference")
			}
			items = append(items, OutJoin{Rule: ref.Name, Separator: sep})
		} else {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return nil, errf("expected an expression, found %q", preview(p.s.remaining()))
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return OutSequence{Items: items}, nil
}

func (p *outputMetaParser) parseOutAtom() (OutputExpr, bool, error) {
	p.s.skipWhitespaceAndComments()
	ch, ok := p.s.peek()
	if !ok {
		return nil, false, nil
	}

	switch {
	case ch == '"':
		lit, err := p.s.parseStringLiteral()
		if err != nil {
			return nil, false, err
		}
		return OutLiteral{Value: lit}, true, nil

	case ch == '(':
		p.s.advance()
		p.s.skipWhitespaceAndComments()
		inner, err := p.parseOutExpr()
		if err != nil {
			return nil, false, err
		}
		p.s.skipWhitespaceAndComments()
		if err := p.s.expect(')'); err != nil {
			return nil, false, err
		}
		p.s.skipWhitespaceAndComments()
		if ch, ok := p.s.peek(); ok && ch == '?' {
			p.s.advance()
			return OutOptional{Elem: inner}, true, nil
		}
		return inner, true, nil

	case isAlpha(ch):
		name := p.s.parseIdentifier()
		p.s.skipWhitespaceAndComments()
		if ch, ok := p.s.peek(); ok && ch == '?' {
			p.s.advance()
			return OutOptional{Elem: OutRuleRef{Name: name}}, true, nil
		}
		return OutRuleRef{Name: name}, true, nil

	default:
		return nil, false, nil
	}
}

func (p *outputMetaParser) parseMatchExpr() (OutputExpr, error) {
	p.s.pos += len("match")
	p.s.skipWhitespaceAndComments()

	if !strings.HasPrefix(p.s.remaining(), "@value") {
		return nil, errf("expected '@value' after 'match'")
	}
	p.s.pos += len("@value")

	p.s.skipWhitespaceAndComments()
	if err := p.s.expect('{'); err != nil {
		return nil, err
	}

	var cases []MatchCase
	def := ""

	for {
		p.s.skipWhitespaceAndComments()

		if ch, ok := p.s.peek(); ok && ch == '}' {
			p.s.advance()
			break
		}

		ch, ok := p.s.peek()
		if !ok {
			return nil, errf("unterminated match expression")
		}

		switch ch {
		case '_':
			p.s.advance()
			p.s.skipWhitespaceAndComments()
			if !strings.HasPrefix(p.s.remaining(), "=>") {
				return nil, errf("expected '=>' in match")
			}
			p.s.pos += 2
			p.s.skipWhitespaceAndComments()
			if strings.HasPrefix(p.s.remaining(), "@value") {
				p.s.pos += len("@value")
				def = "@value"
			} else {
				lit, err := p.s.parseStringLiteral()
				if err != nil {
					return nil, err
				}
				def = lit
			}
		case '"':
			pattern, err := p.s.parseStringLiteral()
			if err != nil {
				return nil, err
			}
			p.s.skipWhitespaceAndComments()
			if !strings.HasPrefix(p.s.remaining(), "=>") {
				return nil, errf("expected '=>' in match")
			}
			p.s.pos += 2
			p.s.skipWhitespaceAndComments()
			replacement, err := p.s.parseStringLiteral()
			if err != nil {
				return nil, err
			}
			cases = append(cases, MatchCase{Pattern: pattern, Replacement: replacement})
		default:
			return nil, errf("expected a match case, found %q", preview(p.s.remaining()))
		}

		p.s.skipWhitespaceAndComments()
		if ch, ok := p.s.peek(); ok && ch == ',' {
			p.s.advance()
		}
	}

	return OutMatch{Cases: cases, Default: def}, nil
}

func (p *outputMetaParser) parseContextIfExpr() (OutputExpr, error) {
	p.s.pos += len("if")
	p.s.skipWhitespaceAndComments()

	if !strings.HasPrefix(p.s.remaining(), "@context") {
		return nil, errf("expected '@context' after 'if'")
	}
	p.s.pos += len("@context")

	p.s.skipWhitespaceAndComments()
	if !strings.HasPrefix(p.s.remaining(), "==") {
		return nil, errf("expected '==' after '@context'")
	}
	p.s.pos += 2

	p.s.skipWhitespaceAndComments()
	contextValue, err := p.s.parseStringLiteral()
	if err != nil {
		return nil, err
	}

	p.s.skipWhitespaceAndComments()
	if !p.s.startsWithKeyword("then") {
		return nil, errf("expected 'then' after context value")
	}
	p.s.pos += len("then")

	p.s.skipWhitespaceAndComments()
	thenExpr, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	p.s.skipWhitespaceAndComments()
	if !p.s.startsWithKeyword("else") {
		return nil, errf("expected 'else' after then expression")
	}
	p.s.pos += len("else")

	p.s.skipWhitespaceAndComments()
	elseExpr, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	return OutContextIf{ContextValue: contextValue, Then: thenExpr, Else: elseExpr}, nil
}

// parseBranch parses the then/else arm of a context-if: a parenthesized
// expression, or a single atom.
func (p *outputMetaParser) parseBranch() (OutputExpr, error) {
	if ch, ok := p.s.peek(); ok && ch == '(' {
		p.s.advance()
		p.s.skipWhitespaceAndComments()
		inner, err := p.parseOutExpr()
		if err != nil {
			return nil, err
		}
		p.s.skipWhitespaceAndComments()
		if err := p.s.expect(')'); err != nil {
			return nil, err
		}
		return inner, nil
	}
	item, ok, err := p.parseOutAtom()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errf("expected an expression")
	}
	return item, nil
}
