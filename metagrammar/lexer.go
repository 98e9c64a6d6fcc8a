package metagrammar

import (
	"fmt"
	"strings"
)

func errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// scanner is the low-level byte cursor shared by the input-grammar and
// output-grammar parsers. It tracks a 1-indexed line number for error
// reporting but otherwise does not pre-tokenize its input: the parser
// drives it one construct at a time, mirroring the reference
// implementation's single-pass meta-parser.
type scanner struct {
	src  string
	pos  int
	line int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, pos: 0, line: 1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) remaining() string {
	return s.src[s.pos:]
}

func (s *scanner) peek() (rune, bool) {
	if s.eof() {
		return 0, false
	}
	return rune(s.src[s.pos]), true
}

func (s *scanner) advance() (rune, bool) {
	ch, ok := s.peek()
	if !ok {
		return 0, false
	}
	s.pos++
	if ch == '\n' {
		s.line++
	}
	return ch, true
}

// skipWhitespaceAndComments skips runs of whitespace and "//"-to-end-of-line
// comments, alternating between the two until neither matches.
func (s *scanner) skipWhitespaceAndComments() {
	for {
		for !s.eof() {
			ch, _ := s.peek()
			if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
				s.advance()
			} else {
				break
			}
		}
		if strings.HasPrefix(s.remaining(), "//") {
			for !s.eof() {
				ch, _ := s.advance()
				if ch == '\n' {
					break
				}
			}
			continue
		}
		break
	}
}

// parseIdentifier consumes [A-Za-z_][A-Za-z0-9_]* starting at the current
// position. It returns the empty string if the current position isn't the
// start of an identifier.
func (s *scanner) parseIdentifier() string {
	start := s.pos
	if ch, ok := s.peek(); !ok || !isAlpha(ch) {
		return ""
	}
	for !s.eof() {
		ch, _ := s.peek()
		if isAlnum(ch) {
			s.advance()
		} else {
			break
		}
	}
	return s.src[start:s.pos]
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlnum(ch rune) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}

// expect consumes ch, returning an error naming what was found instead.
func (s *scanner) expect(ch rune) error {
	got, ok := s.advance()
	if !ok {
		return errf("expected '%c', found end of input", ch)
	}
	if got != ch {
		return errf("expected '%c', got '%c'", ch, got)
	}
	return nil
}

// parseStringLiteral consumes a double-quoted string. No escape processing
// happens at this layer: escapes are deferred to the generator (spec.md
// §4.1).
func (s *scanner) parseStringLiteral() (string, error) {
	if err := s.expect('"'); err != nil {
		return "", err
	}
	start := s.pos
	for {
		ch, ok := s.peek()
		if !ok {
			return "", errf("unterminated string literal")
		}
		if ch == '"' {
			break
		}
		s.advance()
	}
	result := s.src[start:s.pos]
	if err := s.expect('"'); err != nil {
		return "", err
	}
	return result, nil
}

// parseBracketedPattern consumes a "[...]" regex pattern body, tracking
// bracket nesting so that character classes inside the pattern (e.g.
// "[a-z]") don't terminate it prematurely.
func (s *scanner) parseBracketedPattern() (string, error) {
	if err := s.expect('['); err != nil {
		return "", err
	}
	start := s.pos
	depth := 1
	for depth > 0 {
		ch, ok := s.advance()
		if !ok {
			return "", errf("unclosed pattern")
		}
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return s.src[start : s.pos-1], nil
}

// startsWithKeyword reports whether the scanner is positioned at keyword
// followed by a non-identifier character, distinguishing reserved words
// (match, if, join, then, else) from user identifiers that merely share a
// prefix (spec.md §4.1).
func (s *scanner) startsWithKeyword(keyword string) bool {
	if !strings.HasPrefix(s.remaining(), keyword) {
		return false
	}
	rest := s.remaining()[len(keyword):]
	if rest == "" {
		return true
	}
	next := rune(rest[0])
	return !isAlnum(next)
}
