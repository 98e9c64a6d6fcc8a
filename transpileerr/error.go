// Package transpileerr holds the error types shared by every stage of the
// transpiler: a fatal compile-time diagnostic for malformed grammars, and
// the structured, line/column-aware parse error the input parser produces
// when source text fails to match an input grammar.
package transpileerr

import "fmt"

// GrammarError is a fatal diagnostic raised while compiling a grammar file
// (the meta-parser) or while preparing a terminal for use (an invalid regex
// pattern). Row is 1-indexed; a zero Row means the error isn't tied to a
// specific line (e.g. an invalid regex pattern).
type GrammarError struct {
	Cause error
	Row   int
}

func (e *GrammarError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("error: %v", e.Cause)
	}
	return fmt.Sprintf("%v: error: %v", e.Row, e.Cause)
}

func (e *GrammarError) Unwrap() error {
	return e.Cause
}
