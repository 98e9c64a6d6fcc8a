package inputgrammar

import (
	"strings"
	"testing"

	"github.com/Dangornushi/hensan/metagrammar"
	"github.com/Dangornushi/hensan/transpileerr"
)

func mustGrammar(t *testing.T, src string) *metagrammar.InputGrammar {
	t.Helper()
	g, err := metagrammar.ParseInputGrammar(src)
	if err != nil {
		t.Fatalf("ParseInputGrammar() error = %v", err)
	}
	return g
}

func TestParser_Sequence_BuildsNamedChildren(t *testing.T) {
	g := mustGrammar(t, `
		func_decl := ret_type name "(" ")" ";";
		ret_type  := "void" | "int";
		name      := "[a-zA-Z_]+";
	`)

	p := NewParser(g, "void main();")
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if node.Name != "func_decl" {
		t.Errorf("Name = %q, want func_decl", node.Name)
	}
	if got := node.Child("ret_type"); got == nil || got.Value != "void" {
		t.Errorf("ret_type child = %#v, want value %q", got, "void")
	}
	if got := node.Child("name"); got == nil || got.Value != "main" {
		t.Errorf("name child = %#v, want value %q", got, "main")
	}
}

func TestParser_ZeroOrMore_CollectsRepeatedChildren(t *testing.T) {
	g := mustGrammar(t, `
		args := arg ("," arg)*;
		arg  := name;
		name := "[a-zA-Z_]+";
	`)

	p := NewParser(g, "a,b,c")
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := node.ChildrenNamed("arg")
	if len(got) != 3 {
		t.Fatalf("len(arg children) = %d, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Value != want {
			t.Errorf("arg[%d] = %q, want %q", i, got[i].Value, want)
		}
	}
}

func TestParser_RepeatOverEmptyMatch_TerminatesWithoutLooping(t *testing.T) {
	// The body can match the empty string, so a naive repetition loop would
	// never terminate; the parser must stop after one empty match and
	// return instead of hanging.
	g := mustGrammar(t, `
		start := maybe*;
		maybe := "x"?;
	`)

	p := NewParser(g, "")
	if _, err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
}

func TestParser_Choice_FirstMatchWins(t *testing.T) {
	g := mustGrammar(t, `kw := "int" | "integer";`)

	p := NewParser(g, "int")
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if node.Value != "int" {
		t.Errorf("value = %q, want %q", node.Value, "int")
	}
}

func TestParser_RollbackOnFailedAlternative(t *testing.T) {
	g := mustGrammar(t, `
		stmt := "if" cond | "return" cond;
		cond := "[a-z]+";
	`)

	p := NewParser(g, "return ok")
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := node.Child("cond"); got == nil || got.Value != "ok" {
		t.Errorf("cond = %#v, want value %q", got, "ok")
	}
}

func TestParser_FurthestError_ReportsDeepestFailure(t *testing.T) {
	g := mustGrammar(t, `
		func_decl := ret_type name "(" ")" ";";
		ret_type  := "void" | "int";
		name      := "[a-zA-Z_]+";
	`)

	p := NewParser(g, "int 123bad();")
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected a parse error")
	}

	pe, ok := err.(*transpileerr.ParseError)
	if !ok {
		t.Fatalf("err = %T, want *transpileerr.ParseError", err)
	}
	if pe.Line != 1 {
		t.Errorf("Line = %d, want 1", pe.Line)
	}
	if pe.Column != 5 {
		t.Errorf("Column = %d, want 5", pe.Column)
	}
	foundExpected := false
	for _, e := range pe.Expected {
		if e == "pattern /[a-zA-Z_]+/" {
			foundExpected = true
		}
	}
	if !foundExpected {
		t.Errorf("Expected = %v, want it to contain %q", pe.Expected, "pattern /[a-zA-Z_]+/")
	}
	if !strings.HasPrefix(pe.Found, "123bad(") {
		t.Errorf("Found = %q, want prefix %q", pe.Found, "123bad(")
	}
}

func TestParser_TrailingGarbage_IsAParseError(t *testing.T) {
	g := mustGrammar(t, `stmt := "go";`)

	p := NewParser(g, "go home")
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected a parse error for unconsumed trailing input")
	}
}

func TestParser_InvalidRegex_YieldsGrammarError(t *testing.T) {
	g := mustGrammar(t, `name := "[a-z";`)

	p := NewParser(g, "abc")
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected an error for an invalid regex pattern")
	}
}
