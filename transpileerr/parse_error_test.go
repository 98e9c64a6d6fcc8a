package transpileerr

import (
	"strings"
	"testing"
)

func TestParseError_Error_Format(t *testing.T) {
	e := &ParseError{
		Position:   4,
		Line:       1,
		Column:     5,
		Expected:   []string{`pattern /[a-zA-Z_]+/`},
		Found:      "123bad();",
		Rule:       "name",
		SourceLine: "int 123bad();",
	}

	want := "Parse error at line 1, column 5:\n" +
		"\n" +
		" 1 | int 123bad();\n" +
		"        ^\n" +
		"\n" +
		"Expected: pattern /[a-zA-Z_]+/\n" +
		"Found: '123bad();'\n" +
		"While parsing: name"

	if got := e.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseError_Error_MultipleExpectations(t *testing.T) {
	e := &ParseError{
		Line:       10,
		Column:     1,
		Expected:   []string{`"("`, `";"`},
		Found:      "end of input",
		Rule:       "func_decl",
		SourceLine: "",
	}

	got := e.Error()
	want := "Expected: \"(\" or \";\""
	if !strings.Contains(got, want) {
		t.Errorf("Error() = %q, want it to contain %q", got, want)
	}
}
