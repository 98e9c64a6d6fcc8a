package goldentest

import "github.com/Dangornushi/hensan/driver"

// DefaultScenarios covers the six end-to-end scenarios.
var DefaultScenarios = []Scenario{
	{
		Name:          "c-like function signature to rust-like",
		InputGrammar:  driver.DefaultInputGrammar,
		OutputGrammar: driver.DefaultOutputGrammar,
		Source:        "int my_func(int a, float b);",
		Want:          "fn my_func(a: i32, b: f64) -> i32;",
	},
	{
		Name:          "empty argument list",
		InputGrammar:  driver.DefaultInputGrammar,
		OutputGrammar: driver.DefaultOutputGrammar,
		Source:        "void f();",
		Want:          "fn f() -> ();",
	},
	{
		Name:          "parse error formatting",
		InputGrammar:  driver.DefaultInputGrammar,
		OutputGrammar: driver.DefaultOutputGrammar,
		Source:        "int 123bad();",
		WantErr:       true,
	},
	{
		Name:          "join empty",
		InputGrammar:  `list := (item ("," item)*)?;` + "\n" + `item := "[a-z]+";`,
		OutputGrammar: `list := item join ", ";`,
		Source:        "",
		Want:          "",
	},
	{
		Name: "indentation",
		InputGrammar: `block := "begin" NEWLINE INDENT stmt+ DEDENT;
stmt := name NEWLINE;
name := "[a-z]+";`,
		OutputGrammar: `block := stmt join "\n";
stmt := name;`,
		Source: "begin\n  a\n  b\n",
		Want:   "a\nb",
	},
	{
		Name: "context-if",
		InputGrammar: `root := decl use;
decl := "[a-z]+";
use  := "[a-z]+";`,
		OutputGrammar: `root := decl " " use;
decl := x;
use  := x;
x    := if @context == "decl" then "D" else "E";`,
		Source: "foo bar",
		Want:   "D E",
	},
}
