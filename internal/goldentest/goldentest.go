// Package goldentest is a small fixture-driven runner that exercises the
// transpile pipeline end-to-end, one Scenario per row, mirroring the
// pass/fail reporting shape of vartan's tester package.
package goldentest

import (
	"fmt"
	"strings"

	"github.com/Dangornushi/hensan/generator"
	"github.com/Dangornushi/hensan/inputgrammar"
	"github.com/Dangornushi/hensan/metagrammar"
)

// Scenario is one fixture: a grammar pair, a source text, and either the
// output text it must produce or a flag that it must fail to parse.
type Scenario struct {
	Name          string
	InputGrammar  string
	OutputGrammar string
	Source        string
	Want          string
	WantErr       bool
}

// Result is the outcome of running one Scenario.
type Result struct {
	Name string
	Got  string
	Err  error
}

// String renders r the way vartan's tester.TestResult renders a test case:
// "Passed <name>" or "Failed <name>: <message>".
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("Failed %s: %v", r.Name, r.Err)
	}
	return fmt.Sprintf("Passed %s", r.Name)
}

// Run executes s: parses both grammars, parses Source against the input
// grammar, and generates output from the resulting AST.
func Run(s Scenario) Result {
	inputGrammar, err := metagrammar.ParseInputGrammar(s.InputGrammar)
	if err != nil {
		return Result{Name: s.Name, Err: fmt.Errorf("input grammar: %w", err)}
	}
	outputGrammar, err := metagrammar.ParseOutputGrammar(s.OutputGrammar)
	if err != nil {
		return Result{Name: s.Name, Err: fmt.Errorf("output grammar: %w", err)}
	}

	p := inputgrammar.NewParser(inputGrammar, s.Source)
	root, err := p.Parse()
	if err != nil {
		if s.WantErr {
			return Result{Name: s.Name, Err: nil}
		}
		return Result{Name: s.Name, Err: err}
	}
	if s.WantErr {
		return Result{Name: s.Name, Err: fmt.Errorf("expected a parse error, parse succeeded instead")}
	}

	got := generator.New(outputGrammar).Generate(root)
	if got != s.Want {
		return Result{Name: s.Name, Got: got, Err: fmt.Errorf("output = %q, want %q", got, s.Want)}
	}
	return Result{Name: s.Name, Got: got}
}

// RunAll runs every scenario in order and returns one Result per scenario.
func RunAll(scenarios []Scenario) []Result {
	results := make([]Result, len(scenarios))
	for i, s := range scenarios {
		results[i] = Run(s)
	}
	return results
}

// Report joins every result's String() with newlines, in the order given,
// matching vartan's tester convention of one line per test case.
func Report(results []Result) string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
