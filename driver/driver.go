// Package driver wires metagrammar, inputgrammar, and generator into the
// end-to-end source-to-source transpile operation, and owns the bootstrap
// of the default grammar pair on disk (spec.md §6, §9).
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dangornushi/hensan/generator"
	"github.com/Dangornushi/hensan/inputgrammar"
	"github.com/Dangornushi/hensan/metagrammar"
)

// GrammarDir is the directory the default grammar pair lives under.
const GrammarDir = "Grammar"

// DefaultInputBNF and DefaultOutputBNF are the default grammar file names
// inside GrammarDir.
const (
	DefaultInputBNF  = "input.bnf"
	DefaultOutputBNF = "output.bnf"
)

// EnsureGrammarFiles creates GrammarDir and writes DefaultInputGrammar /
// DefaultOutputGrammar into it, but only for whichever of the directory or
// the two files does not already exist. It reports each file it creates by
// writing a notice to report.
func EnsureGrammarFiles(report func(string)) error {
	if _, err := os.Stat(GrammarDir); os.IsNotExist(err) {
		if err := os.MkdirAll(GrammarDir, 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", GrammarDir, err)
		}
		report(fmt.Sprintf("Created %s directory", GrammarDir))
	}

	inputPath := filepath.Join(GrammarDir, DefaultInputBNF)
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		if err := os.WriteFile(inputPath, []byte(DefaultInputGrammar), 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", inputPath, err)
		}
		report(fmt.Sprintf("Created %s", inputPath))
	}

	outputPath := filepath.Join(GrammarDir, DefaultOutputBNF)
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		if err := os.WriteFile(outputPath, []byte(DefaultOutputGrammar), 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", outputPath, err)
		}
		report(fmt.Sprintf("Created %s", outputPath))
	}

	return nil
}

// ResolveSource returns source text and a display name for sourceArg: if
// sourceArg names an existing file, its contents are read; otherwise
// sourceArg itself is treated as inline source text (spec.md §6).
func ResolveSource(sourceArg string) (source, name string, err error) {
	if _, statErr := os.Stat(sourceArg); statErr == nil {
		content, err := os.ReadFile(sourceArg)
		if err != nil {
			return "", "", fmt.Errorf("reading source file %s: %w", sourceArg, err)
		}
		return string(content), sourceArg, nil
	}
	return sourceArg, "<inline>", nil
}

// Transpile runs the full pipeline: parse both grammars, parse source
// against the input grammar, and generate output text. inputBNFPath and
// outputBNFPath are read from disk; every failure is wrapped with enough
// context to identify which file or stage produced it.
func Transpile(source, inputBNFPath, outputBNFPath string) (string, error) {
	inputBNF, err := os.ReadFile(inputBNFPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", inputBNFPath, err)
	}
	outputBNF, err := os.ReadFile(outputBNFPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", outputBNFPath, err)
	}

	inputGrammar, err := metagrammar.ParseInputGrammar(string(inputBNF))
	if err != nil {
		return "", err
	}
	outputGrammar, err := metagrammar.ParseOutputGrammar(string(outputBNF))
	if err != nil {
		return "", err
	}

	p := inputgrammar.NewParser(inputGrammar, source)
	root, err := p.Parse()
	if err != nil {
		return "", err
	}

	gen := generator.New(outputGrammar)
	return gen.Generate(root), nil
}
