package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "transpile <source> [input.bnf] [output.bnf]",
	Short: "Transpile source text from one grammar to another",
	Long: `transpile parses source text against a grammar-driven recursive-descent
parser and renders it through an independent output grammar.

Arguments:
  source       Source file path, or inline source text (required)
  input.bnf    Input grammar file (default: Grammar/input.bnf)
  output.bnf   Output grammar file (default: Grammar/output.bnf)

On first run, if the Grammar directory or either default grammar file is
missing, transpile creates them with a built-in C-like-to-Rust-like example
pair.`,
	Example: `  # Inline source code
  transpile 'int my_func(int a, float b);'

  # From a file
  transpile source.c

  # With custom grammar files
  transpile source.c Grammar/custom_in.bnf Grammar/custom_out.bnf`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.RangeArgs(1, 3),
	RunE:          runTranspile,
}

// Execute runs the root command, printing any error to stderr before
// propagating it so main can set the process exit code.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
