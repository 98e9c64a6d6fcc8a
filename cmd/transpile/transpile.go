package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dangornushi/hensan/driver"
	"github.com/spf13/cobra"
)

func runTranspile(cmd *cobra.Command, args []string) error {
	if err := driver.EnsureGrammarFiles(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	}); err != nil {
		return err
	}

	source, sourceName, err := driver.ResolveSource(args[0])
	if err != nil {
		return err
	}

	inputBNFPath := argOrDefault(args, 1, filepath.Join(driver.GrammarDir, driver.DefaultInputBNF))
	outputBNFPath := argOrDefault(args, 2, filepath.Join(driver.GrammarDir, driver.DefaultOutputBNF))

	output, err := driver.Transpile(source, inputBNFPath, outputBNFPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in %s:\n", sourceName)
		return err
	}

	fmt.Println(output)
	return nil
}

// argOrDefault returns args[i] if present, or def otherwise.
func argOrDefault(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}
