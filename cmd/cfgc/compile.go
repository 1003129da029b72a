package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/cfgc/grammar"
	"github.com/nihei9/cfgc/gramfile"
)

var compileFlags = struct {
	mode        *string
	description *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar file into a CompiledGrammar",
		Example: `  cfgc compile grammar.toml --description grammar-description.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.mode = cmd.Flags().String("mode", "original", "compilation mode: original or eco")
	compileFlags.description = cmd.Flags().StringP("description", "d", "", "path to write a JSON description of the compiled grammar")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(*compileFlags.mode)
	if err != nil {
		return err
	}

	g, err := gramfile.LoadFile(args[0])
	if err != nil {
		return err
	}

	if err := g.CompleteAndValidate(); err != nil {
		return err
	}

	cgram := grammar.Compile(g, mode)

	if path := *compileFlags.description; path != "" {
		if err := writeDescription(cgram, path); err != nil {
			return fmt.Errorf("cannot write the description file: %w", err)
		}
	}

	fmt.Fprintf(os.Stdout, "compiled %d non-terminals, %d terminals, %d productions\n",
		cgram.NontermsLen(), cgram.TermsLen(), cgram.ProdsLen())
	return nil
}

func parseMode(s string) (grammar.Mode, error) {
	switch s {
	case "", "original":
		return grammar.Original, nil
	case "eco":
		return grammar.Eco, nil
	default:
		return grammar.Original, fmt.Errorf("unknown mode %q (want original or eco)", s)
	}
}

func writeDescription(cgram *grammar.CompiledGrammar, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.MarshalIndent(grammar.Describe(cgram), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%s\n", b)
	return err
}
