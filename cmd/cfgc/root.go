package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfgc",
	Short: "Compile a context-free grammar into a dense indexed form",
	Long: `cfgc provides two features:
- Compiles a declarative TOML grammar file into a CompiledGrammar.
- Generates minimal-cost sentences derivable from a nonterminal of that
  grammar, for grammar-authoring feedback.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
