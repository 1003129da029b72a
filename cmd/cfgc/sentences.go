package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nihei9/cfgc/grammar"
	"github.com/nihei9/cfgc/gramfile"
)

var sentencesFlags = struct {
	mode  *string
	costs *[]string
	all   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "sentences <grammar.toml> <non-terminal>",
		Short:   "Print minimal-cost sentences derivable from a non-terminal",
		Example: `  cfgc sentences grammar.toml expr --cost NUM=1 --cost PLUS=2`,
		Args:    cobra.ExactArgs(2),
		RunE:    runSentences,
	}
	sentencesFlags.mode = cmd.Flags().String("mode", "original", "compilation mode: original or eco")
	sentencesFlags.costs = cmd.Flags().StringArray("cost", nil, "terminal=cost override, repeatable (default cost is 1)")
	sentencesFlags.all = cmd.Flags().Bool("all", false, "print every minimal sentence instead of just one")
	rootCmd.AddCommand(cmd)
}

func runSentences(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(*sentencesFlags.mode)
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

	nt, ok := cgram.NontermIdx(args[1])
	if !ok {
		return fmt.Errorf("no such non-terminal: %s", args[1])
	}

	costs, err := parseCosts(*sentencesFlags.costs)
	if err != nil {
		return err
	}

	gen := cgram.SentenceGenerator(func(t grammar.TIdx) uint8 {
		if name := cgram.TermName(t); name != nil {
			if c, ok := costs[*name]; ok {
				return c
			}
		}
		return 1
	})

	render := func(sentence []grammar.TIdx) string {
		names := make([]string, len(sentence))
		for i, t := range sentence {
			name := cgram.TermName(t)
			if name == nil {
				names[i] = "<eof>"
			} else {
				names[i] = *name
			}
		}
		return strings.Join(names, " ")
	}

	if *sentencesFlags.all {
		for _, s := range gen.MinSentences(nt) {
			fmt.Fprintln(os.Stdout, render(s))
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, render(gen.MinSentence(nt)))
	return nil
}

func parseCosts(raw []string) (map[string]uint8, error) {
	costs := make(map[string]uint8, len(raw))
	for _, kv := range raw {
		name, val, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("malformed --cost %q (want terminal=cost)", kv)
		}
		n, err := strconv.ParseUint(val, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("malformed --cost %q: %w", kv, err)
		}
		costs[name] = uint8(n)
	}
	return costs, nil
}
