// Package gramfile reads a declarative TOML grammar source file and builds
// an ast.GrammarAST from it: a convenience layer standing in for the
// out-of-scope Yacc surface syntax parser, so the core compiler has a
// realistic on-disk format to drive from.
package gramfile

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nihei9/cfgc/ast"
	"github.com/nihei9/cfgc/grammarerr"
)

// LoadFile reads the grammar source file at path and builds an unvalidated
// *ast.GrammarAST from it. Callers still need to call CompleteAndValidate
// themselves; LoadFile only reports a file that cannot be read, malformed
// TOML, or an obviously malformed grammar (an unnamed rule, an unnamed
// token, an unrecognised associativity keyword).
func LoadFile(path string) (*ast.GrammarAST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fg fileGrammar
	if _, err := toml.Decode(string(data), &fg); err != nil {
		return nil, grammarerr.NewConfigError(0, "malformed grammar file: %v", err)
	}

	return build(&fg)
}

func build(fg *fileGrammar) (*ast.GrammarAST, error) {
	g := ast.NewGrammarAST()

	for _, t := range fg.Tokens {
		if t.Name == "" {
			return nil, grammarerr.NewConfigError(0, "a [[token]] entry has no name")
		}
		g.Tokens[t.Name] = struct{}{}

		if t.Prec != nil {
			assoc, err := parseAssoc(t.Prec.Assoc)
			if err != nil {
				return nil, grammarerr.NewConfigError(0, "token %q: %v", t.Name, err)
			}
			g.Precs[t.Name] = ast.Precedence{Level: t.Prec.Level, Kind: assoc}
		}
	}

	if fg.ImplicitTokens != nil {
		g.ImplicitTokens = make(map[string]struct{}, len(fg.ImplicitTokens.Names))
		for _, n := range fg.ImplicitTokens.Names {
			g.ImplicitTokens[n] = struct{}{}
		}
	}

	if fg.Start != "" {
		start := fg.Start
		g.Start = &start
	}

	for _, r := range fg.Rules {
		if r.Name == "" {
			return nil, grammarerr.NewConfigError(0, "a [[rule]] entry has no name")
		}
		for _, alt := range r.Alts {
			syms := make([]ast.Symbol, len(alt.Symbols))
			for i, name := range alt.Symbols {
				if g.HasToken(name) {
					syms[i] = ast.TermSym(name)
				} else {
					syms[i] = ast.NontermSym(name)
				}
			}
			g.AddProd(r.Name, syms, alt.Prec)
		}
	}

	return g, nil
}

func parseAssoc(s string) (ast.AssocKind, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return ast.Left, nil
	case "right":
		return ast.Right, nil
	case "nonassoc":
		return ast.Nonassoc, nil
	default:
		return 0, &unknownAssocError{s}
	}
}

type unknownAssocError struct{ s string }

func (e *unknownAssocError) Error() string {
	return "unknown associativity \"" + e.s + "\" (want left, right or nonassoc)"
}
