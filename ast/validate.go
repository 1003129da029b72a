package ast

import "fmt"

// ValidationErrorKind enumerates the ways a GrammarAST can fail
// CompleteAndValidate.
type ValidationErrorKind int

const (
	NoStartRule ValidationErrorKind = iota
	InvalidStartRule
	UnknownRuleRef
	UnknownToken
	NoPrecForToken
)

func (k ValidationErrorKind) String() string {
	switch k {
	case NoStartRule:
		return "no start rule specified"
	case InvalidStartRule:
		return "start rule does not appear in the grammar"
	case UnknownRuleRef:
		return "unknown reference to rule"
	case UnknownToken:
		return "unknown token"
	case NoPrecForToken:
		return "token used in a precedence override has no precedence attached"
	default:
		return "unknown validation error"
	}
}

// ValidationError is returned by CompleteAndValidate. Sym, when non-nil,
// names the offending symbol.
type ValidationError struct {
	Kind ValidationErrorKind
	Sym  *Symbol
}

func (e *ValidationError) Error() string {
	if e.Sym == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: '%s'", e.Kind, e.Sym.Name)
}

func errNoStartRule() *ValidationError {
	return &ValidationError{Kind: NoStartRule}
}

func errInvalidStartRule(name string) *ValidationError {
	sym := NontermSym(name)
	return &ValidationError{Kind: InvalidStartRule, Sym: &sym}
}

func errUnknownRuleRef(sym Symbol) *ValidationError {
	return &ValidationError{Kind: UnknownRuleRef, Sym: &sym}
}

func errUnknownToken(sym Symbol) *ValidationError {
	return &ValidationError{Kind: UnknownToken, Sym: &sym}
}

func errNoPrecForToken(sym Symbol) *ValidationError {
	return &ValidationError{Kind: NoPrecForToken, Sym: &sym}
}

// CompleteAndValidate proves that g is internally well-formed:
//
//  1. Start is set and names a rule present in the grammar.
//  2. Every Nonterm symbol in every production names a rule in the grammar.
//  3. Every Term symbol in every production names a declared token.
//  4. Every production-level precedence override names a token that also
//     has a declared precedence.
//
// The first violation found wins: missing start, then unknown start, then
// for each rule in insertion order, each of its productions in the order
// they were added, checking the precedence override before scanning the
// production's symbols left to right.
func (g *GrammarAST) CompleteAndValidate() error {
	if g.Start == nil {
		return errNoStartRule()
	}
	if !g.HasRule(*g.Start) {
		return errInvalidStartRule(*g.Start)
	}

	for _, rule := range g.ruleNames {
		prodIdxs := g.rules[rule]
		for _, pidx := range prodIdxs {
			prod := g.Prods[pidx]

			if prod.Precedence != "" {
				sym := TermSym(prod.Precedence)
				if !g.HasToken(prod.Precedence) {
					return errUnknownToken(sym)
				}
				if _, ok := g.Precs[prod.Precedence]; !ok {
					return errNoPrecForToken(sym)
				}
			}

			for _, sym := range prod.Symbols {
				switch sym.Kind {
				case Nonterm:
					if !g.HasRule(sym.Name) {
						return errUnknownRuleRef(sym)
					}
				case Term:
					if !g.HasToken(sym.Name) {
						return errUnknownToken(sym)
					}
				}
			}
		}
	}

	return nil
}
