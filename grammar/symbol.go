package grammar

import "fmt"

type symbolKind uint8

const (
	symNonterm symbolKind = iota
	symTerm
)

// Symbol is a compiled-form grammar symbol: a reference to either a
// nonterminal or a terminal by dense index. Build one with
// NontermSymbol/TermSymbol and discriminate with IsNonterm/IsTerm; calling
// Nonterm on a terminal symbol (or Term on a nonterminal one) is a
// programmer error and panics, consistent with this package's contract
// that out-of-range or wrongly-tagged index use is fatal, not recoverable.
type Symbol struct {
	kind symbolKind
	nt   NTIdx
	t    TIdx
}

func NontermSymbol(i NTIdx) Symbol { return Symbol{kind: symNonterm, nt: i} }
func TermSymbol(i TIdx) Symbol     { return Symbol{kind: symTerm, t: i} }

func (s Symbol) IsNonterm() bool { return s.kind == symNonterm }
func (s Symbol) IsTerm() bool    { return s.kind == symTerm }

func (s Symbol) Nonterm() NTIdx {
	if s.kind != symNonterm {
		panic(fmt.Sprintf("grammar: Nonterm() called on a terminal symbol (t%d)", s.t))
	}
	return s.nt
}

func (s Symbol) Term() TIdx {
	if s.kind != symTerm {
		panic(fmt.Sprintf("grammar: Term() called on a non-terminal symbol (n%d)", s.nt))
	}
	return s.t
}

func (s Symbol) String() string {
	if s.IsTerm() {
		return fmt.Sprintf("t%d", s.t)
	}
	return fmt.Sprintf("n%d", s.nt)
}

// Mode selects the grammar compilation strategy.
type Mode int

const (
	// Original is strict Yacc: no implicit-token rewriting.
	Original Mode = iota
	// Eco enables %implicit_tokens rewriting (§4.3.6).
	Eco
)

func (m Mode) String() string {
	if m == Eco {
		return "eco"
	}
	return "original"
}
