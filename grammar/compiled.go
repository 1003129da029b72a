package grammar

import (
	"fmt"

	"github.com/nihei9/cfgc/ast"
)

// Precedence is a (level, associativity) pair attached to a terminal or,
// derivatively, to a production. It is the same shape the AST uses; the
// compiler copies precedences by value from ast.GrammarAST.Precs.
type Precedence = ast.Precedence

// CompiledGrammar is the dense, integer-indexed lowering of a validated
// ast.GrammarAST. It is immutable once constructed by Compile and safe to
// share by reference across goroutines.
//
// Invariants (spec §3): nonterm index 0 is always the synthesised start
// nonterminal and its sole production is StartProd; every nonterminal has
// at least one production; every production's symbols reference valid
// indices of this grammar; ProdToNonterm is the inverse of
// NontermToProds; the EOF terminal has no name and no precedence.
type CompiledGrammar struct {
	nontermNames []string
	termNames    []*string
	termPrecs    []*Precedence
	rulesProds   [][]PIdx
	prods        [][]Symbol
	prodsRules   []NTIdx
	prodPrecs    []*Precedence

	startProd       PIdx
	eofTermIdx      TIdx
	implicitNonterm *NTIdx

	nonterm2Idx map[string]NTIdx
	term2Idx    map[string]TIdx
}

// EOFTermIdx returns the index of the synthesised EOF terminal.
func (g *CompiledGrammar) EOFTermIdx() TIdx {
	return g.eofTermIdx
}

// NontermToProds returns the productions of nonterminal i, in the order
// they are attached (AST order for user rules, construction order for
// synthesised rules). Panics if i is out of range.
func (g *CompiledGrammar) NontermToProds(i NTIdx) []PIdx {
	g.checkNT(i)
	return g.rulesProds[i]
}

// NontermName returns the name of nonterminal i. Panics if i is out of range.
func (g *CompiledGrammar) NontermName(i NTIdx) string {
	g.checkNT(i)
	return g.nontermNames[i]
}

// NontermsLen returns the number of nonterminals in the grammar.
func (g *CompiledGrammar) NontermsLen() int {
	return len(g.nontermNames)
}

// TermsLen returns the number of terminals in the grammar, including EOF.
func (g *CompiledGrammar) TermsLen() int {
	return len(g.termNames)
}

// ProdsLen returns the number of productions in the grammar.
func (g *CompiledGrammar) ProdsLen() int {
	return len(g.prods)
}

// IterNontermIdxs returns every valid NTIdx of this grammar, in index order.
func (g *CompiledGrammar) IterNontermIdxs() []NTIdx {
	idxs := make([]NTIdx, len(g.nontermNames))
	for i := range idxs {
		idxs[i] = NTIdx(i)
	}
	return idxs
}

// Prod returns the symbol sequence of production i. Panics if i is out of range.
func (g *CompiledGrammar) Prod(i PIdx) []Symbol {
	g.checkP(i)
	return g.prods[i]
}

// ProdToNonterm returns the nonterminal that owns production i. Panics if
// i is out of range.
func (g *CompiledGrammar) ProdToNonterm(i PIdx) NTIdx {
	g.checkP(i)
	return g.prodsRules[i]
}

// ProdPrecedence returns the effective precedence of production i, or nil
// if it has none. Panics if i is out of range.
func (g *CompiledGrammar) ProdPrecedence(i PIdx) *Precedence {
	g.checkP(i)
	return g.prodPrecs[i]
}

// TermName returns the name of terminal i, or nil for a synthesised
// terminal such as EOF. Panics if i is out of range.
func (g *CompiledGrammar) TermName(i TIdx) *string {
	g.checkT(i)
	return g.termNames[i]
}

// TermPrecedence returns the precedence of terminal i, or nil if it has
// none. Panics if i is out of range.
func (g *CompiledGrammar) TermPrecedence(i TIdx) *Precedence {
	g.checkT(i)
	return g.termPrecs[i]
}

// TermsMap returns a mapping from name to TIdx for every named terminal.
func (g *CompiledGrammar) TermsMap() map[string]TIdx {
	return g.term2Idx
}

// StartProd returns the single production of the synthesised start
// nonterminal.
func (g *CompiledGrammar) StartProd() PIdx {
	return g.startProd
}

// ImplicitNonterm returns the index of the implicit-token nonterminal
// ("~"), if implicit-token rewriting was applied.
func (g *CompiledGrammar) ImplicitNonterm() *NTIdx {
	return g.implicitNonterm
}

// NontermIdx returns the index of the nonterminal named n, if any.
func (g *CompiledGrammar) NontermIdx(n string) (NTIdx, bool) {
	i, ok := g.nonterm2Idx[n]
	return i, ok
}

// TermIdx returns the index of the terminal named n, if any.
func (g *CompiledGrammar) TermIdx(n string) (TIdx, bool) {
	i, ok := g.term2Idx[n]
	return i, ok
}

// StartRuleIdx returns the nonterminal owning StartProd: the synthesised
// start nonterminal, index 0.
func (g *CompiledGrammar) StartRuleIdx() NTIdx {
	return g.ProdToNonterm(g.startProd)
}

func (g *CompiledGrammar) checkNT(i NTIdx) {
	if int(i) >= len(g.nontermNames) {
		panic(fmt.Sprintf("grammar: non-terminal index out of range: %d", i))
	}
}

func (g *CompiledGrammar) checkT(i TIdx) {
	if int(i) >= len(g.termNames) {
		panic(fmt.Sprintf("grammar: terminal index out of range: %d", i))
	}
}

func (g *CompiledGrammar) checkP(i PIdx) {
	if int(i) >= len(g.prods) {
		panic(fmt.Sprintf("grammar: production index out of range: %d", i))
	}
}
