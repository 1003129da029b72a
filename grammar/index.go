// Package grammar lowers a validated ast.GrammarAST into a dense,
// integer-indexed CompiledGrammar, and provides reachability and
// sentence-cost analyses over the result.
package grammar

// NTIdx, TIdx and PIdx are distinct handles into a CompiledGrammar's
// nonterminal, terminal, and production vectors respectively. They share
// an underlying representation but are deliberately not interchangeable:
// nothing in this package accepts one where another is expected, so a
// terminal index can never be used to index the production table by
// accident. Converting between them requires going through a name lookup
// (NontermIdx/TermIdx) or an explicit query (ProdToNonterm).
type NTIdx uint16

func (i NTIdx) Int() int { return int(i) }

type TIdx uint16

func (i TIdx) Int() int { return int(i) }

type PIdx uint16

func (i PIdx) Int() int { return int(i) }

// startNTIdx is always the index of the synthesised start nonterminal;
// it is a contract of CompiledGrammar (spec §3) that this is 0.
const startNTIdx = NTIdx(0)
