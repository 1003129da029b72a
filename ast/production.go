package ast

// Production is one right-hand-side alternative of a rule: an ordered
// (possibly empty) sequence of symbols, plus an optional %prec override
// naming the terminal whose precedence the production should inherit
// instead of the usual right-to-left scan (see package grammar).
type Production struct {
	Symbols    []Symbol
	Precedence string // terminal name; "" means no override
}

// PIdx is the index of a Production within a GrammarAST's Prods vector.
// It is a position, not a handle into the compiled grammar; the compiler
// remaps AST production indices 1:1 onto grammar.PIdx values.
type PIdx int

func (i PIdx) Int() int { return int(i) }
