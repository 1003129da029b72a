package grammar

// Description is a JSON-serialisable snapshot of a CompiledGrammar, meant
// for `cfgc compile --description` to write out alongside the compiled
// form so a grammar author can inspect the lowering without instrumenting
// code against the CompiledGrammar API directly.
type Description struct {
	Nonterms []NontermDescription `json:"nonterms"`
	Terms    []TermDescription    `json:"terms"`
	Prods    []ProdDescription    `json:"prods"`
	Start    PIdx                 `json:"start_prod"`
}

type NontermDescription struct {
	Num   NTIdx  `json:"num"`
	Name  string `json:"name"`
	Prods []PIdx `json:"prods"`
}

type TermDescription struct {
	Num  TIdx        `json:"num"`
	Name *string     `json:"name"`
	Prec *Precedence `json:"prec,omitempty"`
}

type ProdDescription struct {
	Num  PIdx        `json:"num"`
	LHS  NTIdx       `json:"lhs"`
	RHS  []string    `json:"rhs"`
	Prec *Precedence `json:"prec,omitempty"`
}

// Describe builds a Description snapshot of g. It does not mutate g and
// may be called any number of times.
func Describe(g *CompiledGrammar) *Description {
	d := &Description{
		Nonterms: make([]NontermDescription, g.NontermsLen()),
		Terms:    make([]TermDescription, g.TermsLen()),
		Prods:    make([]ProdDescription, g.ProdsLen()),
		Start:    g.StartProd(),
	}

	for i := 0; i < g.NontermsLen(); i++ {
		nt := NTIdx(i)
		d.Nonterms[i] = NontermDescription{
			Num:   nt,
			Name:  g.NontermName(nt),
			Prods: g.NontermToProds(nt),
		}
	}

	for i := 0; i < g.TermsLen(); i++ {
		t := TIdx(i)
		d.Terms[i] = TermDescription{
			Num:  t,
			Name: g.TermName(t),
			Prec: g.TermPrecedence(t),
		}
	}

	for i := 0; i < g.ProdsLen(); i++ {
		p := PIdx(i)
		body := g.Prod(p)
		rhs := make([]string, len(body))
		for j, sym := range body {
			if sym.IsTerm() {
				name := g.TermName(sym.Term())
				if name == nil {
					rhs[j] = "<eof>"
				} else {
					rhs[j] = *name
				}
			} else {
				rhs[j] = g.NontermName(sym.Nonterm())
			}
		}
		d.Prods[i] = ProdDescription{
			Num:  p,
			LHS:  g.ProdToNonterm(p),
			RHS:  rhs,
			Prec: g.ProdPrecedence(p),
		}
	}

	return d
}
