package grammar

import "github.com/nihei9/cfgc/ast"

const (
	startNontermSentinel         = "^"
	implicitNontermSentinel      = "~"
	implicitStartNontermSentinel = "^~"
)

// Compile lowers a validated GrammarAST into a CompiledGrammar. g must
// have already passed CompleteAndValidate; Compile does not re-validate
// it, and feeding it an unvalidated or invalid AST is a programmer error
// whose effects are unspecified (it may panic via an out-of-range index,
// or produce a grammar that violates CompiledGrammar's invariants).
func Compile(g *ast.GrammarAST, mode Mode) *CompiledGrammar {
	implicitActive := mode == Eco && g.ImplicitTokens != nil

	startName := freshName(startNontermSentinel, g)
	var implicitName, implicitStartName string
	if implicitActive {
		implicitName = freshName(implicitNontermSentinel, g)
		implicitStartName = freshName(implicitStartNontermSentinel, g)
	}

	nontermNames := make([]string, 0, len(g.RuleNames())+3)
	nontermNames = append(nontermNames, startName)
	if implicitActive {
		nontermNames = append(nontermNames, implicitName, implicitStartName)
	}
	nontermNames = append(nontermNames, g.RuleNames()...)

	nonterm2Idx := make(map[string]NTIdx, len(nontermNames))
	for i, n := range nontermNames {
		nonterm2Idx[n] = NTIdx(i)
	}

	termNames, termPrecs, term2Idx, eofIdx := compileTerms(g)

	nUserProds := len(g.Prods)
	prods := make([][]Symbol, nUserProds)
	prodPrecs := make([]*Precedence, nUserProds)
	prodsRules := make([]NTIdx, nUserProds)
	rulesProds := make([][]PIdx, len(nontermNames))

	appendSynthProd := func(nt NTIdx, syms []Symbol) {
		idx := PIdx(len(prods))
		prods = append(prods, syms)
		prodPrecs = append(prodPrecs, nil)
		prodsRules = append(prodsRules, nt)
		rulesProds[nt] = append(rulesProds[nt], idx)
	}

	for i, name := range nontermNames {
		nt := NTIdx(i)
		switch {
		case name == startName:
			var target string
			if implicitActive {
				target = implicitStartName
			} else {
				target = *g.Start
			}
			appendSynthProd(nt, []Symbol{NontermSymbol(nonterm2Idx[target])})

		case implicitActive && name == implicitName:
			for t := range g.ImplicitTokens {
				appendSynthProd(nt, []Symbol{TermSymbol(term2Idx[t]), NontermSymbol(nt)})
			}
			appendSynthProd(nt, []Symbol{})

		case implicitActive && name == implicitStartName:
			appendSynthProd(nt, []Symbol{
				NontermSymbol(nonterm2Idx[implicitName]),
				NontermSymbol(nonterm2Idx[*g.Start]),
			})

		default:
			astProdIdxs, _ := g.GetRule(name)
			for _, pidx := range astProdIdxs {
				astProd := g.Prods[pidx]

				var body []Symbol
				for _, sym := range astProd.Symbols {
					switch sym.Kind {
					case ast.Nonterm:
						body = append(body, NontermSymbol(nonterm2Idx[sym.Name]))
					case ast.Term:
						body = append(body, TermSymbol(term2Idx[sym.Name]))
						if implicitActive {
							body = append(body, NontermSymbol(nonterm2Idx[implicitName]))
						}
					}
				}

				prods[pidx] = body
				prodPrecs[pidx] = inferProdPrecedence(astProd, term2Idx, termPrecs)
				prodsRules[pidx] = nt
				rulesProds[nt] = append(rulesProds[nt], PIdx(pidx))
			}
		}
	}

	return &CompiledGrammar{
		nontermNames:    nontermNames,
		termNames:       termNames,
		termPrecs:       termPrecs,
		rulesProds:      rulesProds,
		prods:           prods,
		prodsRules:      prodsRules,
		prodPrecs:       prodPrecs,
		startProd:       rulesProds[0][0],
		eofTermIdx:      eofIdx,
		implicitNonterm: implicitNontermIdx(implicitActive, nonterm2Idx, implicitName),
		nonterm2Idx:     nonterm2Idx,
		term2Idx:        term2Idx,
	}
}

func implicitNontermIdx(active bool, nonterm2Idx map[string]NTIdx, name string) *NTIdx {
	if !active {
		return nil
	}
	idx := nonterm2Idx[name]
	return &idx
}

// freshName grows sentinel by repeated self-append until it no longer
// names a rule in g. This terminates because each candidate strictly
// grows in length and g has finitely many rule names.
func freshName(sentinel string, g *ast.GrammarAST) string {
	name := sentinel
	for g.HasRule(name) {
		name += sentinel
	}
	return name
}

func compileTerms(g *ast.GrammarAST) ([]*string, []*Precedence, map[string]TIdx, TIdx) {
	termNames := make([]*string, 0, len(g.Tokens)+1)
	termPrecs := make([]*Precedence, 0, len(g.Tokens)+1)
	term2Idx := make(map[string]TIdx, len(g.Tokens))

	for name := range g.Tokens {
		idx := TIdx(len(termNames))
		n := name
		termNames = append(termNames, &n)
		if p, ok := g.Precs[name]; ok {
			pc := p
			termPrecs = append(termPrecs, &pc)
		} else {
			termPrecs = append(termPrecs, nil)
		}
		term2Idx[name] = idx
	}

	eofIdx := TIdx(len(termNames))
	termNames = append(termNames, nil)
	termPrecs = append(termPrecs, nil)

	return termNames, termPrecs, term2Idx, eofIdx
}

// inferProdPrecedence implements §4.3.7: an explicit %prec override wins;
// otherwise scan the body right-to-left and stop at the first terminal,
// adopting its precedence (which may itself be absent).
func inferProdPrecedence(prod ast.Production, term2Idx map[string]TIdx, termPrecs []*Precedence) *Precedence {
	if prod.Precedence != "" {
		return termPrecs[term2Idx[prod.Precedence]]
	}
	for i := len(prod.Symbols) - 1; i >= 0; i-- {
		sym := prod.Symbols[i]
		if sym.Kind == ast.Term {
			return termPrecs[term2Idx[sym.Name]]
		}
	}
	return nil
}
