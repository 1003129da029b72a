package grammar

// HasPath reports whether there is a derivation chain from ⇒* α to β
// such that to appears somewhere in it: equivalently, whether to is in
// the transitive closure of "nonterminal x mentions nonterminal y in some
// production body" starting from from. A nonterminal that recurses
// through itself therefore has HasPath(x, x) == true.
func (g *CompiledGrammar) HasPath(from, to NTIdx) bool {
	n := g.NontermsLen()
	seen := make([]bool, n)
	todo := make([]bool, n)
	todo[from] = true

	for {
		progressed := false
		for i := 0; i < n; i++ {
			if !todo[i] {
				continue
			}
			progressed = true
			seen[i] = true
			todo[i] = false

			for _, p := range g.rulesProds[i] {
				for _, sym := range g.prods[p] {
					if !sym.IsNonterm() {
						continue
					}
					y := sym.Nonterm()
					if y == to {
						return true
					}
					if !seen[y] {
						todo[y] = true
					}
				}
			}
		}
		if !progressed {
			return false
		}
	}
}
