package grammar

import (
	"fmt"
	"sync"
)

const infiniteCost = ^uint32(0)

// SentenceAnalyzer computes minimum- and maximum-cost sentences derivable
// from each nonterminal of a CompiledGrammar, under a caller-supplied
// per-terminal cost function. It is built once via
// CompiledGrammar.SentenceGenerator and is safe for concurrent read-only
// use: its min/max cost tables are computed at most once, behind a
// sync.Once, the first time either is needed.
type SentenceAnalyzer struct {
	g         *CompiledGrammar
	termCosts []uint8

	minOnce  sync.Once
	minCosts []uint32

	maxOnce  sync.Once
	maxCosts []uint32
}

// SentenceGenerator builds a SentenceAnalyzer over g. cost must return a
// value > 0 for every terminal a caller expects to generate. cost is called
// once for every terminal, the synthesised EOF terminal included, but the
// value it returns for EOF is never used.
func (g *CompiledGrammar) SentenceGenerator(cost func(TIdx) uint8) *SentenceAnalyzer {
	termCosts := make([]uint8, g.TermsLen())
	for i := range termCosts {
		termCosts[i] = cost(TIdx(i))
	}
	return &SentenceAnalyzer{g: g, termCosts: termCosts}
}

func (a *SentenceAnalyzer) minCostsVec() []uint32 {
	a.minOnce.Do(func() {
		a.minCosts = computeMinCosts(a.g, a.termCosts)
	})
	return a.minCosts
}

func (a *SentenceAnalyzer) maxCostsVec() []uint32 {
	a.maxOnce.Do(func() {
		a.maxCosts = computeMaxCosts(a.g, a.termCosts)
	})
	return a.maxCosts
}

// MinSentenceCost returns the cost of a minimal sentence for nonterm.
func (a *SentenceAnalyzer) MinSentenceCost(nonterm NTIdx) uint32 {
	return a.minCostsVec()[nonterm]
}

// MaxSentenceCost returns the cost of a maximal sentence for nonterm, or
// nil if nonterm can generate sentences of unbounded cost.
func (a *SentenceAnalyzer) MaxSentenceCost(nonterm NTIdx) *uint32 {
	v := a.maxCostsVec()[nonterm]
	if v == infiniteCost {
		return nil
	}
	return &v
}

// computeMinCosts implements §4.5.1: an iterative fixed point over two
// parallel vectors, cost and done, where cost is monotone non-decreasing
// until done locks it in.
func computeMinCosts(g *CompiledGrammar, termCosts []uint8) []uint32 {
	n := g.NontermsLen()
	costs := make([]uint32, n)
	done := make([]bool, n)

	for {
		allDone := true
		for i := 0; i < n; i++ {
			if done[i] {
				continue
			}
			allDone = false

			var haveComplete, haveIncomplete bool
			var lowComplete, lowIncomplete uint32

			for _, p := range g.rulesProds[i] {
				c, complete := minProdCost(g, termCosts, costs, done, p)
				if complete {
					if !haveComplete || c < lowComplete {
						lowComplete = c
						haveComplete = true
					}
				} else if !haveIncomplete || c < lowIncomplete {
					lowIncomplete = c
					haveIncomplete = true
				}
			}

			switch {
			case haveComplete && (!haveIncomplete || lowComplete <= lowIncomplete):
				costs[i] = lowComplete
				done[i] = true
			case haveIncomplete:
				costs[i] = lowIncomplete
			}
		}
		if allDone {
			return costs
		}
	}
}

func minProdCost(g *CompiledGrammar, termCosts []uint8, costs []uint32, done []bool, p PIdx) (cost uint32, complete bool) {
	complete = true
	for _, sym := range g.prods[p] {
		var sc uint32
		if sym.IsTerm() {
			sc = uint32(termCosts[sym.Term()])
		} else {
			nt := sym.Nonterm()
			if !done[nt] {
				complete = false
			}
			sc = costs[nt]
		}
		cost = checkedAddU32(cost, sc)
	}
	return cost, complete
}

// computeMaxCosts implements §4.5.2: nonterminals that recurse through
// themselves are infinite from the outset; everything else is a fixed
// point dual of computeMinCosts, with an early-out when a production
// references an already-infinite nonterminal.
func computeMaxCosts(g *CompiledGrammar, termCosts []uint8) []uint32 {
	n := g.NontermsLen()
	costs := make([]uint32, n)
	done := make([]bool, n)

	for i := 0; i < n; i++ {
		if g.HasPath(NTIdx(i), NTIdx(i)) {
			costs[i] = infiniteCost
			done[i] = true
		}
	}

	for {
		allDone := true
		for i := 0; i < n; i++ {
			if done[i] {
				continue
			}
			allDone = false

			var haveComplete, haveIncomplete bool
			var highComplete, highIncomplete uint32

			for _, p := range g.rulesProds[i] {
				c, complete, infinite := maxProdCost(g, termCosts, costs, done, p)
				if infinite {
					haveComplete = true
					highComplete = infiniteCost
					break
				}
				if complete {
					if !haveComplete || c > highComplete {
						highComplete = c
						haveComplete = true
					}
				} else if !haveIncomplete || c > highIncomplete {
					highIncomplete = c
					haveIncomplete = true
				}
			}

			switch {
			case haveComplete && (!haveIncomplete || highComplete > highIncomplete):
				costs[i] = highComplete
				done[i] = true
			case haveIncomplete:
				costs[i] = highIncomplete
			}
		}
		if allDone {
			return costs
		}
	}
}

func maxProdCost(g *CompiledGrammar, termCosts []uint8, costs []uint32, done []bool, p PIdx) (cost uint32, complete bool, infinite bool) {
	complete = true
	for _, sym := range g.prods[p] {
		var sc uint32
		if sym.IsTerm() {
			sc = uint32(termCosts[sym.Term()])
		} else {
			nt := sym.Nonterm()
			if costs[nt] == infiniteCost {
				return 0, true, true
			}
			if !done[nt] {
				complete = false
			}
			sc = costs[nt]
		}
		cost = checkedAddU32(cost, sc)
		if cost == infiniteCost {
			panic("grammar: non-terminal cost collided with the sentinel used for infinity")
		}
	}
	return cost, complete, false
}

func checkedAddU32(a, b uint32) uint32 {
	c := a + b
	if c < a {
		panic(fmt.Sprintf("grammar: overflow while summing terminal costs (%d + %d)", a, b))
	}
	return c
}

// MinSentence returns one minimal sentence for nonterm, built by a
// depth-first expansion of its cheapest productions; where several
// productions tie, the first in production order is expanded.
func (a *SentenceAnalyzer) MinSentence(nonterm NTIdx) []TIdx {
	type frame struct {
		p   PIdx
		pos int
	}

	out := []TIdx{}
	stack := []frame{{a.cheapestProd(nonterm), 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		body := a.g.prods[top.p]
		for i := top.pos; i < len(body); i++ {
			sym := body[i]
			if sym.IsNonterm() {
				stack = append(stack, frame{top.p, i + 1})
				stack = append(stack, frame{a.cheapestProd(sym.Nonterm()), 0})
				break
			}
			out = append(out, sym.Term())
		}
	}
	return out
}

func (a *SentenceAnalyzer) cheapestProd(nonterm NTIdx) PIdx {
	var best PIdx
	var bestCost uint32
	have := false
	for _, p := range a.g.rulesProds[nonterm] {
		c := a.prodMinSum(p)
		if !have || c < bestCost {
			best, bestCost, have = p, c, true
		}
	}
	return best
}

func (a *SentenceAnalyzer) cheapestProds(nonterm NTIdx) []PIdx {
	var out []PIdx
	var bestCost uint32
	have := false
	for _, p := range a.g.rulesProds[nonterm] {
		c := a.prodMinSum(p)
		switch {
		case !have || c < bestCost:
			out = []PIdx{p}
			bestCost, have = c, true
		case c == bestCost:
			out = append(out, p)
		}
	}
	return out
}

func (a *SentenceAnalyzer) prodMinSum(p PIdx) uint32 {
	var c uint32
	for _, sym := range a.g.prods[p] {
		if sym.IsTerm() {
			c += uint32(a.termCosts[sym.Term()])
		} else {
			c += a.MinSentenceCost(sym.Nonterm())
		}
	}
	return c
}

// MinSentences returns every minimal sentence for nonterm, in unspecified
// but finite order, built as the Cartesian product of the minimal
// sentences of the cheapest production(s)' symbols.
func (a *SentenceAnalyzer) MinSentences(nonterm NTIdx) [][]TIdx {
	var out [][]TIdx
	for _, p := range a.cheapestProds(nonterm) {
		out = append(out, a.prodMinSentences(p)...)
	}
	return out
}

func (a *SentenceAnalyzer) prodMinSentences(p PIdx) [][]TIdx {
	body := a.g.prods[p]
	if len(body) == 0 {
		return [][]TIdx{{}}
	}

	perSymbol := make([][][]TIdx, len(body))
	for i, sym := range body {
		if sym.IsTerm() {
			perSymbol[i] = [][]TIdx{{sym.Term()}}
		} else {
			perSymbol[i] = a.MinSentences(sym.Nonterm())
		}
	}

	var out [][]TIdx
	counters := make([]int, len(body))
	for {
		var sentence []TIdx
		for i, c := range counters {
			sentence = append(sentence, perSymbol[i][c]...)
		}
		out = append(out, sentence)

		j := len(counters) - 1
		for {
			counters[j]++
			if counters[j] < len(perSymbol[j]) {
				break
			}
			counters[j] = 0
			if j == 0 {
				return out
			}
			j--
		}
	}
}
