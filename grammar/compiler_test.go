package grammar

import (
	"reflect"
	"testing"

	"github.com/nihei9/cfgc/ast"
)

// buildAST constructs a validated *ast.GrammarAST directly through the
// builder API, standing in for the out-of-scope surface parser that a
// real `%start ... %token ... %% ...` grammar text would normally go
// through.
func buildAST(t *testing.T, start string, tokens []string, populate func(g *ast.GrammarAST)) *ast.GrammarAST {
	t.Helper()
	g := ast.NewGrammarAST()
	for _, tok := range tokens {
		g.Tokens[tok] = struct{}{}
	}
	s := start
	g.Start = &s
	populate(g)
	if err := g.CompleteAndValidate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return g
}

func mustNT(t *testing.T, g *CompiledGrammar, name string) NTIdx {
	t.Helper()
	i, ok := g.NontermIdx(name)
	if !ok {
		t.Fatalf("no such non-terminal: %s", name)
	}
	return i
}

func mustT(t *testing.T, g *CompiledGrammar, name string) TIdx {
	t.Helper()
	i, ok := g.TermIdx(name)
	if !ok {
		t.Fatalf("no such terminal: %s", name)
	}
	return i
}

func TestCompileMinimal(t *testing.T) {
	g := buildAST(t, "R", []string{"T"}, func(g *ast.GrammarAST) {
		g.AddProd("R", []ast.Symbol{ast.TermSym("T")}, "")
	})
	cg := Compile(g, Original)

	if cg.StartProd() != PIdx(1) {
		t.Fatalf("StartProd = %d, want 1", cg.StartProd())
	}
	if cg.ImplicitNonterm() != nil {
		t.Fatalf("ImplicitNonterm = %v, want nil", cg.ImplicitNonterm())
	}

	r := mustNT(t, cg, "R")
	term := mustT(t, cg, "T")
	start := mustNT(t, cg, "^")

	wantRulesProds := [][]PIdx{{1}, {0}}
	gotRulesProds := [][]PIdx{cg.NontermToProds(start), cg.NontermToProds(r)}
	if !reflect.DeepEqual(gotRulesProds, wantRulesProds) {
		t.Fatalf("rulesProds = %v, want %v", gotRulesProds, wantRulesProds)
	}

	if !reflect.DeepEqual(cg.Prod(cg.NontermToProds(start)[0]), []Symbol{NontermSymbol(r)}) {
		t.Fatalf("start production mismatch")
	}
	if !reflect.DeepEqual(cg.Prod(cg.NontermToProds(r)[0]), []Symbol{TermSymbol(term)}) {
		t.Fatalf("R production mismatch")
	}
	if !reflect.DeepEqual([]NTIdx{cg.ProdToNonterm(0), cg.ProdToNonterm(1)}, []NTIdx{r, start}) {
		t.Fatalf("prodsRules mismatch")
	}

	if !reflect.DeepEqual(cg.TermsMap(), map[string]TIdx{"T": term}) {
		t.Fatalf("TermsMap = %v", cg.TermsMap())
	}
	if !reflect.DeepEqual(cg.IterNontermIdxs(), []NTIdx{start, r}) {
		t.Fatalf("IterNontermIdxs = %v", cg.IterNontermIdxs())
	}
}

func TestCompileRuleRef(t *testing.T) {
	g := buildAST(t, "R", []string{"T"}, func(g *ast.GrammarAST) {
		g.AddProd("R", []ast.Symbol{ast.NontermSym("S")}, "")
		g.AddProd("S", []ast.Symbol{ast.TermSym("T")}, "")
	})
	cg := Compile(g, Original)

	r := mustNT(t, cg, "R")
	s := mustNT(t, cg, "S")
	start := mustNT(t, cg, "^")
	term := mustT(t, cg, "T")

	if cg.TermName(cg.EOFTermIdx()) != nil {
		t.Fatalf("EOF terminal should be unnamed")
	}

	wantRulesProds := [][]PIdx{{2}, {0}, {1}}
	gotRulesProds := [][]PIdx{cg.NontermToProds(start), cg.NontermToProds(r), cg.NontermToProds(s)}
	if !reflect.DeepEqual(gotRulesProds, wantRulesProds) {
		t.Fatalf("rulesProds = %v, want %v", gotRulesProds, wantRulesProds)
	}

	rProd := cg.Prod(cg.NontermToProds(r)[0])
	if len(rProd) != 1 || rProd[0] != NontermSymbol(s) {
		t.Fatalf("R production = %v", rProd)
	}
	sProd := cg.Prod(cg.NontermToProds(s)[0])
	if len(sProd) != 1 || sProd[0] != TermSymbol(term) {
		t.Fatalf("S production = %v", sProd)
	}
}

func TestCompileLongProd(t *testing.T) {
	g := buildAST(t, "R", []string{"T1", "T2"}, func(g *ast.GrammarAST) {
		g.AddProd("R", []ast.Symbol{ast.NontermSym("S"), ast.TermSym("T1"), ast.NontermSym("S")}, "")
		g.AddProd("S", []ast.Symbol{ast.TermSym("T2")}, "")
	})
	cg := Compile(g, Original)

	r := mustNT(t, cg, "R")
	s := mustNT(t, cg, "S")
	start := mustNT(t, cg, "^")
	t1 := mustT(t, cg, "T1")
	t2 := mustT(t, cg, "T2")

	wantRulesProds := [][]PIdx{{2}, {0}, {1}}
	gotRulesProds := [][]PIdx{cg.NontermToProds(start), cg.NontermToProds(r), cg.NontermToProds(s)}
	if !reflect.DeepEqual(gotRulesProds, wantRulesProds) {
		t.Fatalf("rulesProds = %v, want %v", gotRulesProds, wantRulesProds)
	}
	wantProdsRules := []NTIdx{r, s, start}
	gotProdsRules := []NTIdx{cg.ProdToNonterm(0), cg.ProdToNonterm(1), cg.ProdToNonterm(2)}
	if !reflect.DeepEqual(gotProdsRules, wantProdsRules) {
		t.Fatalf("prodsRules = %v, want %v", gotProdsRules, wantProdsRules)
	}

	rProd := cg.Prod(cg.NontermToProds(r)[0])
	want := []Symbol{NontermSymbol(s), TermSymbol(t1), NontermSymbol(s)}
	if !reflect.DeepEqual(rProd, want) {
		t.Fatalf("R production = %v, want %v", rProd, want)
	}
	sProd := cg.Prod(cg.NontermToProds(s)[0])
	if !reflect.DeepEqual(sProd, []Symbol{TermSymbol(t2)}) {
		t.Fatalf("S production = %v", sProd)
	}
}

func TestCompileProdsRulesOrder(t *testing.T) {
	g := buildAST(t, "A", []string{"x", "y", "z"}, func(g *ast.GrammarAST) {
		g.AddProd("A", []ast.Symbol{ast.NontermSym("B")}, "")
		g.AddProd("A", []ast.Symbol{ast.NontermSym("C")}, "")
		g.AddProd("B", []ast.Symbol{ast.TermSym("x")}, "")
		g.AddProd("C", []ast.Symbol{ast.TermSym("y")}, "")
		g.AddProd("C", []ast.Symbol{ast.TermSym("z")}, "")
	})
	cg := Compile(g, Original)

	a := mustNT(t, cg, "A")
	b := mustNT(t, cg, "B")
	c := mustNT(t, cg, "C")
	start := mustNT(t, cg, "^")

	want := []NTIdx{a, a, b, c, c, start}
	got := make([]NTIdx, cg.ProdsLen())
	for i := range got {
		got[i] = cg.ProdToNonterm(PIdx(i))
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("prodsRules = %v, want %v", got, want)
	}
}

func precAST(t *testing.T, start string, precs map[string]ast.Precedence, populate func(g *ast.GrammarAST)) *ast.GrammarAST {
	t.Helper()
	g := ast.NewGrammarAST()
	for tok, p := range precs {
		g.Tokens[tok] = struct{}{}
		g.Precs[tok] = p
	}
	s := start
	g.Start = &s
	populate(g)
	if err := g.CompleteAndValidate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return g
}

func TestCompileLeftRightNonassocPrecs(t *testing.T) {
	precs := map[string]ast.Precedence{
		"=": {Level: 0, Kind: ast.Right},
		"+": {Level: 1, Kind: ast.Left},
		"-": {Level: 1, Kind: ast.Left},
		"/": {Level: 2, Kind: ast.Left},
		"*": {Level: 3, Kind: ast.Left},
		"~": {Level: 4, Kind: ast.Nonassoc},
	}
	g := precAST(t, "Expr", precs, func(g *ast.GrammarAST) {
		g.Tokens["id"] = struct{}{}
		for _, op := range []string{"=", "+", "-", "/", "*", "~"} {
			g.AddProd("Expr", []ast.Symbol{ast.NontermSym("Expr"), ast.TermSym(op), ast.NontermSym("Expr")}, "")
		}
		g.AddProd("Expr", []ast.Symbol{ast.TermSym("id")}, "")
	})
	cg := Compile(g, Original)

	want := []*Precedence{
		{Level: 0, Kind: ast.Right},
		{Level: 1, Kind: ast.Left},
		{Level: 1, Kind: ast.Left},
		{Level: 2, Kind: ast.Left},
		{Level: 3, Kind: ast.Left},
		{Level: 4, Kind: ast.Nonassoc},
		nil,
		nil, // synthesised start production
	}
	if cg.ProdsLen() != len(want) {
		t.Fatalf("ProdsLen = %d, want %d", cg.ProdsLen(), len(want))
	}
	for i, w := range want {
		got := cg.ProdPrecedence(PIdx(i))
		if w == nil {
			if got != nil {
				t.Fatalf("prod %d precedence = %v, want nil", i, got)
			}
			continue
		}
		if got == nil || *got != *w {
			t.Fatalf("prod %d precedence = %v, want %v", i, got, w)
		}
	}
}

func TestCompilePrecOverride(t *testing.T) {
	precs := map[string]ast.Precedence{
		"+": {Level: 0, Kind: ast.Left},
		"-": {Level: 0, Kind: ast.Left},
		"*": {Level: 1, Kind: ast.Left},
		"/": {Level: 1, Kind: ast.Left},
	}
	g := precAST(t, "expr", precs, func(g *ast.GrammarAST) {
		g.Tokens["id"] = struct{}{}
		g.AddProd("expr", []ast.Symbol{ast.NontermSym("expr"), ast.TermSym("+"), ast.NontermSym("expr")}, "")
		g.AddProd("expr", []ast.Symbol{ast.NontermSym("expr"), ast.TermSym("-"), ast.NontermSym("expr")}, "")
		g.AddProd("expr", []ast.Symbol{ast.NontermSym("expr"), ast.TermSym("*"), ast.NontermSym("expr")}, "")
		g.AddProd("expr", []ast.Symbol{ast.NontermSym("expr"), ast.TermSym("/"), ast.NontermSym("expr")}, "")
		g.AddProd("expr", []ast.Symbol{ast.TermSym("-"), ast.NontermSym("expr")}, "*")
		g.AddProd("expr", []ast.Symbol{ast.TermSym("id")}, "")
	})
	cg := Compile(g, Original)

	want := []*Precedence{
		{Level: 0, Kind: ast.Left},
		{Level: 0, Kind: ast.Left},
		{Level: 1, Kind: ast.Left},
		{Level: 1, Kind: ast.Left},
		{Level: 1, Kind: ast.Left},
		nil,
		nil,
	}
	if cg.ProdsLen() != len(want) {
		t.Fatalf("ProdsLen = %d, want %d", cg.ProdsLen(), len(want))
	}
	for i, w := range want {
		got := cg.ProdPrecedence(PIdx(i))
		if w == nil {
			if got != nil {
				t.Fatalf("prod %d precedence = %v, want nil", i, got)
			}
			continue
		}
		if got == nil || *got != *w {
			t.Fatalf("prod %d precedence = %v, want %v", i, got, w)
		}
	}
}

func TestCompileImplicitTokensRewrite(t *testing.T) {
	g := buildAST(t, "S", []string{"a", "c", "ws1", "ws2"}, func(g *ast.GrammarAST) {
		g.ImplicitTokens = map[string]struct{}{"ws1": {}, "ws2": {}}
		g.AddProd("S", []ast.Symbol{ast.TermSym("a")}, "")
		g.AddProd("S", []ast.Symbol{ast.NontermSym("T")}, "")
		g.AddProd("T", []ast.Symbol{ast.TermSym("c")}, "")
		g.AddProd("T", []ast.Symbol{}, "")
	})
	cg := Compile(g, Eco)

	if cg.ProdsLen() != 9 {
		t.Fatalf("ProdsLen = %d, want 9", cg.ProdsLen())
	}

	implicit := cg.ImplicitNonterm()
	if implicit == nil {
		t.Fatalf("ImplicitNonterm = nil, want set")
	}

	itfs := mustNT(t, cg, "^~")
	itfsProds := cg.NontermToProds(itfs)
	if len(itfsProds) != 1 {
		t.Fatalf("^~ has %d productions, want 1", len(itfsProds))
	}
	itfsBody := cg.Prod(itfsProds[0])
	s := mustNT(t, cg, "S")
	want := []Symbol{NontermSymbol(*implicit), NontermSymbol(s)}
	if !reflect.DeepEqual(itfsBody, want) {
		t.Fatalf("^~ production = %v, want %v", itfsBody, want)
	}

	sProds := cg.NontermToProds(s)
	if len(sProds) != 2 {
		t.Fatalf("S has %d productions, want 2", len(sProds))
	}
	a := mustT(t, cg, "a")
	sProd1 := cg.Prod(sProds[0])
	wantS1 := []Symbol{TermSymbol(a), NontermSymbol(*implicit)}
	if !reflect.DeepEqual(sProd1, wantS1) {
		t.Fatalf("S prod1 = %v, want %v", sProd1, wantS1)
	}
	tNT := mustNT(t, cg, "T")
	sProd2 := cg.Prod(sProds[1])
	if !reflect.DeepEqual(sProd2, []Symbol{NontermSymbol(tNT)}) {
		t.Fatalf("S prod2 = %v", sProd2)
	}

	tProds := cg.NontermToProds(tNT)
	c := mustT(t, cg, "c")
	tProd1 := cg.Prod(tProds[0])
	wantT1 := []Symbol{TermSymbol(c), NontermSymbol(*implicit)}
	if !reflect.DeepEqual(tProd1, wantT1) {
		t.Fatalf("T prod1 = %v, want %v", tProd1, wantT1)
	}
	tProd2 := cg.Prod(tProds[1])
	if len(tProd2) != 0 {
		t.Fatalf("T prod2 = %v, want empty", tProd2)
	}

	iProds := cg.NontermToProds(*implicit)
	if len(iProds) != 3 {
		t.Fatalf("~ has %d productions, want 3", len(iProds))
	}
	ws1 := mustT(t, cg, "ws1")
	ws2 := mustT(t, cg, "ws2")
	cnd1 := []Symbol{TermSymbol(ws1), NontermSymbol(*implicit)}
	cnd2 := []Symbol{TermSymbol(ws2), NontermSymbol(*implicit)}
	iProd1 := cg.Prod(iProds[0])
	iProd2 := cg.Prod(iProds[1])
	matches := (reflect.DeepEqual(iProd1, cnd1) && reflect.DeepEqual(iProd2, cnd2)) ||
		(reflect.DeepEqual(iProd1, cnd2) && reflect.DeepEqual(iProd2, cnd1))
	if !matches {
		t.Fatalf("~ productions 0,1 = %v, %v; want some order of %v, %v", iProd1, iProd2, cnd1, cnd2)
	}
	iProd3 := cg.Prod(iProds[2])
	if len(iProd3) != 0 {
		t.Fatalf("~ prod3 = %v, want empty", iProd3)
	}
}
