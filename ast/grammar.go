package ast

// GrammarAST is the mutable grammar builder an external surface parser
// populates incrementally: productions accumulate in AddProd calls, the
// token set and precedence map are populated directly, and once the whole
// grammar has been read, CompleteAndValidate is called exactly once to
// seal and validate it. Mutating a GrammarAST after a successful
// CompleteAndValidate call is a usage error; nothing in this package
// detects it, since the only caller in scope is the (out-of-scope)
// surface parser, which never does so.
type GrammarAST struct {
	// Start is the name of the declared start rule, or nil if none has
	// been set yet.
	Start *string

	// Tokens is the set of declared terminal names.
	Tokens map[string]struct{}

	// Precs maps a terminal name to its declared precedence.
	Precs map[string]Precedence

	// ImplicitTokens, when non-nil, is the set of terminal names that
	// must be woven between every terminal of every user production by
	// the compiler's Eco-mode rewrite.
	ImplicitTokens map[string]struct{}

	// Prods is the append-only vector of productions; a production's
	// position here is its PIdx.
	Prods []Production

	ruleNames []string
	rules     map[string][]PIdx
}

// NewGrammarAST returns an empty, unsealed grammar builder.
func NewGrammarAST() *GrammarAST {
	return &GrammarAST{
		Tokens: map[string]struct{}{},
		Precs:  map[string]Precedence{},
		rules:  map[string][]PIdx{},
	}
}

// AddProd appends a production to rule, creating the rule (at the current
// insertion-order position) if it does not already exist. Existing rules
// are never reordered.
func (g *GrammarAST) AddProd(rule string, symbols []Symbol, precOverride string) {
	idx := PIdx(len(g.Prods))
	g.Prods = append(g.Prods, Production{Symbols: symbols, Precedence: precOverride})

	if _, ok := g.rules[rule]; !ok {
		g.ruleNames = append(g.ruleNames, rule)
		g.rules[rule] = nil
	}
	g.rules[rule] = append(g.rules[rule], idx)
}

// GetRule returns the production indices of rule, in the order they were
// added, and whether the rule exists at all.
func (g *GrammarAST) GetRule(rule string) ([]PIdx, bool) {
	p, ok := g.rules[rule]
	return p, ok
}

// HasToken reports whether name has been declared as a terminal.
func (g *GrammarAST) HasToken(name string) bool {
	_, ok := g.Tokens[name]
	return ok
}

// HasRule reports whether a rule named name has at least one production.
func (g *GrammarAST) HasRule(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// RuleNames returns every rule name in insertion order. Compilation
// layout depends on this order, so callers must never sort it.
func (g *GrammarAST) RuleNames() []string {
	return g.ruleNames
}
