package gramfile

// fileGrammar is the root of a grammar source file: a declarative,
// TOML-backed stand-in for the out-of-scope Yacc surface syntax. A grammar
// author writes one of these; build lowers it into an *ast.GrammarAST.
type fileGrammar struct {
	Format         string              `toml:"format"`
	Start          string              `toml:"start"`
	Tokens         []fileToken         `toml:"token"`
	ImplicitTokens *fileImplicitTokens `toml:"implicit_tokens"`
	Rules          []fileRule          `toml:"rule"`
}

type fileToken struct {
	Name string         `toml:"name"`
	Prec *filePrecGroup `toml:"prec"`
}

// filePrecGroup is a (level, associativity) pair attached to a token
// declaration.
type filePrecGroup struct {
	Level uint64 `toml:"level"`
	Assoc string `toml:"assoc"`
}

type fileImplicitTokens struct {
	Names []string `toml:"names"`
}

type fileRule struct {
	Name string    `toml:"name"`
	Alts []fileAlt `toml:"alt"`
}

// fileAlt is one production body. Symbols names a rule or a declared
// token interchangeably; build disambiguates each by looking it up in the
// token set built so far, the same way a Yacc grammar distinguishes a
// bareword terminal from a rule reference by its declaration, not its
// spelling.
type fileAlt struct {
	Symbols []string `toml:"symbols"`
	Prec    string   `toml:"prec"`
}
