package lexgen

// DefaultRules is the sample specification written by GenerateSample: a
// minimal language with keywords, identifiers, numbers and skipped
// whitespace.
var DefaultRules = []RuleConfig{
	{Pattern: `"if"`, Action: `lx.emit(TokenIf, text)`},
	{Pattern: `"else"`, Action: `lx.emit(TokenElse, text)`},
	{Pattern: `/[a-zA-Z_][a-zA-Z_0-9]*/`, Action: `lx.emit(TokenIdent, text)`},
	{Pattern: `/[0-9]+/`, Action: `lx.emit(TokenNumber, text)`},
	{Pattern: `/[ \t\r\n]+/`, Action: `// skip whitespace`},
}
