package lexgen

import (
	"fmt"
	"strings"
)

// scannerTemplate is the generated file skeleton for the direct 256-column
// table. The emitted scanner implements longest match with earliest rule
// tie-break: it records the last accepting state passed, rewinds to it on a
// dead transition and restarts; end of input behaves like a dead transition.
const scannerTemplate = `// Code generated by lexgen; DO NOT EDIT.

package {{package}}

{{preamble}}

const (
	scanStartState = {{startState}}
	scanStateCount = {{stateCount}}
)

var scanTransitions = [...]int64{ {{transitions}} }

var scanAccept = [...]bool{ {{accept}} }

var scanRuleOf = [...]int64{ {{ruleOf}} }

func scanNext(state int64, ch byte) int64 {
	return scanTransitions[state*256+int64(ch)]
}
`

// classScannerTemplate is the equivalence-class variant: the classifier
// folds each input byte into its class before the narrow table lookup.
const classScannerTemplate = `// Code generated by lexgen; DO NOT EDIT.

package {{package}}

{{preamble}}

const (
	scanStartState = {{startState}}
	scanStateCount = {{stateCount}}
	scanClassCount = {{classCount}}
)

var scanClassifier = [256]uint8{ {{classifier}} }

var scanTransitions = [...]int64{ {{transitions}} }

var scanAccept = [...]bool{ {{accept}} }

var scanRuleOf = [...]int64{ {{ruleOf}} }

func scanNext(state int64, ch byte) int64 {
	return scanTransitions[state*scanClassCount+int64(scanClassifier[ch])]
}
`

// scannerLoopTemplate holds the driver shared by both table layouts.
const scannerLoopTemplate = `
// Lexer drives the generated tables over an input buffer.
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Pos returns the current line and column, both 1-based.
func (lx *Lexer) Pos() (line, col int) {
	return lx.line, lx.col
}

func (lx *Lexer) advance(text []byte) {
	for _, ch := range text {
		if ch == '\n' {
			lx.line++
			lx.col = 1
			continue
		}
		lx.col++
	}
}

// Lex scans the whole input, running the matching rule action for every
// token.
func (lx *Lexer) Lex() error {
	for lx.pos < len(lx.input) {
		state := int64(scanStartState)
		matchRule := int64(-1)
		matchEnd := lx.pos
		if scanAccept[scanStartState] {
			matchRule = scanRuleOf[scanStartState]
		}
		for i := lx.pos; i < len(lx.input); i++ {
			state = scanNext(state, lx.input[i])
			if state == -1 {
				break
			}
			if scanAccept[state] {
				matchRule = scanRuleOf[state]
				matchEnd = i + 1
			}
		}
		if matchRule == -1 || matchEnd == lx.pos {
			{{errorHandler}}
		}
		text := lx.input[lx.pos:matchEnd]
		_ = text
		lx.pos = matchEnd
		switch matchRule {
{{actionCases}}
		default:
			{{internalErrorHandler}}
		}
		lx.advance(text)
	}
	return nil
}

{{trailer}}
`

const defaultErrorHandler = `return fmt.Errorf("lexical error at line %d column %d", lx.line, lx.col)`

const defaultInternalErrorHandler = `return fmt.Errorf("corrupt scanner tables: no action for rule %d", matchRule)`

// Source renders the generated scanner for the compiled automaton.
func (g *Generator) Source() (string, error) {
	if g.Options.EquivalenceClasses && g.classes == nil {
		g.classes = g.dfa.Compress()
	}

	errorHandler := strings.TrimSpace(g.Options.ErrorHandler)
	if errorHandler == "" {
		errorHandler = defaultErrorHandler
	}
	internalErrorHandler := strings.TrimSpace(g.Options.InternalErrorHandler)
	if internalErrorHandler == "" {
		internalErrorHandler = defaultInternalErrorHandler
	}
	preamble := strings.TrimSpace(g.Options.Preamble)
	if preamble == "" {
		// the default handlers need fmt
		preamble = `import "fmt"`
	}

	var cases strings.Builder
	for rule, entry := range g.Options.Rules {
		fmt.Fprintf(&cases, "\t\tcase %d:\n", rule)
		action := strings.TrimSpace(entry.Action)
		if action == "" {
			action = "// skip"
		}
		cases.WriteString(indentBlock(action, "\t\t\t"))
		cases.WriteByte('\n')
	}

	values := map[string]interface{}{
		"package":              g.Options.PackageName,
		"preamble":             preamble,
		"trailer":              strings.TrimSpace(g.Options.Trailer),
		"startState":           g.dfa.StartState,
		"stateCount":           g.dfa.NumStates(),
		"accept":               joinBool(g.dfa.Accept),
		"ruleOf":               joinInt64(g.dfa.RuleOf),
		"errorHandler":         errorHandler,
		"internalErrorHandler": internalErrorHandler,
		"actionCases":          strings.TrimRight(cases.String(), "\n"),
	}

	var source string
	if g.classes != nil {
		values["transitions"] = joinInt64(g.classes.Transitions)
		values["classifier"] = joinBytes(g.classes.Classifier[:])
		values["classCount"] = g.classes.ClassCount
		source = Replace(classScannerTemplate, values)
	} else {
		values["transitions"] = joinInt64(g.dfa.Transitions)
		source = Replace(scannerTemplate, values)
	}
	return source + Replace(scannerLoopTemplate, values), nil
}
