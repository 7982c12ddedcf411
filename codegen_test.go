package lexgen

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testOptions() *Options {
	return &Options{
		Rules: []Rule{
			{Pattern: `/[0-9]+/`, Action: "lx.tokens = append(lx.tokens, text)"},
			{Pattern: `/ +/`, Action: ""},
		},
	}
}

func TestSourceDirectTable(t *testing.T) {
	g := mustNew(t, testOptions())
	source, err := g.Source()
	require.NoError(t, err)

	require.Contains(t, source, "// Code generated by lexgen; DO NOT EDIT.")
	require.Contains(t, source, "package lexer")
	require.Contains(t, source, "scanStartState")
	require.Contains(t, source, "var scanTransitions = [...]int64{")
	require.Contains(t, source, "state*256+int64(ch)")
	require.Contains(t, source, "case 0:")
	require.Contains(t, source, "lx.tokens = append(lx.tokens, text)")
	require.Contains(t, source, "case 1:")
	// every placeholder must be interpolated
	require.NotContains(t, source, "{{")
	require.NotContains(t, source, "}}")
}

func TestSourceEquivalenceClassTable(t *testing.T) {
	opts := testOptions()
	opts.EquivalenceClasses = true
	g := mustNew(t, opts)
	source, err := g.Source()
	require.NoError(t, err)

	require.Contains(t, source, "var scanClassifier = [256]uint8{")
	require.Contains(t, source, "scanClassCount")
	require.Contains(t, source, "scanClassifier[ch]")
	require.NotContains(t, source, "{{")
}

func TestSourceUserSections(t *testing.T) {
	opts := testOptions()
	opts.PackageName = "mylexer"
	opts.Preamble = "import \"fmt\"\n\nvar count int"
	opts.ErrorHandler = `return fmt.Errorf("boom")`
	opts.InternalErrorHandler = `panic("tables")`
	opts.Trailer = "func helper() {}"

	g := mustNew(t, opts)
	source, err := g.Source()
	require.NoError(t, err)

	require.Contains(t, source, "package mylexer")
	require.Contains(t, source, "var count int")
	require.Contains(t, source, `return fmt.Errorf("boom")`)
	require.Contains(t, source, `panic("tables")`)
	require.Contains(t, source, "func helper() {}")
}

func TestSourceDefaultHandlersImportFmt(t *testing.T) {
	g := mustNew(t, testOptions())
	source, err := g.Source()
	require.NoError(t, err)

	require.Contains(t, source, `import "fmt"`)
	require.Contains(t, source, "lexical error at line")
}

func TestExecuteWithWriter(t *testing.T) {
	g := mustNew(t, testOptions())

	var buff bytes.Buffer
	require.NoError(t, g.ExecuteWithWriter(&buff))
	require.Contains(t, buff.String(), "package lexer")

	require.Error(t, g.ExecuteWithWriter(nil))
}

func TestGeneratorDotDumps(t *testing.T) {
	g := mustNew(t, testOptions())

	var dfaDot, nfaDot bytes.Buffer
	require.NoError(t, g.WriteDFADot(&dfaDot))
	require.NoError(t, g.WriteNFADot(&nfaDot))
	require.Contains(t, dfaDot.String(), "digraph G{")
	require.Contains(t, nfaDot.String(), "eps")
}

func TestIndentBlock(t *testing.T) {
	in := "a()\n\nb()"
	require.Equal(t, "\ta()\n\n\tb()", indentBlock(in, "\t"))
}

func TestJoinHelpers(t *testing.T) {
	require.Equal(t, "-1, 0, 7", joinInt64([]int64{-1, 0, 7}))
	require.Equal(t, "true, false", joinBool([]bool{true, false}))
	require.Equal(t, "0, 255", joinBytes([]byte{0, 255}))
	require.Equal(t, "", joinInt64(nil))
}

func TestSourceTableMatchesDFA(t *testing.T) {
	g := mustNew(t, testOptions())
	source, err := g.Source()
	require.NoError(t, err)

	// the emitted table literal spells the exact transition values
	require.Contains(t, source, joinInt64(g.DFA().Transitions))
	require.Contains(t, source, joinBool(g.DFA().Accept))

	// the start state constant matches the automaton
	require.Contains(t, source, fmt.Sprintf("scanStartState = %d", g.DFA().StartState))
}
