package lexgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSpec = `package mylexer

import "fmt"
%%
return fmt.Errorf("lexical error at line %d", lx.line)
%%
panic("corrupt tables")
%%
; keywords first, identifiers second
"if" -> emit(KW_IF)
/[a-zA-Z_][a-zA-Z_0-9]*/ emit(ID)
# numbers
/[0-9]+/ -> emit(NUM)

/ +/ ->
%%
func trailing() {}
`

func TestParseSpecFile(t *testing.T) {
	opts, err := ParseSpecFile(strings.NewReader(sampleSpec))
	require.NoError(t, err)

	require.Contains(t, opts.Preamble, "package mylexer")
	require.Contains(t, opts.Preamble, `import "fmt"`)
	require.Contains(t, opts.ErrorHandler, "lexical error at line")
	require.Contains(t, opts.InternalErrorHandler, "corrupt tables")
	require.Contains(t, opts.Trailer, "func trailing()")

	require.Len(t, opts.Rules, 4)
	require.Equal(t, Rule{Pattern: `"if"`, Action: "emit(KW_IF)"}, opts.Rules[0])
	require.Equal(t, Rule{Pattern: `/[a-zA-Z_][a-zA-Z_0-9]*/`, Action: "emit(ID)"}, opts.Rules[1])
	require.Equal(t, Rule{Pattern: `/[0-9]+/`, Action: "emit(NUM)"}, opts.Rules[2])
	require.Equal(t, Rule{Pattern: `/ +/`, Action: ""}, opts.Rules[3])

	// the parsed options compile end to end
	_, err = New(opts)
	require.NoError(t, err)
}

func TestParseSpecFileBarePattern(t *testing.T) {
	spec := "%%\n%%\n%%\n[0-9]+ -> emit(NUM)\n%%\n"
	opts, err := ParseSpecFile(strings.NewReader(spec))
	require.NoError(t, err)
	require.Len(t, opts.Rules, 1)
	require.Equal(t, Rule{Pattern: "[0-9]+", Action: "emit(NUM)"}, opts.Rules[0])
}

func TestParseSpecFileErrors(t *testing.T) {
	// broken regex in a rule line
	spec := "%%\n%%\n%%\n/[abc/ -> emit(X)\n%%\n"
	_, err := ParseSpecFile(strings.NewReader(spec))
	require.Error(t, err)
	require.Contains(t, err.Error(), "rule line 1")

	// bare pattern without separator
	spec = "%%\n%%\n%%\nabc\n%%\n"
	_, err = ParseSpecFile(strings.NewReader(spec))
	require.Error(t, err)
}

func TestParseSpecFileMissingTrailer(t *testing.T) {
	// sections may simply run out; missing sections come back empty
	spec := "%%\n%%\n%%\n\"x\" -> emit(X)\n"
	opts, err := ParseSpecFile(strings.NewReader(spec))
	require.NoError(t, err)
	require.Len(t, opts.Rules, 1)
	require.Empty(t, opts.Trailer)
}
