package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharSetBasics(t *testing.T) {
	require.Equal(t, 0, Empty().Count())
	require.Equal(t, 256, AnyByte().Count())

	s := Singleton('a')
	require.True(t, s.Test('a'))
	require.False(t, s.Test('b'))
	require.Equal(t, []byte{'a'}, s.Bytes())

	r := Range('a', 'c')
	require.Equal(t, []byte{'a', 'b', 'c'}, r.Bytes())

	// byte 0 is a regular member
	require.True(t, Singleton(0).Test(0))
	require.True(t, Range(0, 2).Test(0))
}

func TestCharSetOperations(t *testing.T) {
	union := Singleton('a').Union(Singleton('b'))
	require.Equal(t, []byte{'a', 'b'}, union.Bytes())

	inter := Range('a', 'f').Intersect(Range('d', 'z'))
	require.Equal(t, []byte{'d', 'e', 'f'}, inter.Bytes())

	comp := Digit().Complement()
	require.False(t, comp.Test('5'))
	require.True(t, comp.Test('a'))
	require.Equal(t, 246, comp.Count())

	// complement is an involution
	require.Equal(t, Digit(), Digit().Complement().Complement())
}

func TestCharSetBuiltins(t *testing.T) {
	require.Equal(t, 10, Digit().Count())

	w := AlnumUnderscore()
	require.True(t, w.Test('_'))
	require.True(t, w.Test('q'))
	require.True(t, w.Test('Q'))
	require.True(t, w.Test('7'))
	require.False(t, w.Test('-'))
	require.Equal(t, 63, w.Count())

	ws := Whitespace()
	for _, ch := range []byte{' ', '\t', '\n', '\v', '\f', '\r'} {
		require.True(t, ws.Test(ch), "expected whitespace to contain %q", ch)
	}
	require.Equal(t, 6, ws.Count())

	x := XDigit()
	require.True(t, x.Test('a'))
	require.True(t, x.Test('F'))
	require.False(t, x.Test('g'))
	require.Equal(t, 22, x.Count())
}
