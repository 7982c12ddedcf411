package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEquivalenceRoundTrip(t *testing.T) {
	dfa := singleCharNFA('a').Build()
	ec := dfa.Compress()

	for s := int64(0); s < dfa.NumStates(); s++ {
		for ch := 0; ch < ByteMax; ch++ {
			require.Equal(t,
				dfa.Next(s, byte(ch)),
				ec.Transitions[s*int64(ec.ClassCount)+int64(ec.Classifier[ch])],
				"state %d byte %d", s, ch)
		}
	}
}

func TestEquivalenceFirstOccurrenceOrder(t *testing.T) {
	dfa := singleCharNFA('a').Build()
	ec := dfa.Compress()

	// bytes before 'a' share the dead column and claim class 0; 'a' opens
	// class 1; everything after folds back into class 0
	require.Equal(t, 2, ec.ClassCount)
	require.EqualValues(t, 0, ec.Classifier[0])
	require.EqualValues(t, 1, ec.Classifier['a'])
	require.EqualValues(t, 0, ec.Classifier['b'])
	require.EqualValues(t, 0, ec.Classifier[255])
}

func TestEquivalenceDoesNotModifyInput(t *testing.T) {
	dfa := singleCharNFA('a').Build()
	before := append([]int64(nil), dfa.Transitions...)
	_ = dfa.Compress()
	require.Equal(t, before, dfa.Transitions)
}

func TestEquivalenceSingleState(t *testing.T) {
	// a table where every byte behaves identically folds to one class
	table := make([]int64, ByteMax)
	for i := range table {
		table[i] = -1
	}
	ec := BuildEquivalenceClasses(table)
	require.Equal(t, 1, ec.ClassCount)
	for ch := 0; ch < ByteMax; ch++ {
		require.EqualValues(t, 0, ec.Classifier[ch])
	}
	require.Equal(t, []int64{-1}, ec.Transitions)
}

func TestEquivalenceSummary(t *testing.T) {
	dfa := singleCharNFA('a').Build()
	ec := dfa.Compress()

	summary := ec.Summary()
	require.Len(t, summary, ec.ClassCount)
	require.Equal(t, "a", summary[1])
	require.Contains(t, summary[0], "b")
}

func TestEquivalenceDistinctColumns(t *testing.T) {
	// two states, three column behaviors: dead everywhere, 'x' loops on
	// state 0, 'y' leads to state 1 from both states
	table := make([]int64, 2*ByteMax)
	for i := range table {
		table[i] = -1
	}
	table[0*ByteMax+'x'] = 0
	table[0*ByteMax+'y'] = 1
	table[1*ByteMax+'y'] = 1
	ec := BuildEquivalenceClasses(table)

	// classes: dead everywhere, 'x' column, 'y' column
	require.Equal(t, 3, ec.ClassCount)
	require.NotEqual(t, ec.Classifier['x'], ec.Classifier['y'])
	require.NotEqual(t, ec.Classifier['x'], ec.Classifier['z'])
}
