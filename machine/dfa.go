package machine

import (
	"fmt"

	errorutil "github.com/projectdiscovery/utils/errors"
)

// Conflict records two rules that became simultaneously accepting in one DFA
// state during subset construction. The lower-numbered rule wins; conflicts
// are diagnostics, not errors.
type Conflict struct {
	State   int64 // DFA state where both rules accept
	Kept    int64 // rule that won (lower index)
	Dropped int64 // rule that lost
}

// DFA is a dense deterministic automaton over the byte alphabet.
// Transitions holds StateCount*ByteMax entries laid out row-major; -1 means
// no transition. Accept and RuleOf run parallel to the states: RuleOf[s] is
// the owning rule index of an accepting state and -1 otherwise.
type DFA struct {
	StartState  int64
	Transitions []int64
	Accept      []bool
	RuleOf      []int64
	Conflicts   []Conflict
}

func newDFA(states int64) *DFA {
	d := &DFA{
		Transitions: make([]int64, states*ByteMax),
		Accept:      make([]bool, states),
		RuleOf:      make([]int64, states),
	}
	for i := range d.Transitions {
		d.Transitions[i] = -1
	}
	for i := range d.RuleOf {
		d.RuleOf[i] = -1
	}
	return d
}

// NumStates returns the number of states in the table.
func (d *DFA) NumStates() int64 {
	return int64(len(d.Accept))
}

// Next returns the successor of state s on byte ch, or -1.
func (d *DFA) Next(s int64, ch byte) int64 {
	return d.Transitions[s*ByteMax+int64(ch)]
}

// CheckInvariants verifies the structural invariants of the table and
// returns an error describing the first violation. A violation always
// indicates a bug in the pipeline, never bad user input.
func (d *DFA) CheckInvariants() error {
	states := d.NumStates()
	if int64(len(d.Transitions)) != states*ByteMax {
		return errorutil.NewWithTag("machine", "transition table has %d entries, want %d", len(d.Transitions), states*ByteMax)
	}
	if int64(len(d.RuleOf)) != states {
		return errorutil.NewWithTag("machine", "rule table has %d entries, want %d", len(d.RuleOf), states)
	}
	if d.StartState < 0 || d.StartState >= states {
		return errorutil.NewWithTag("machine", "start state %d out of range [0,%d)", d.StartState, states)
	}
	for i, target := range d.Transitions {
		if target < -1 || target >= states {
			return errorutil.NewWithTag("machine", "transition[%d,%d] = %d out of range", i/ByteMax, i%ByteMax, target)
		}
	}
	for s := int64(0); s < states; s++ {
		if d.Accept[s] != (d.RuleOf[s] >= 0) {
			return errorutil.NewWithTag("machine", "state %d: accept=%v but rule=%d", s, d.Accept[s], d.RuleOf[s])
		}
	}
	return nil
}

// LexicalError reports input that no rule matches, with the byte offset of
// the offending position.
type LexicalError struct {
	Offset int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at offset %d", e.Offset)
}

// Simulate runs the longest-match tokenizer over input, calling emit with
// the winning rule and lexeme for every token. End of input behaves like a
// dead transition. A zero-width match that cannot make progress is reported
// as a lexical error at the current offset.
func (d *DFA) Simulate(input []byte, emit func(rule int64, lexeme []byte)) error {
	return d.simulate(input, emit, func(s int64, ch byte) int64 {
		return d.Next(s, ch)
	})
}

// SimulateCompressed behaves exactly like Simulate but routes every lookup
// through the classifier and narrow table, so tests can assert that the
// compressed pair is observationally identical to the full table.
func (d *DFA) SimulateCompressed(ec *EquivalenceClasses, input []byte, emit func(rule int64, lexeme []byte)) error {
	width := int64(ec.ClassCount)
	return d.simulate(input, emit, func(s int64, ch byte) int64 {
		return ec.Transitions[s*width+int64(ec.Classifier[ch])]
	})
}

func (d *DFA) simulate(input []byte, emit func(rule int64, lexeme []byte), next func(int64, byte) int64) error {
	pos := 0
	for pos < len(input) {
		state := d.StartState
		matchRule := int64(-1)
		matchEnd := pos
		if d.Accept[state] {
			matchRule = d.RuleOf[state]
		}
		for i := pos; i < len(input); i++ {
			state = next(state, input[i])
			if state == -1 {
				break
			}
			if d.Accept[state] {
				matchRule = d.RuleOf[state]
				matchEnd = i + 1
			}
		}
		if matchRule == -1 || matchEnd == pos {
			// nothing matched, or only the empty string did and the scanner
			// cannot make progress on the next byte
			return &LexicalError{Offset: pos}
		}
		emit(matchRule, input[pos:matchEnd])
		pos = matchEnd
	}
	return nil
}
