package machine

import "encoding/binary"

// EquivalenceClasses folds the byte alphabet into classes of bytes that
// behave identically in every state. Classifier maps each byte to its class
// id; Transitions is the narrow StateCount*ClassCount table. For all states
// s and bytes b, the full table and the pair agree:
//
//	transitions[s*ByteMax+b] == Transitions[s*ClassCount+Classifier[b]]
type EquivalenceClasses struct {
	Classifier  [ByteMax]uint8
	Transitions []int64
	ClassCount  int
}

// BuildEquivalenceClasses computes the equivalence classes of a row-major
// states*ByteMax transition table. Two bytes are equivalent iff their
// columns are identical across all states. Class ids are assigned in first
// occurrence order over bytes 0..255, so the result is deterministic. The
// input table is not modified.
func BuildEquivalenceClasses(transitions []int64) *EquivalenceClasses {
	states := len(transitions) / ByteMax
	ec := &EquivalenceClasses{}

	column := make([]byte, states*8)
	classOf := make(map[string]uint8, ByteMax)
	var representatives []int

	for ch := 0; ch < ByteMax; ch++ {
		for s := 0; s < states; s++ {
			binary.LittleEndian.PutUint64(column[s*8:], uint64(transitions[s*ByteMax+ch]))
		}
		key := string(column)
		class, seen := classOf[key]
		if !seen {
			class = uint8(len(representatives))
			classOf[key] = class
			representatives = append(representatives, ch)
		}
		ec.Classifier[ch] = class
	}

	ec.ClassCount = len(representatives)
	ec.Transitions = make([]int64, states*ec.ClassCount)
	for class, ch := range representatives {
		for s := 0; s < states; s++ {
			ec.Transitions[s*ec.ClassCount+class] = transitions[s*ByteMax+ch]
		}
	}
	return ec
}

// Compress builds the equivalence classes of the DFA's transition table.
// The DFA itself is left untouched.
func (d *DFA) Compress() *EquivalenceClasses {
	return BuildEquivalenceClasses(d.Transitions)
}

// Summary returns one run-length membership description per class, in
// class id order, for diagnostic output.
func (ec *EquivalenceClasses) Summary() []string {
	out := make([]string, ec.ClassCount)
	for class := range out {
		out[class] = formatByteClass(func(ch byte) bool {
			return int(ec.Classifier[ch]) == class
		})
	}
	return out
}
