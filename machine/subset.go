package machine

import (
	"github.com/projectdiscovery/gologger"
)

// epsilonClosure marks in mask every node reachable from node over epsilon
// edges only, using a queue-based traversal.
func epsilonClosure(epsilons [][]int64, node int64, mask []bool) {
	queue := []int64{node}
	mask[node] = true
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, target := range epsilons[curr] {
			if !mask[target] {
				mask[target] = true
				queue = append(queue, target)
			}
		}
	}
}

// packMask packs a node bitmask into a string usable as a map key. The
// encoding is positional, so two equal subsets always produce the same key
// regardless of construction order.
func packMask(mask []bool) string {
	packed := make([]byte, (len(mask)+7)/8)
	for i, set := range mask {
		if set {
			packed[i/8] |= 1 << (i % 8)
		}
	}
	return string(packed)
}

// Build runs subset construction over the accumulated NFA and returns the
// equivalent DFA. States are numbered in discovery order: the epsilon closure
// of the start markers is state 0, successors are enumerated breadth-first
// with bytes visited in ascending order, so the resulting table is fully
// deterministic.
//
// Accepting DFA states are attributed to the lowest-numbered rule whose end
// node they contain. When two distinct rules accept in the same state a
// "possible conflict" diagnostic is emitted and recorded; the lower rule
// index wins.
func (b *NFABuilder) Build() *DFA {
	nodes := b.NodeCount()

	epsilons := make([][]int64, nodes)
	for _, e := range b.epsilons {
		epsilons[e[0]] = append(epsilons[e[0]], e[1])
	}
	transitions := make([][]int64, nodes*ByteMax)
	for _, e := range b.edges {
		idx := e.from*ByteMax + int64(e.ch)
		transitions[idx] = append(transitions[idx], e.to)
	}

	startMask := make([]bool, nodes)
	for _, node := range b.starts {
		epsilonClosure(epsilons, node, startMask)
	}

	subsetToID := map[string]int64{packMask(startMask): 0}
	stateSets := [][]bool{startMask}
	type dfaEdge struct {
		from, to int64
		ch       byte
	}
	var edges []dfaEdge
	queue := [][]bool{startMask}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		from := subsetToID[packMask(curr)]

		for ch := 0; ch < ByteMax; ch++ {
			move := make([]bool, nodes)
			nonEmpty := false
			for node := int64(0); node < nodes; node++ {
				if !curr[node] {
					continue
				}
				for _, target := range transitions[node*ByteMax+int64(ch)] {
					nonEmpty = true
					if !move[target] {
						epsilonClosure(epsilons, target, move)
					}
				}
			}
			if !nonEmpty {
				continue
			}

			key := packMask(move)
			to, seen := subsetToID[key]
			if !seen {
				to = int64(len(stateSets))
				subsetToID[key] = to
				stateSets = append(stateSets, move)
				queue = append(queue, move)
			}
			edges = append(edges, dfaEdge{from: from, to: to, ch: byte(ch)})
		}
	}

	dfa := newDFA(int64(len(stateSets)))
	dfa.StartState = 0
	for _, e := range edges {
		dfa.Transitions[e.from*ByteMax+int64(e.ch)] = e.to
	}

	// attribute accepting states; b.ends is in declaration order so the
	// winner on conflict is independent of map iteration order
	for state, set := range stateSets {
		for _, end := range b.ends {
			if !set[end.node] {
				continue
			}
			if !dfa.Accept[int64(state)] {
				dfa.Accept[state] = true
				dfa.RuleOf[state] = end.rule
				continue
			}
			if dfa.RuleOf[state] != end.rule {
				kept, dropped := dfa.RuleOf[state], end.rule
				if dropped < kept {
					kept, dropped = dropped, kept
				}
				gologger.Warning().Msgf("possible conflict between rules %d and %d", kept, dropped)
				dfa.Conflicts = append(dfa.Conflicts, Conflict{State: int64(state), Kept: kept, Dropped: dropped})
				dfa.RuleOf[state] = kept
			}
		}
	}

	return dfa
}
