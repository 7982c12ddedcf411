package machine

import "sort"

// Minimize merges indistinguishable states in place using Hopcroft's
// partition refinement. Accepting states are partitioned per rule before
// refinement starts, so states owned by different rules never merge and
// action identity survives minimization.
//
// The result is renumbered deterministically: final blocks are ordered by
// the smallest pre-minimization state id they contain. Minimizing an already
// minimal DFA leaves the table unchanged.
func (d *DFA) Minimize() {
	states := d.NumStates()
	if states == 0 {
		return
	}

	// reverse edges, rev[target*ByteMax+ch] = sources
	rev := make([][]int64, states*ByteMax)
	for s := int64(0); s < states; s++ {
		for ch := int64(0); ch < ByteMax; ch++ {
			if t := d.Transitions[s*ByteMax+ch]; t != -1 {
				rev[t*ByteMax+ch] = append(rev[t*ByteMax+ch], s)
			}
		}
	}

	// initial partition: one block of non-accepting states plus one block
	// per distinct accepting rule, in ascending rule order
	blockOf := make([]int, states)
	var blocks [][]int64
	var nonAccepting []int64
	byRule := map[int64][]int64{}
	var ruleIDs []int64
	for s := int64(0); s < states; s++ {
		if !d.Accept[s] {
			nonAccepting = append(nonAccepting, s)
			continue
		}
		rule := d.RuleOf[s]
		if _, ok := byRule[rule]; !ok {
			ruleIDs = append(ruleIDs, rule)
		}
		byRule[rule] = append(byRule[rule], s)
	}
	sort.Slice(ruleIDs, func(i, j int) bool { return ruleIDs[i] < ruleIDs[j] })
	if len(nonAccepting) > 0 {
		blocks = append(blocks, nonAccepting)
	}
	for _, rule := range ruleIDs {
		blocks = append(blocks, byRule[rule])
	}
	for idx, members := range blocks {
		for _, s := range members {
			blockOf[s] = idx
		}
	}

	// refine: pop a block, split every block against its predecessor set
	worklist := make([]int, len(blocks))
	queued := make([]bool, len(blocks))
	for i := range blocks {
		worklist[i] = i
		queued[i] = true
	}
	marked := make([]bool, states)

	for len(worklist) > 0 {
		a := worklist[0]
		worklist = worklist[1:]
		queued[a] = false
		splitter := append([]int64(nil), blocks[a]...)

		for ch := int64(0); ch < ByteMax; ch++ {
			// X = states with a ch-transition into the splitter
			var preds []int64
			for _, member := range splitter {
				for _, src := range rev[member*ByteMax+ch] {
					if !marked[src] {
						marked[src] = true
						preds = append(preds, src)
					}
				}
			}
			if len(preds) == 0 {
				continue
			}

			// group the marked states by their current block, visiting
			// affected blocks in ascending index order
			var affected []int
			seen := map[int]bool{}
			for _, s := range preds {
				if !seen[blockOf[s]] {
					seen[blockOf[s]] = true
					affected = append(affected, blockOf[s])
				}
			}
			sort.Ints(affected)

			for _, y := range affected {
				var inside, outside []int64
				for _, s := range blocks[y] {
					if marked[s] {
						inside = append(inside, s)
					} else {
						outside = append(outside, s)
					}
				}
				if len(outside) == 0 {
					continue
				}
				newIdx := len(blocks)
				blocks[y] = inside
				blocks = append(blocks, outside)
				queued = append(queued, false)
				for _, s := range outside {
					blockOf[s] = newIdx
				}
				if queued[y] {
					worklist = append(worklist, newIdx)
					queued[newIdx] = true
				} else if len(inside) <= len(outside) {
					worklist = append(worklist, y)
					queued[y] = true
				} else {
					worklist = append(worklist, newIdx)
					queued[newIdx] = true
				}
			}

			for _, s := range preds {
				marked[s] = false
			}
		}
	}

	if len(blocks) == int(states) {
		return
	}

	// renumber blocks by their smallest member so the output does not depend
	// on refinement order
	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return blocks[order[i]][0] < blocks[order[j]][0] })
	newID := make([]int64, len(blocks))
	for rank, idx := range order {
		newID[idx] = int64(rank)
	}

	merged := newDFA(int64(len(blocks)))
	merged.StartState = newID[blockOf[d.StartState]]
	merged.Conflicts = d.Conflicts
	for idx, members := range blocks {
		rep := members[0]
		id := newID[idx]
		merged.Accept[id] = d.Accept[rep]
		merged.RuleOf[id] = d.RuleOf[rep]
		for ch := int64(0); ch < ByteMax; ch++ {
			if t := d.Transitions[rep*ByteMax+ch]; t != -1 {
				merged.Transitions[id*ByteMax+ch] = newID[blockOf[t]]
			}
		}
	}

	*d = *merged
}
