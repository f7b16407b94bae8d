package diff

import (
	"sort"

	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/token"
)

// unmatchedRepair makes one final pass over whatever pure
// removals/additions survive the LCS match and the local re-pair stage:
// within each consecutive [Removed…][Added…] run, it greedily pairs any
// removal and addition whose SharedWordRunScore clears
// MinSharedForPairing (spec §4.5). A removal and an addition in
// different runs are never paired.
func unmatchedRepair(ops []matchOp, a, b []block.Block, cfg diffconfig.Config) []matchOp {
	type cand struct {
		ri, ai int
		score  int
	}
	// run[i] numbers the [Removed…][Added…] run op i belongs to; a match,
	// or a removal that follows an addition, starts a new run.
	run := make([]int, len(ops))
	cur := 0
	for i, op := range ops {
		if isMatch(op) || (isRemoved(op) && i > 0 && isAdded(ops[i-1])) {
			cur++
		}
		run[i] = cur
	}
	var removedIdx, addedIdx []int
	for i, op := range ops {
		switch {
		case isRemoved(op):
			removedIdx = append(removedIdx, i)
		case isAdded(op):
			addedIdx = append(addedIdx, i)
		}
	}

	var cands []cand
	for _, ri := range removedIdx {
		for _, ai := range addedIdx {
			if run[ri] != run[ai] {
				continue
			}
			score := token.SharedWordRunScore(a[ops[ri].aIdx].Text, b[ops[ai].bIdx].Text)
			if score >= cfg.MinSharedForPairing {
				cands = append(cands, cand{ri, ai, score})
			}
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	pairedWith := make(map[int]int)
	consumedAdd := make(map[int]bool)
	usedR := make(map[int]bool)
	usedA := make(map[int]bool)
	for _, c := range cands {
		if usedR[c.ri] || usedA[c.ai] {
			continue
		}
		usedR[c.ri] = true
		usedA[c.ai] = true
		pairedWith[c.ri] = c.ai
		consumedAdd[c.ai] = true
	}

	var out []matchOp
	for i, op := range ops {
		if ai, ok := pairedWith[i]; ok {
			sim := token.BigramDice(a[op.aIdx].Text, b[ops[ai].bIdx].Text)
			out = append(out, matchOp{aIdx: op.aIdx, bIdx: ops[ai].bIdx, sim: sim})
			continue
		}
		if consumedAdd[i] {
			continue
		}
		out = append(out, op)
	}
	return out
}
