package diff

import (
	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/token"
)

// repairImprovement is the minimum total-similarity gain a re-pair
// must show before it is applied (spec §4.4).
const repairImprovement = 0.1

// repairRuns is spec §4.4's Re-pair Optimizer: it scans runs of
// consecutive Modified-candidate matches (blocks the LCS matcher paired
// but did not consider identical) and tries to improve the run's total
// similarity by permuting which left block pairs with which right
// block within the run — the greedy matcher locks in a low-similarity
// pair whenever a swap would have yielded two better ones. A run ends
// at a pure removal/addition or at an exact (Equal-bound) match.
func repairRuns(ops []matchOp, a, b []block.Block, cfg diffconfig.Config) []matchOp {
	out := append([]matchOp(nil), ops...)
	i := 0
	for i < len(out) {
		if !isModifiedMatch(out[i], cfg) {
			i++
			continue
		}
		j := i
		for j < len(out) && isModifiedMatch(out[j], cfg) {
			j++
		}
		repairRun(out[i:j], a, b)
		i = j
	}
	return out
}

func isModifiedMatch(op matchOp, cfg diffconfig.Config) bool {
	return isMatch(op) && op.sim < cfg.ExactThreshold
}

// repairRun permutes the bIdx assignment of a single run in place:
// n = 2 checks the single swap; n = 3 or 4 enumerates every
// permutation; n >= 5 falls back to greedy nearest-similarity
// assignment. The permutation found is only applied if it beats the
// run's current total similarity by more than repairImprovement.
func repairRun(run []matchOp, a, b []block.Block) {
	n := len(run)
	if n < 2 {
		return
	}

	bIdx := make([]int, n)
	for k, op := range run {
		bIdx[k] = op.bIdx
	}
	sim := make([][]float64, n)
	for k, op := range run {
		sim[k] = make([]float64, n)
		for l := range bIdx {
			sim[k][l] = token.BigramDice(a[op.aIdx].Text, b[bIdx[l]].Text)
		}
	}

	identity := make([]int, n)
	for k := range identity {
		identity[k] = k
	}
	currentScore := permScore(sim, identity)

	var best []int
	var bestScore float64
	if n <= 4 {
		best, bestScore = bestPermutation(sim, n, currentScore)
	} else {
		best, bestScore = greedyPermutation(sim, n)
	}

	if best == nil || bestScore-currentScore <= repairImprovement {
		return
	}
	for k, op := range run {
		l := best[k]
		run[k] = matchOp{aIdx: op.aIdx, bIdx: bIdx[l], sim: sim[k][l]}
	}
}

func permScore(sim [][]float64, perm []int) float64 {
	var s float64
	for k, l := range perm {
		s += sim[k][l]
	}
	return s
}

// bestPermutation exhaustively searches all n! assignments (n is 2, 3
// or 4 at call sites) by recursive swap-and-restore enumeration,
// returning the best one
// found, which may be the identity itself.
func bestPermutation(sim [][]float64, n int, identityScore float64) ([]int, float64) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := append([]int(nil), perm...)
	bestScore := identityScore

	var permute func(k int)
	permute = func(k int) {
		if k == n {
			if s := permScore(sim, perm); s > bestScore {
				bestScore = s
				copy(best, perm)
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			permute(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	permute(0)
	return best, bestScore
}

// greedyPermutation assigns, left slot by left slot in order, the
// best-similarity unused right slot (spec §4.4's n >= 5 case).
func greedyPermutation(sim [][]float64, n int) ([]int, float64) {
	used := make([]bool, n)
	perm := make([]int, n)
	var score float64
	for k := 0; k < n; k++ {
		bestL, bestS := -1, -1.0
		for l := 0; l < n; l++ {
			if used[l] || sim[k][l] <= bestS {
				continue
			}
			bestS, bestL = sim[k][l], l
		}
		perm[k] = bestL
		used[bestL] = true
		score += bestS
	}
	return perm, score
}
