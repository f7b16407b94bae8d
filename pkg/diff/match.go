// Package diff implements the block-level diff pipeline of spec
// §4.3-§4.5 and §4.9: similarity-weighted block matching, re-pair
// optimization, unmatched re-pair, and move/split detection, producing
// the final []diffpair.Pair side-by-side result.
package diff

import (
	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/token"
)

// matchOp is one step of a block alignment: a match (aIdx and bIdx both
// set), a left-only removal (bIdx < 0), or a right-only addition
// (aIdx < 0).
type matchOp struct {
	aIdx, bIdx int
	sim        float64
}

func isRemoved(op matchOp) bool { return op.bIdx < 0 && op.aIdx >= 0 }
func isAdded(op matchOp) bool   { return op.aIdx < 0 && op.bIdx >= 0 }
func isMatch(op matchOp) bool   { return op.aIdx >= 0 && op.bIdx >= 0 }

// matchBlocks runs a similarity-weighted LCS over a and b: dp[i][j] is
// the best score achievable matching a[:i] against b[:j], where a
// diagonal step is only available when the two blocks' bigram-Dice
// similarity clears cfg.SimThreshold and pays off dp[i-1][j-1] + 1 +
// sim — the "+1" rewards the match itself, so the objective maximizes
// matched-block count first and total similarity second (spec §4.3
// step 3). The traceback prefers a diagonal match over either skip,
// and a left skip over an up skip, on ties.
func matchBlocks(a, b []block.Block, cfg diffconfig.Config) []matchOp {
	n, m := len(a), len(b)

	cachesA := make([]*token.BigramCache, n)
	for i, blk := range a {
		cachesA[i] = token.NewBigramCache(blk.Text)
	}
	cachesB := make([]*token.BigramCache, m)
	for j, blk := range b {
		cachesB[j] = token.NewBigramCache(blk.Text)
	}
	sim := func(i, j int) float64 {
		return token.SimilarityCached(cachesA[i], cachesB[j])
	}

	dp := make([][]float64, n+1)
	parent := make([][]byte, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
		parent[i] = make([]byte, m+1)
	}

	const (
		fromUp byte = iota
		fromLeft
		fromDiag
	)

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			best := dp[i-1][j]
			from := fromUp
			if left := dp[i][j-1]; left >= best {
				best = left
				from = fromLeft
			}
			if s := sim(i-1, j-1); s >= cfg.SimThreshold {
				if diag := dp[i-1][j-1] + 1 + s; diag >= best {
					best = diag
					from = fromDiag
				}
			}
			dp[i][j] = best
			parent[i][j] = from
		}
	}

	var ops []matchOp
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && parent[i][j] == fromDiag:
			ops = append(ops, matchOp{aIdx: i - 1, bIdx: j - 1, sim: sim(i-1, j-1)})
			i--
			j--
		case i > 0 && (j == 0 || parent[i][j] == fromUp):
			ops = append(ops, matchOp{aIdx: i - 1, bIdx: -1})
			i--
		default:
			ops = append(ops, matchOp{aIdx: -1, bIdx: j - 1})
			j--
		}
	}
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}
