package diff

import (
	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/diffpair"
	"github.com/richdiff/richdiff/pkg/inline"
	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/token"
)

// Blocks runs the full block-level diff pipeline in spec §2/§4's
// stage order — Block Matcher, Re-pair Optimizer, Unmatched Re-pair,
// then the Move & Split Detector, which runs last of all — and
// returns the side-by-side result in document order.
func Blocks(left, right []block.Block, cfg diffconfig.Config) []diffpair.Pair {
	ops := matchBlocks(left, right, cfg)
	ops = repairRuns(ops, left, right, cfg)
	ops = unmatchedRepair(ops, left, right, cfg)

	pairs := make([]diffpair.Pair, len(ops))
	for i, op := range ops {
		pairs[i] = buildPair(op, left, right, cfg)
	}
	return detectMovesAndSplits(pairs, cfg)
}

func buildPair(op matchOp, left, right []block.Block, cfg diffconfig.Config) diffpair.Pair {
	switch {
	case isRemoved(op):
		blk := left[op.aIdx]
		return diffpair.Removed{Text: blk.Text, Line: blk.Line}
	case isAdded(op):
		blk := right[op.bIdx]
		return diffpair.Added{Text: blk.Text, Line: blk.Line}
	default:
		lb, rb := left[op.aIdx], right[op.bIdx]
		if lb.Text == rb.Text || op.sim >= cfg.ExactThreshold {
			return diffpair.Equal{Text: lb.Text, Line: lb.Line}
		}
		shared := token.SharedWordRunScore(lb.Text, rb.Text)
		return diffpair.Modified{
			LeftText:   lb.Text,
			RightText:  rb.Text,
			LeftLine:   lb.Line,
			RightLine:  rb.Line,
			Inline:     inline.Compute(lb.Text, rb.Text),
			Similarity: op.sim,
			Metrics: diffpair.Metrics{
				SharedWords: shared,
				TotalWords:  inlinepart.WordCount(lb.Text) + inlinepart.WordCount(rb.Text),
			},
		}
	}
}
