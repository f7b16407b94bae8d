// Package inline implements the within-block inline diff pipeline of
// spec §4.6-§4.7: markdown-emphasis guarding, word-anchor diffing,
// adjacent-pair refinement, minor/major splitting, absorb-rule marking,
// and boundary optimization.
package inline

import (
	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/rules"
	"github.com/richdiff/richdiff/pkg/token"
)

// minAnchorRun is MIN_RUN (spec §5): the shortest word run the initial
// anchor pass will treat as a match.
const minAnchorRun = 3

// Compute runs the full inline diff pipeline over two block texts and
// returns the resulting sequence of parts. Both a and b reconstruct
// from the equal+removed and equal+added sub-sequences respectively,
// from their first word on: whitespace before the first word of a or
// b is not carried by any part.
func Compute(a, b string) []inlinepart.Part {
	guard := &markdownGuard{}
	ga, gb := guard.hide(a), guard.hide(b)

	toksA, toksB := token.Tokenize(ga), token.Tokenize(gb)

	parts := emitAnchored(toksA, toksB, minAnchorRun, token.Exact, false)
	parts = refineAdjacentPairs(parts)
	parts = splitMinorMajor(parts)

	parts = rules.NewEngine().Mark(parts)

	parts = optimizeBoundaries(parts)
	parts = markStandalonePunctuationMinor(parts)

	return guard.restoreParts(parts)
}
