package rules

import (
	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/token"
)

// DefaultRules returns the priority-ordered stop-word absorption rules
// of spec §4.8, in priority order (highest first).
func DefaultRules() []Rule {
	return []Rule{
		absorbMinorStopWordPair,
		absorbMinorStopWordPairReverse,
		absorbEqualStopWords,
		absorbSingleWordLargeChanges,
	}
}

var absorbMinorStopWordPair = Rule{
	Name:        "absorb-minor-stop-word-pair",
	Pattern:     []inlinepart.Kind{inlinepart.KindRemoved, inlinepart.KindAdded},
	AbsorbLevel: inlinepart.AbsorbStopword,
	Condition: func(ctx Context) bool {
		removed, _ := ctx.At(0)
		added, _ := ctx.At(1)
		return minorStopPairCondition(ctx, removed, added, -1, 2, inlinepart.KindRemoved, inlinepart.KindAdded)
	},
	Transform: func(ctx Context) []inlinepart.Part {
		return mergeStopPair(ctx, 0, 1, -1, 2)
	},
}

var absorbMinorStopWordPairReverse = Rule{
	Name:        "absorb-minor-stop-word-pair-reverse",
	Pattern:     []inlinepart.Kind{inlinepart.KindAdded, inlinepart.KindRemoved},
	AbsorbLevel: inlinepart.AbsorbStopword,
	Condition: func(ctx Context) bool {
		added, _ := ctx.At(0)
		removed, _ := ctx.At(1)
		return minorStopPairCondition(ctx, removed, added, 2, -1, inlinepart.KindAdded, inlinepart.KindRemoved)
	},
	Transform: func(ctx Context) []inlinepart.Part {
		return mergeStopPair(ctx, 1, 0, 2, -1)
	},
}

// minorStopPairCondition checks rules 1/2: both matched parts minor and
// only-stop-words, both have an adjacent same-kind "target" to absorb
// into, and the absorption doesn't merge pure punctuation into pure
// punctuation (the em-dash duplication guard, spec scenario F).
//
// removedTargetOffset/addedTargetOffset name where, relative to the match start,
// the target for the added/removed part would sit (the neighbor with
// the matching kind).
func minorStopPairCondition(ctx Context, removed, added inlinepart.Part, removedTargetOffset, addedTargetOffset int, removedKindAt, addedKindAt inlinepart.Kind) bool {
	if !removed.Minor || !added.Minor {
		return false
	}
	if !token.IsOnlyStopWords(removed.Value) || !token.IsOnlyStopWords(added.Value) {
		return false
	}
	removedTarget, ok1 := ctx.At(removedTargetOffset)
	addedTarget, ok2 := ctx.At(addedTargetOffset)
	if !ok1 || removedTarget.Kind != inlinepart.KindRemoved {
		return false
	}
	if !ok2 || addedTarget.Kind != inlinepart.KindAdded {
		return false
	}
	if token.IsPurePunctuation(removed.Value) && token.IsPurePunctuation(removedTarget.Value) {
		return false
	}
	if token.IsPurePunctuation(added.Value) && token.IsPurePunctuation(addedTarget.Value) {
		return false
	}
	return true
}

func mergeStopPair(ctx Context, removedIdx, addedIdx, removedTargetOffset, addedTargetOffset int) []inlinepart.Part {
	removed := ctx.Parts[ctx.Index+removedIdx]
	added := ctx.Parts[ctx.Index+addedIdx]
	rti := ctx.Index + removedTargetOffset
	ati := ctx.Index + addedTargetOffset
	if rti >= 0 && rti < len(ctx.Parts) {
		ctx.Parts[rti].Value += removed.Value
	}
	if ati >= 0 && ati < len(ctx.Parts) {
		ctx.Parts[ati].Value += added.Value
	}
	return nil
}

var absorbEqualStopWords = Rule{
	Name:        "absorb-equal-stop-words",
	Pattern:     []inlinepart.Kind{inlinepart.KindEqual},
	AbsorbLevel: inlinepart.AbsorbStopword,
	Condition: func(ctx Context) bool {
		eq, _ := ctx.At(0)
		if !token.IsOnlyStopWords(eq.Value) {
			return false
		}
		prev, prevOK := ctx.At(-1)
		next, nextOK := ctx.At(1)
		if !prevOK || !nextOK || !prev.IsChange() || !next.IsChange() {
			return false
		}
		// Preserve context stop words next to a single-word edit: if
		// exactly one change separates this equal from the next equal,
		// and that next equal is meaningful (not only stop words),
		// don't absorb this one away.
		following, ok := ctx.At(2)
		if ok && following.Kind == inlinepart.KindEqual && !token.IsOnlyStopWords(following.Value) {
			return false
		}
		return true
	},
	Transform: func(ctx Context) []inlinepart.Part {
		eq, _ := ctx.At(0)
		prevIdx, nextIdx := ctx.Index-1, ctx.Index+1
		if prevIdx >= 0 {
			ctx.Parts[prevIdx].Value += eq.Value
		} else if nextIdx < len(ctx.Parts) {
			ctx.Parts[nextIdx].Value = eq.Value + ctx.Parts[nextIdx].Value
		}
		return nil
	},
}

var absorbSingleWordLargeChanges = Rule{
	Name:        "absorb-single-word-large-changes",
	Pattern:     []inlinepart.Kind{inlinepart.KindEqual},
	AbsorbLevel: inlinepart.AbsorbSingle,
	Condition: func(ctx Context) bool {
		eq, _ := ctx.At(0)
		if inlinepart.WordCount(eq.Value) != 1 {
			return false
		}
		prev, prevOK := ctx.At(-1)
		next, nextOK := ctx.At(1)
		if !prevOK || !nextOK || !prev.IsChange() || !next.IsChange() {
			return false
		}
		return inlinepart.WordCount(prev.Value) >= 3 && inlinepart.WordCount(next.Value) >= 3
	},
	Transform: func(ctx Context) []inlinepart.Part {
		eq, _ := ctx.At(0)
		ctx.Parts[ctx.Index-1].Value += eq.Value
		return nil
	},
}
