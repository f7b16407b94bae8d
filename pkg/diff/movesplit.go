package diff

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/diffpair"
	"github.com/richdiff/richdiff/pkg/inline"
	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/token"
)

// splitSimThreshold is spec §4.9's fixed paragraph-split gate — unlike
// every other matching threshold in this package, it is not
// configurable per matching level.
const splitSimThreshold = 0.95

// moveShareTokens is the minimum SharedWordRunScore for a destination
// Modified pair's added part to be folded into equal once its pair has
// been identified as a move target (spec §4.9).
const moveShareTokens = 5

// movedPlaceholder is the text shown in place of a moved-to Added
// pair's real content, since that content is now rendered as equal
// inside its move source instead.
const movedPlaceholder = "(content shown above)"

// detectMovesAndSplits is spec §4.9's Move & Split Detector. It runs
// last, after every other pipeline stage has settled on a pair
// sequence: it tries paragraph-split detection first, and if that
// changes the sequence returns immediately without also running move
// detection in the same pass.
func detectMovesAndSplits(pairs []diffpair.Pair, cfg diffconfig.Config) []diffpair.Pair {
	if split, changed := detectSplits(pairs); changed {
		return split
	}
	return detectMoves(pairs, cfg)
}

// detectSplits looks for an adjacent [Added, Modified] (pattern A) or
// [Modified, Added] (pattern B) pair whose two right-side texts,
// concatenated, are near-identical to one side's single left text.
func detectSplits(pairs []diffpair.Pair) ([]diffpair.Pair, bool) {
	for i := 0; i+1 < len(pairs); i++ {
		if added, ok := pairs[i].(diffpair.Added); ok && !added.Moved {
			if mod, ok := pairs[i+1].(diffpair.Modified); ok && !mod.Moved {
				if token.BigramDice(added.Text+" "+mod.RightText, mod.LeftText) > splitSimThreshold {
					return spliceSplit(pairs, i, mod.LeftText, added.Text, mod.RightText), true
				}
			}
		}
		if mod, ok := pairs[i].(diffpair.Modified); ok && !mod.Moved {
			if added, ok := pairs[i+1].(diffpair.Added); ok && !added.Moved {
				if token.BigramDice(mod.RightText+" "+added.Text, mod.LeftText) > splitSimThreshold {
					return spliceSplit(pairs, i, mod.LeftText, mod.RightText, added.Text), true
				}
			}
		}
	}
	return pairs, false
}

// spliceSplit replaces pairs[start:start+2] with a single Split pair.
func spliceSplit(pairs []diffpair.Pair, start int, oldText, newPart1, newPart2 string) []diffpair.Pair {
	splitPoint, found := locateSplit(oldText, newPart1)
	sp := splitPoint
	if !found {
		sp = -1
	}

	out := make([]diffpair.Pair, 0, len(pairs)-1)
	out = append(out, pairs[:start]...)
	out = append(out, diffpair.Split{
		Original:   oldText,
		FirstPart:  newPart1,
		SecondPart: newPart2,
		SplitPoint: sp,
		Inline:     buildSplitInline(oldText, splitPoint, found, newPart1, newPart2),
	})
	out = append(out, pairs[start+2:]...)
	return out
}

// locateSplit finds newPart1's trimmed text inside oldText and returns
// the offset just past it, advanced past any following whitespace —
// the split point spec §4.9 describes.
func locateSplit(oldText, newPart1 string) (int, bool) {
	trimmed := strings.TrimSpace(newPart1)
	if trimmed == "" {
		return 0, false
	}
	idx := strings.Index(oldText, trimmed)
	if idx < 0 {
		return 0, false
	}
	end := idx + len(trimmed)
	for end < len(oldText) {
		r, size := utf8.DecodeRuneInString(oldText[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return end, true
}

// buildSplitInline renders the reconstruction spec §4.9 describes: a
// pilcrow inserted into oldText at the located split point, or the
// fallback three-part form when no split point was found.
func buildSplitInline(oldText string, splitPoint int, found bool, newPart1, newPart2 string) []inlinepart.Part {
	if found {
		return []inlinepart.Part{
			{Kind: inlinepart.KindEqual, Value: oldText[:splitPoint]},
			{Kind: inlinepart.KindAdded, Value: "¶ "},
			{Kind: inlinepart.KindEqual, Value: oldText[splitPoint:]},
		}
	}
	return []inlinepart.Part{
		{Kind: inlinepart.KindEqual, Value: newPart1},
		{Kind: inlinepart.KindAdded, Value: "\n¶ "},
		{Kind: inlinepart.KindEqual, Value: newPart2},
	}
}

// moveSegment is a candidate moved block: a whole Added pair's text, or
// one long non-minor removed/added segment lifted out of a Modified
// pair's inline diff.
type moveSegment struct {
	pairIdx int
	text    string
}

// detectMoves collects move candidates from every Modified pair's
// non-minor inline segments longer than MinSegmentLengthForMoved runes
// plus every unmoved Added pair's text, then
// greedily pairs cross-pair (removed, added) candidates whose shared
// word run clears MinSharedForMoved, applying the highest-scoring,
// non-conflicting pairs first (spec §4.9).
func detectMoves(pairs []diffpair.Pair, cfg diffconfig.Config) []diffpair.Pair {
	var removedSegs, addedSegs []moveSegment
	for i, p := range pairs {
		switch v := p.(type) {
		case diffpair.Added:
			if !v.Moved {
				addedSegs = append(addedSegs, moveSegment{i, v.Text})
			}
		case diffpair.Modified:
			if v.Moved {
				continue
			}
			for _, part := range v.Inline {
				if part.Minor || utf8.RuneCountInString(part.Value) <= cfg.MinSegmentLengthForMoved {
					continue
				}
				switch part.Kind {
				case inlinepart.KindRemoved:
					removedSegs = append(removedSegs, moveSegment{i, part.Value})
				case inlinepart.KindAdded:
					addedSegs = append(addedSegs, moveSegment{i, part.Value})
				}
			}
		}
	}

	type candidate struct {
		src, dst moveSegment
		score    int
	}
	var cands []candidate
	for _, r := range removedSegs {
		for _, a := range addedSegs {
			if r.pairIdx == a.pairIdx {
				continue
			}
			if score := token.SharedWordRunScore(r.text, a.text); score >= cfg.MinSharedForMoved {
				cands = append(cands, candidate{r, a, score})
			}
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	usedSrc := make(map[int]bool)
	usedDst := make(map[int]bool)
	out := append([]diffpair.Pair(nil), pairs...)
	changed := false
	for _, c := range cands {
		if usedSrc[c.src.pairIdx] || usedDst[c.dst.pairIdx] {
			continue
		}
		usedSrc[c.src.pairIdx] = true
		usedDst[c.dst.pairIdx] = true
		applyMove(out, c.src.pairIdx, c.dst.pairIdx, c.src.text, c.dst.text)
		changed = true
	}
	if !changed {
		return pairs
	}
	return out
}

// applyMove rewrites the source pair (a Modified pair whose removed
// text moved elsewhere) and the destination pair in place, per spec
// §4.9: the source recomputes its inline diff against its own right
// text plus the destination's text, so the moved segment now shows as
// equal; the destination either becomes a "shown above" placeholder
// (if it was Added) or has its matching added parts folded to equal
// (if it was Modified).
func applyMove(pairs []diffpair.Pair, srcIdx, dstIdx int, srcSegText, dstSegText string) {
	mod, ok := pairs[srcIdx].(diffpair.Modified)
	if !ok {
		return
	}
	combined := mod.RightText + "\n\n" + dstSegText
	mod.Inline = inline.Compute(mod.LeftText, combined)
	mod.Moved = true
	pairs[srcIdx] = mod

	switch dst := pairs[dstIdx].(type) {
	case diffpair.Added:
		dst.Moved = true
		dst.Inline = []inlinepart.Part{
			{Kind: inlinepart.KindAdded, Value: "¶ "},
			{Kind: inlinepart.KindEqual, Value: movedPlaceholder},
		}
		pairs[dstIdx] = dst
	case diffpair.Modified:
		dst.Inline = absorbMovedParts(dst.Inline, srcSegText)
		pairs[dstIdx] = dst
	}
}

// absorbMovedParts recasts any added inline part that shares at least
// moveShareTokens words with sourceText from added to equal, since that
// text is now understood to have arrived via the recorded move rather
// than as a fresh addition.
func absorbMovedParts(parts []inlinepart.Part, sourceText string) []inlinepart.Part {
	out := make([]inlinepart.Part, len(parts))
	copy(out, parts)
	for i, part := range out {
		if part.Kind != inlinepart.KindAdded {
			continue
		}
		if token.SharedWordRunScore(sourceText, part.Value) >= moveShareTokens {
			out[i].Kind = inlinepart.KindEqual
		}
	}
	return out
}
