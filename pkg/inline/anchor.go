package inline

import (
	"strings"

	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/token"
)

// emitAnchored walks the disjoint anchors FindAnchors locates between
// aToks and bToks and emits a flat removed/added/equal sequence: text
// between anchors becomes a removed or added part, and each anchor
// becomes an equal part — or, when rejectStopwordOnlyAnchors is set and
// an anchor's matched text normalizes to nothing but stop words, the
// anchor is folded back into the surrounding gap instead of being
// treated as a match at all.
//
// An accepted anchor whose two sides differ in raw form (case or
// enclosing punctuation only, since the comparison mode that found it
// was Fuzzy) is emitted as a minor removed/added pair rather than an
// equal part, so invariant reconstruction still holds character for
// character.
func emitAnchored(aToks, bToks []token.Token, minLen int, mode token.CompareMode, rejectStopwordOnlyAnchors bool) []inlinepart.Part {
	anchors := token.FindAnchors(aToks, bToks, 0, len(aToks), 0, len(bToks), minLen, mode)

	var out []inlinepart.Part
	var pendingRemoved, pendingAdded strings.Builder
	doneA, doneB := 0, 0

	flush := func() {
		if pendingRemoved.Len() > 0 {
			out = append(out, inlinepart.Part{Kind: inlinepart.KindRemoved, Value: pendingRemoved.String()})
			pendingRemoved.Reset()
		}
		if pendingAdded.Len() > 0 {
			out = append(out, inlinepart.Part{Kind: inlinepart.KindAdded, Value: pendingAdded.String()})
			pendingAdded.Reset()
		}
	}

	for _, an := range anchors {
		if an.AI > doneA {
			pendingRemoved.WriteString(token.Join(aToks[doneA:an.AI]))
		}
		if an.BI > doneB {
			pendingAdded.WriteString(token.Join(bToks[doneB:an.BI]))
		}
		aText := token.Join(aToks[an.AI : an.AI+an.Len])
		bText := token.Join(bToks[an.BI : an.BI+an.Len])
		doneA = an.AI + an.Len
		doneB = an.BI + an.Len

		if rejectStopwordOnlyAnchors && token.IsOnlyStopWords(aText) {
			pendingRemoved.WriteString(aText)
			pendingAdded.WriteString(bText)
			continue
		}

		flush()
		if aText == bText {
			out = append(out, inlinepart.Part{Kind: inlinepart.KindEqual, Value: aText})
		} else {
			out = append(out, minorPair(aText, bText)...)
		}
	}

	if doneA < len(aToks) {
		pendingRemoved.WriteString(token.Join(aToks[doneA:]))
	}
	if doneB < len(bToks) {
		pendingAdded.WriteString(token.Join(bToks[doneB:]))
	}
	flush()

	return out
}

// refineAdjacentPairs re-examines every still-adjacent removed/added
// pair with a recursive, normalized, MIN_INTERNAL_RUN=1 token LCS,
// splitting out any internal common material the coarser MIN_RUN=3
// word-anchor pass was too conservative to find.
func refineAdjacentPairs(parts []inlinepart.Part) []inlinepart.Part {
	var out []inlinepart.Part
	i := 0
	for i < len(parts) {
		if i+1 < len(parts) && parts[i].Kind == inlinepart.KindRemoved && parts[i+1].Kind == inlinepart.KindAdded {
			sub := emitAnchored(token.Tokenize(parts[i].Value), token.Tokenize(parts[i+1].Value), 1, token.Fuzzy, false)
			out = append(out, sub...)
			i += 2
			continue
		}
		out = append(out, parts[i])
		i++
	}
	return out
}
