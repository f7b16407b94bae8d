package inline

import (
	"strings"

	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/token"
)

// isMinorChange reports whether removed/added differ only by case, by
// enclosing/internal punctuation, or are both pure punctuation — the
// three cases spec §4.6 calls out as "minor".
func isMinorChange(removed, added string) bool {
	if strings.EqualFold(removed, added) {
		return true
	}
	sr, sa := stripPunct(removed), stripPunct(added)
	if sr != "" && strings.EqualFold(sr, sa) {
		return true
	}
	if token.IsPurePunctuation(removed) && token.IsPurePunctuation(added) {
		return true
	}
	return false
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if token.IsPurePunctuation(string(r)) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// minorPair builds the removed/added pair for a minor change, with a
// character-level LCS sub-diff hung off Children so the parallel
// reconstruction invariant still holds down to the character.
func minorPair(removed, added string) []inlinepart.Part {
	rc, ac := charDiff(removed, added)
	return []inlinepart.Part{
		{Kind: inlinepart.KindRemoved, Value: removed, Minor: true, Children: rc},
		{Kind: inlinepart.KindAdded, Value: added, Minor: true, Children: ac},
	}
}

// charDiff runs a classic O(n*m) LCS over runes and walks the
// traceback greedily (preferring a deletion on ties) to produce two
// parallel children sequences whose Equal runs carry identical text.
func charDiff(a, b string) (removedChildren, addedChildren []inlinepart.Part) {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)

	dp := make([][]int32, n+1)
	for i := range dp {
		dp[i] = make([]int32, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if ra[i] == rb[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	const (
		opNone = iota
		opEqual
		opRemoved
		opAdded
	)
	lastKind := opNone
	var buf []rune

	flush := func(k int) {
		if len(buf) == 0 {
			return
		}
		text := string(buf)
		switch k {
		case opEqual:
			removedChildren = append(removedChildren, inlinepart.Part{Kind: inlinepart.KindEqual, Value: text})
			addedChildren = append(addedChildren, inlinepart.Part{Kind: inlinepart.KindEqual, Value: text})
		case opRemoved:
			removedChildren = append(removedChildren, inlinepart.Part{Kind: inlinepart.KindRemoved, Value: text})
		case opAdded:
			addedChildren = append(addedChildren, inlinepart.Part{Kind: inlinepart.KindAdded, Value: text})
		}
		buf = buf[:0]
	}
	push := func(k int, r rune) {
		if k != lastKind {
			flush(lastKind)
			lastKind = k
		}
		buf = append(buf, r)
	}

	i, j := 0, 0
	for i < n && j < m {
		switch {
		case ra[i] == rb[j]:
			push(opEqual, ra[i])
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			push(opRemoved, ra[i])
			i++
		default:
			push(opAdded, rb[j])
			j++
		}
	}
	for i < n {
		push(opRemoved, ra[i])
		i++
	}
	for j < m {
		push(opAdded, rb[j])
		j++
	}
	flush(lastKind)

	return removedChildren, addedChildren
}

// splitMinorMajor resolves every still-adjacent removed/added pair left
// after anchor refinement: a minor change gets a character-level
// sub-diff, a major one gets a second, looser anchor pass (minLen=1,
// lower-cased, rejecting stop-word-only anchors) to split out whatever
// common material remains.
func splitMinorMajor(parts []inlinepart.Part) []inlinepart.Part {
	var out []inlinepart.Part
	i := 0
	for i < len(parts) {
		if i+1 < len(parts) && parts[i].Kind == inlinepart.KindRemoved && parts[i+1].Kind == inlinepart.KindAdded {
			removed, added := parts[i], parts[i+1]
			if isMinorChange(removed.Value, added.Value) {
				out = append(out, minorPair(removed.Value, added.Value)...)
			} else {
				sub := emitAnchored(token.Tokenize(removed.Value), token.Tokenize(added.Value), 1, token.Fuzzy, true)
				out = append(out, sub...)
			}
			i += 2
			continue
		}
		out = append(out, parts[i])
		i++
	}
	return out
}
