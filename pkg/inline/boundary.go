package inline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/richdiff/richdiff/pkg/inlinepart"
	"github.com/richdiff/richdiff/pkg/token"
)

// shortMatchThreshold is SHORT_MATCH_THRESHOLD (spec §5): an equal run
// this short or shorter, sandwiched between two same-kind changes, gets
// absorbed into one change rather than shown as its own sliver.
const shortMatchThreshold = 3

// scoreBoundary scores how good a split point is, given the character
// immediately to its left and right (hasLeft/hasRight false at a string
// edge). Earlier rows take priority over later ones.
func scoreBoundary(left rune, hasLeft bool, right rune, hasRight bool) int {
	if !hasLeft || !hasRight {
		return 150
	}
	if left == '\n' || right == '\n' {
		return 80
	}
	if strings.ContainsRune(",;:.!?", left) && unicode.IsSpace(right) {
		return 40
	}
	if unicode.IsSpace(left) || unicode.IsSpace(right) {
		return 20
	}
	if unicode.IsLower(left) && unicode.IsUpper(right) {
		return 10
	}
	return 0
}

func scoreRunes(b, d, a []rune) int {
	var bl, df, dl, af rune
	hasBl, hasDf, hasDl, hasAf := len(b) > 0, len(d) > 0, len(d) > 0, len(a) > 0
	if hasBl {
		bl = b[len(b)-1]
	}
	if hasDf {
		df = d[0]
		dl = d[len(d)-1]
	}
	if hasAf {
		af = a[0]
	}
	return scoreBoundary(bl, hasBl, df, hasDf) + scoreBoundary(dl, hasDl, af, hasAf)
}

// slideBoundary tries every invariant-preserving rotation of the
// before+diff+after triple — rotations that leave both the left
// (before+diff+after) and right (before+after) reconstructions
// unchanged — and returns whichever rotation scores highest under
// scoreBoundary. A rotation shrinking before by one rune is valid only
// while before's last rune matches diff's last rune (shifting earlier);
// a rotation growing before by one rune is valid only while diff's
// first rune matches after's first rune (shifting later).
func slideBoundary(before, diff, after string) (string, string, string) {
	type state struct{ b, d, a []rune }

	cur := state{[]rune(before), []rune(diff), []rune(after)}
	best := cur
	bestScore := scoreRunes(cur.b, cur.d, cur.a)

	s := cur
	for len(s.b) > 0 && len(s.d) > 0 && s.b[len(s.b)-1] == s.d[len(s.d)-1] {
		c := s.b[len(s.b)-1]
		lastD := s.d[len(s.d)-1]
		nb := append([]rune{}, s.b[:len(s.b)-1]...)
		nd := append([]rune{c}, s.d[:len(s.d)-1]...)
		na := append([]rune{lastD}, s.a...)
		s = state{nb, nd, na}
		if sc := scoreRunes(s.b, s.d, s.a); sc > bestScore {
			bestScore, best = sc, s
		}
	}

	s = cur
	for len(s.d) > 0 && len(s.a) > 0 && s.d[0] == s.a[0] {
		c := s.d[0]
		nb := append(append([]rune{}, s.b...), c)
		nd := append(append([]rune{}, s.d[1:]...), s.a[0])
		na := append([]rune{}, s.a[1:]...)
		s = state{nb, nd, na}
		if sc := scoreRunes(s.b, s.d, s.a); sc > bestScore {
			bestScore, best = sc, s
		}
	}

	return string(best.b), string(best.d), string(best.a)
}

// shiftDiffBoundaries applies slideBoundary to every standalone change
// part (not part of a minor pair, which carries its own character-level
// diff already) flanked by two equal neighbors.
func shiftDiffBoundaries(parts []inlinepart.Part) []inlinepart.Part {
	out := append([]inlinepart.Part(nil), parts...)
	for i := 1; i+1 < len(out); i++ {
		if out[i-1].Kind != inlinepart.KindEqual || out[i+1].Kind != inlinepart.KindEqual {
			continue
		}
		if !out[i].IsChange() || out[i].Minor {
			continue
		}
		nb, nd, na := slideBoundary(out[i-1].Value, out[i].Value, out[i+1].Value)
		out[i-1].Value = nb
		out[i].Value = nd
		out[i+1].Value = na
	}
	return out
}

func isWhitespaceOnly(s string) bool {
	return strings.TrimSpace(s) == ""
}

func childrenOf(p inlinepart.Part) []inlinepart.Part {
	if len(p.Children) > 0 {
		return p.Children
	}
	return []inlinepart.Part{{Kind: p.Kind, Value: p.Value}}
}

// absorbShortMatchesOnce merges one pass of [change X][equal E][change
// X] triples (same kind X, |E| <= shortMatchThreshold runes, E not pure
// whitespace) into a single change part with children [X, E, X].
func absorbShortMatchesOnce(parts []inlinepart.Part) ([]inlinepart.Part, bool) {
	var out []inlinepart.Part
	changed := false
	i := 0
	for i < len(parts) {
		if i+2 < len(parts) {
			x1, eq, x2 := parts[i], parts[i+1], parts[i+2]
			if x1.IsChange() && x2.IsChange() && x1.Kind == x2.Kind &&
				eq.Kind == inlinepart.KindEqual &&
				utf8.RuneCountInString(eq.Value) <= shortMatchThreshold &&
				!isWhitespaceOnly(eq.Value) {
				merged := inlinepart.Part{
					Kind:  x1.Kind,
					Value: x1.Value + eq.Value + x2.Value,
					Minor: x1.Minor && x2.Minor,
				}
				merged.Children = append(merged.Children, childrenOf(x1)...)
				merged.Children = append(merged.Children, inlinepart.Part{Kind: inlinepart.KindEqual, Value: eq.Value})
				merged.Children = append(merged.Children, childrenOf(x2)...)
				out = append(out, merged)
				i += 3
				changed = true
				continue
			}
		}
		out = append(out, parts[i])
		i++
	}
	return out, changed
}

// absorbShortMatches iterates absorbShortMatchesOnce to a fixed point.
func absorbShortMatches(parts []inlinepart.Part) []inlinepart.Part {
	cur := parts
	for {
		next, changed := absorbShortMatchesOnce(cur)
		if !changed {
			return next
		}
		cur = next
	}
}

// optimizeBoundaries runs the two §4.7 passes: diff shifting once, then
// short-match absorption to a fixed point.
func optimizeBoundaries(parts []inlinepart.Part) []inlinepart.Part {
	parts = shiftDiffBoundaries(parts)
	parts = absorbShortMatches(parts)
	return parts
}

// markStandalonePunctuationMinor flags any still-unmarked change part
// made up entirely of punctuation as minor.
func markStandalonePunctuationMinor(parts []inlinepart.Part) []inlinepart.Part {
	for i := range parts {
		if parts[i].IsChange() && !parts[i].Minor && token.IsPurePunctuation(parts[i].Value) {
			parts[i].Minor = true
		}
	}
	return parts
}
