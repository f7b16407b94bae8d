// Package diffvalidate is the debug-build validation pass of spec §8:
// it checks a computed pair sequence against the five universal
// invariants and reports every violation found, rather than stopping
// at the first. It is never consulted by the core pipeline itself —
// callers opt in, typically from a test or a debug build.
package diffvalidate

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diffpair"
	"github.com/richdiff/richdiff/pkg/inlinepart"
)

// Validate checks pairs, produced from left/right, against the
// invariants of spec §3/§8. It returns a combined error (via
// multierr) naming every violation with the pair index (inline checks)
// or block index (projection checks) it concerns, or nil if pairs is
// sound.
func Validate(left, right []block.Block, pairs []diffpair.Pair) error {
	var errs error

	errs = multierr.Append(errs, checkProjection(left, right, pairs))
	for i, p := range pairs {
		if mod, ok := p.(diffpair.Modified); ok {
			// A moved pair's inline diff is deliberately recomputed
			// against its right text plus the destination block's text
			// (spec §9 Open Question 2), so it no longer reconstructs
			// RightText alone.
			if !mod.Moved {
				errs = multierr.Append(errs, checkInlineReconstruction(i, mod))
			}
			errs = multierr.Append(errs, checkMinorSymmetry(i, mod.Inline))
		}
	}
	return errs
}

func pairLeftTexts(p diffpair.Pair) []string {
	switch v := p.(type) {
	case diffpair.Equal:
		return []string{v.Text}
	case diffpair.Modified:
		return []string{v.LeftText}
	case diffpair.Removed:
		return []string{v.Text}
	case diffpair.Split:
		return []string{v.Original}
	default:
		return nil
	}
}

func pairRightTexts(p diffpair.Pair) []string {
	switch v := p.(type) {
	case diffpair.Equal:
		return []string{v.Text}
	case diffpair.Modified:
		return []string{v.RightText}
	case diffpair.Added:
		return []string{v.Text}
	case diffpair.Split:
		return []string{v.FirstPart, v.SecondPart}
	default:
		return nil
	}
}

// checkProjection verifies invariants 4 (left/right appear at most
// once, in order) and the text-preservation invariants 1/2: walking
// the pairs in order and concatenating their left (resp. right)
// contributions must reproduce the original block sequence exactly,
// position for position. A moved Added pair keeps its own Text, so it
// takes its place in the right-side check like any other Added pair,
// even though its text also appears as a Modified pair's equal run
// elsewhere (spec §8 property 2).
func checkProjection(left, right []block.Block, pairs []diffpair.Pair) error {
	var errs error
	var leftOut, rightOut []string

	for i, p := range pairs {
		leftOut = append(leftOut, pairLeftTexts(p)...)
		rightOut = append(rightOut, pairRightTexts(p)...)
		_ = i
	}

	if len(leftOut) != len(left) {
		errs = multierr.Append(errs, fmt.Errorf("left projection has %d blocks, want %d", len(leftOut), len(left)))
	} else {
		for i := range left {
			if leftOut[i] != left[i].Text {
				errs = multierr.Append(errs, fmt.Errorf("pair producing left block %d: text mismatch", i))
			}
		}
	}

	if len(rightOut) != len(right) {
		errs = multierr.Append(errs, fmt.Errorf("right projection has %d blocks, want %d", len(rightOut), len(right)))
	} else {
		for i := range right {
			if rightOut[i] != right[i].Text {
				errs = multierr.Append(errs, fmt.Errorf("pair producing right block %d: text mismatch", i))
			}
		}
	}

	return errs
}

// checkInlineReconstruction is invariant 4: a Modified pair's inline
// diff must reconstruct both block texts exactly.
func checkInlineReconstruction(pairIdx int, mod diffpair.Modified) error {
	var left, right string
	for _, part := range mod.Inline {
		switch part.Kind {
		case inlinepart.KindEqual:
			left += part.Value
			right += part.Value
		case inlinepart.KindRemoved:
			left += part.Value
		case inlinepart.KindAdded:
			right += part.Value
		}
	}
	var errs error
	if left != mod.LeftText {
		errs = multierr.Append(errs, fmt.Errorf("pair %d: inline diff does not reconstruct left text", pairIdx))
	}
	if right != mod.RightText {
		errs = multierr.Append(errs, fmt.Errorf("pair %d: inline diff does not reconstruct right text", pairIdx))
	}
	return errs
}

// checkMinorSymmetry is invariant 3/5: for every minor removed/added
// pair with children, the concatenated equal children must match
// character for character on both sides.
func checkMinorSymmetry(pairIdx int, parts []inlinepart.Part) error {
	var errs error
	for i := 0; i+1 < len(parts); i++ {
		removed, added := parts[i], parts[i+1]
		if removed.Kind != inlinepart.KindRemoved || added.Kind != inlinepart.KindAdded {
			continue
		}
		if !removed.Minor || !added.Minor {
			continue
		}
		if len(removed.Children) == 0 && len(added.Children) == 0 {
			continue
		}
		if equalChildText(removed.Children) != equalChildText(added.Children) {
			errs = multierr.Append(errs, fmt.Errorf("pair %d: minor pair equal children mismatch", pairIdx))
		}
	}
	return errs
}

func equalChildText(children []inlinepart.Part) string {
	var s string
	for _, c := range children {
		if c.Kind == inlinepart.KindEqual {
			s += c.Value
		}
	}
	return s
}
