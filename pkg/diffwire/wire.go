// Package diffwire is the JSON wire schema for cross-tool consumption:
// the shape the HTTP API writes to its response body and the shape any
// renderer reads back, independent of the in-process pkg/diffpair types.
package diffwire

import (
	"github.com/richdiff/richdiff/pkg/diffpair"
	"github.com/richdiff/richdiff/pkg/inlinepart"
)

// Pair is the wire form of a diffpair.Pair. Status names which of the
// five cases it is; for Split, LeftText holds the original
// (single-paragraph) side, RightText holds FirstPart and SecondPart
// joined with "\n\n", and SplitPoint carries the located split offset
// (-1 when not found), so a decoder never needs diffpair's own shape.
type Pair struct {
	Status     string       `json:"status"`
	LeftText   string       `json:"left_text,omitempty"`
	RightText  string       `json:"right_text,omitempty"`
	LeftLine   int          `json:"left_line,omitempty"`
	RightLine  int          `json:"right_line,omitempty"`
	Moved      bool         `json:"moved,omitempty"`
	Similarity float64      `json:"similarity,omitempty"`
	SplitPoint int          `json:"split_point,omitempty"`
	InlineDiff []InlinePart `json:"inline_diff,omitempty"`
}

// InlinePart is the wire form of an inlinepart.Part.
type InlinePart struct {
	Value       string       `json:"value"`
	Type        string       `json:"type"`
	Minor       bool         `json:"minor,omitempty"`
	AbsorbLevel string       `json:"absorb_level,omitempty"`
	Children    []InlinePart `json:"children,omitempty"`
}

// Encode converts a computed pair sequence into its wire form, ready
// for json.Marshal. Unknown fields are ignored on decode, per the
// usual encoding/json behavior, so older clients keep working as the
// schema grows.
func Encode(pairs []diffpair.Pair) []Pair {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = encodePair(p)
	}
	return out
}

func encodePair(p diffpair.Pair) Pair {
	switch v := p.(type) {
	case diffpair.Equal:
		return Pair{Status: "equal", LeftText: v.Text, RightText: v.Text, LeftLine: v.Line, RightLine: v.Line}
	case diffpair.Added:
		return Pair{
			Status:     "added",
			RightText:  v.Text,
			RightLine:  v.Line,
			Moved:      v.Moved,
			InlineDiff: encodeParts(v.Inline),
		}
	case diffpair.Removed:
		return Pair{Status: "removed", LeftText: v.Text, LeftLine: v.Line}
	case diffpair.Modified:
		return Pair{
			Status:     "modified",
			LeftText:   v.LeftText,
			RightText:  v.RightText,
			LeftLine:   v.LeftLine,
			RightLine:  v.RightLine,
			Moved:      v.Moved,
			Similarity: v.Similarity,
			InlineDiff: encodeParts(v.Inline),
		}
	case diffpair.Split:
		return Pair{
			Status:     "split",
			LeftText:   v.Original,
			RightText:  v.FirstPart + "\n\n" + v.SecondPart,
			SplitPoint: v.SplitPoint,
			InlineDiff: encodeParts(v.Inline),
		}
	default:
		return Pair{Status: "unknown"}
	}
}

// EncodeParts converts a standalone inline diff (as returned by
// inline.Compute) into its wire form, for callers that only want the
// inline half of the schema (e.g. the inline-diff-only endpoint).
func EncodeParts(parts []inlinepart.Part) []InlinePart {
	return encodeParts(parts)
}

func encodeParts(parts []inlinepart.Part) []InlinePart {
	if len(parts) == 0 {
		return nil
	}
	out := make([]InlinePart, len(parts))
	for i, p := range parts {
		out[i] = InlinePart{
			Value:       p.Value,
			Type:        p.Kind.String(),
			Minor:       p.Minor,
			AbsorbLevel: absorbLevelString(p.AbsorbLevel),
			Children:    encodeParts(p.Children),
		}
	}
	return out
}

func absorbLevelString(a inlinepart.AbsorbLevel) string {
	switch a {
	case inlinepart.AbsorbStopword:
		return "stopword"
	case inlinepart.AbsorbSingle:
		return "single"
	default:
		return ""
	}
}
