// Package diffpair defines the block-level diff result type: a Pair is
// one row of the side-by-side view. Spec Design Note 1 calls for an
// interface rather than a single struct with nullable fields, so each
// of the five cases below carries exactly the data relevant to it.
package diffpair

import "github.com/richdiff/richdiff/pkg/inlinepart"

// Kind tags which of the five Pair cases a value holds.
type Kind int

const (
	KindEqual Kind = iota
	KindAdded
	KindRemoved
	KindModified
	KindSplit
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindModified:
		return "modified"
	case KindSplit:
		return "split"
	default:
		return "invalid"
	}
}

// Metrics records the shared/total word counts of a matched pair,
// carried through for the renderer and for diagnostics. No pipeline
// stage reads it back.
type Metrics struct {
	SharedWords int
	TotalWords  int
}

// Pair is the tagged union of the five block-level diff outcomes. Kind
// reports which concrete type a value holds; callers type-switch on
// the concrete type for the case-specific fields.
type Pair interface {
	Kind() Kind
}

// Equal is a block present, unchanged, on both sides.
type Equal struct {
	Text string
	Line int
}

func (Equal) Kind() Kind { return KindEqual }

// Added is a block present only on the right. Moved marks a
// destination placeholder produced by the move detector: the move
// source's Modified pair has already recomputed its inline diff to
// show this text as equal, so Inline here carries only the "shown
// above" placeholder rendering, not a real diff against anything.
type Added struct {
	Text   string
	Line   int
	Moved  bool
	Inline []inlinepart.Part
}

func (Added) Kind() Kind { return KindAdded }

// Removed is a block present only on the left.
type Removed struct {
	Text string
	Line int
}

func (Removed) Kind() Kind { return KindRemoved }

// Modified is a matched left/right block pair, rendered side by side
// with an inline diff.
type Modified struct {
	LeftText   string
	RightText  string
	LeftLine   int
	RightLine  int
	Inline     []inlinepart.Part
	Similarity float64
	Metrics    Metrics
	// Moved, when true, marks the source of a detected move: the move
	// detector recomputed Inline against RightText plus the moved text
	// found in another pair, so Inline no longer reconstructs RightText
	// alone.
	Moved bool
}

func (Modified) Kind() Kind { return KindModified }

// Split is one original paragraph on one side rendered as two
// paragraphs (FirstPart, SecondPart) on the other side, per spec §4.9.
// SplitPoint is the byte offset within Original where the split was
// located by searching for FirstPart's trimmed text; it is -1 when no
// such offset could be found, in which case Inline falls back to the
// three-part reconstruction instead of slicing Original.
type Split struct {
	Original   string
	FirstPart  string
	SecondPart string
	SplitPoint int
	Inline     []inlinepart.Part
}

func (Split) Kind() Kind { return KindSplit }
