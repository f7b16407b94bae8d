// Package diffconfig holds the threshold table the rest of the diff
// core is parameterized on (spec §5), plus the three named presets.
package diffconfig

// Config is the read-only threshold table passed by value into the
// block-level pipeline stages; the inline diff pipeline (pkg/inline)
// takes no Config and uses its own fixed values. There is no mutable
// package-level global: callers
// that want a different tuning pick one of the presets below, or build
// their own Config literal.
type Config struct {
	// SimThreshold is the minimum bigram-Dice similarity for the block
	// matcher to consider two blocks a candidate match.
	SimThreshold float64
	// ExactThreshold is the similarity at or above which two blocks are
	// treated as identical for matching purposes.
	ExactThreshold float64
	// MinAnchorRun is MIN_RUN, the shortest word run for an inline
	// word anchor. The inline pipeline does not read this field: it
	// always uses a run length of 3.
	MinAnchorRun int
	// MinSharedForPairing is the minimum SharedWordRunScore for the
	// unmatched re-pair stage to pair two otherwise-unmatched blocks.
	MinSharedForPairing int
	// MinSharedForMoved is the minimum SharedWordRunScore for the
	// move detector to report a segment as moved rather than
	// independently added/removed.
	MinSharedForMoved int
	// MinSegmentLengthForMoved is the shortest segment (in runes) the
	// move detector will consider reporting as moved.
	MinSegmentLengthForMoved int
	// ShortMatchThreshold is SHORT_MATCH_THRESHOLD, the longest equal
	// run absorbed between two same-kind changes. The inline pipeline
	// does not read this field: it always uses 3 runes.
	ShortMatchThreshold int
	// LongParagraphWords is a render-hint threshold: the word count
	// above which a renderer may treat a block as "long". Nothing in
	// the diff pipeline reads it.
	LongParagraphWords int
	// MinSharedWordsForSideBySide is a render-hint threshold: the
	// minimum shared word count for a renderer to lay two blocks out
	// side by side. Nothing in the diff pipeline reads it.
	MinSharedWordsForSideBySide int
}

// Strict favors precision: blocks must be very similar to match, and
// moves need a longer shared run to be reported, so the result
// leans toward showing plain removals and additions over speculative
// rewrites.
var Strict = Config{
	SimThreshold:                0.5,
	ExactThreshold:              0.98,
	MinAnchorRun:                3,
	MinSharedForPairing:         8,
	MinSharedForMoved:           12,
	MinSegmentLengthForMoved:    40,
	ShortMatchThreshold:         2,
	LongParagraphWords:          60,
	MinSharedWordsForSideBySide: 6,
}

// Normal is the default tuning, matching spec §5's stated values.
var Normal = Config{
	SimThreshold:                0.4,
	ExactThreshold:              0.99,
	MinAnchorRun:                3,
	MinSharedForPairing:         5,
	MinSharedForMoved:           8,
	MinSegmentLengthForMoved:    30,
	ShortMatchThreshold:         3,
	LongParagraphWords:          40,
	MinSharedWordsForSideBySide: 3,
}

// Loose favors recall: weaker blocks still match side by side, and
// moves are reported more readily. Split detection uses the same fixed
// gate under every preset.
var Loose = Config{
	SimThreshold:                0.2,
	ExactThreshold:              0.9,
	MinAnchorRun:                2,
	MinSharedForPairing:         3,
	MinSharedForMoved:           5,
	MinSegmentLengthForMoved:    20,
	ShortMatchThreshold:         4,
	LongParagraphWords:          30,
	MinSharedWordsForSideBySide: 2,
}
