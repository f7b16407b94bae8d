package diffwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richdiff/richdiff/pkg/diffpair"
	"github.com/richdiff/richdiff/pkg/inlinepart"
)

func TestEncodeAllKinds(t *testing.T) {
	pairs := []diffpair.Pair{
		diffpair.Equal{Text: "same", Line: 1},
		diffpair.Added{Text: "new", Line: 2},
		diffpair.Removed{Text: "gone", Line: 3},
		diffpair.Modified{
			LeftText:  "old text",
			RightText: "new text",
			Inline: []inlinepart.Part{
				{Kind: inlinepart.KindEqual, Value: "old"},
				{Kind: inlinepart.KindRemoved, Value: "old", AbsorbLevel: inlinepart.AbsorbStopword},
			},
			Moved: true,
		},
		diffpair.Split{Original: "ab", FirstPart: "a", SecondPart: "b", SplitPoint: 1},
	}

	out := Encode(pairs)
	require.Len(t, out, 5)
	assert.Equal(t, "equal", out[0].Status)
	assert.Equal(t, "added", out[1].Status)
	assert.Equal(t, "removed", out[2].Status)
	assert.Equal(t, "modified", out[3].Status)
	assert.True(t, out[3].Moved)
	require.Len(t, out[3].InlineDiff, 2)
	assert.Equal(t, "stopword", out[3].InlineDiff[1].AbsorbLevel)
	assert.Equal(t, "split", out[4].Status)
	assert.Equal(t, "ab", out[4].LeftText)
	assert.Equal(t, "a\n\nb", out[4].RightText)
	assert.Equal(t, 1, out[4].SplitPoint)
}

func TestEncodeEmpty(t *testing.T) {
	assert.Empty(t, Encode(nil))
}
