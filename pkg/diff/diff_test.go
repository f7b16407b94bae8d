package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richdiff/richdiff/pkg/block"
	"github.com/richdiff/richdiff/pkg/diffconfig"
	"github.com/richdiff/richdiff/pkg/diffpair"
	"github.com/richdiff/richdiff/pkg/diffvalidate"
	"github.com/richdiff/richdiff/pkg/inlinepart"
)

func blocks(texts ...string) []block.Block {
	out := make([]block.Block, len(texts))
	for i, t := range texts {
		out[i] = block.New(t)
	}
	return out
}

func TestBlocksSingleWordChangeIsModified(t *testing.T) {
	left := blocks("The quick brown fox jumps over the lazy dog.")
	right := blocks("The quick brown fox leaps over the lazy dog.")
	pairs := Blocks(left, right, diffconfig.Normal)

	require.Len(t, pairs, 1)
	mod, ok := pairs[0].(diffpair.Modified)
	require.True(t, ok)
	assert.Equal(t, left[0].Text, mod.LeftText)
	assert.Equal(t, right[0].Text, mod.RightText)
	require.NoError(t, diffvalidate.Validate(left, right, pairs))
}

func TestBlocksUnrelatedContentIsRemovedThenAdded(t *testing.T) {
	left := blocks(
		"Philosophy explores abstract concepts.",
		"Ethics concerns moral principles.",
	)
	right := blocks(
		"The weather forecast predicts rain.",
		"Tomorrow will be sunny and warm.",
	)
	pairs := Blocks(left, right, diffconfig.Normal)

	var removed, added int
	for _, p := range pairs {
		switch p.(type) {
		case diffpair.Removed:
			removed++
		case diffpair.Added:
			added++
		}
	}
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, added)
	assert.NoError(t, diffvalidate.Validate(left, right, pairs))
}

func TestBlocksIdempotentOnIdenticalInput(t *testing.T) {
	left := blocks("One paragraph here.", "A second paragraph follows.")
	pairs := Blocks(left, left, diffconfig.Normal)

	require.Len(t, pairs, len(left))
	for i, p := range pairs {
		eq, ok := p.(diffpair.Equal)
		require.True(t, ok, "pair %d should be Equal", i)
		assert.Equal(t, left[i].Text, eq.Text)
	}
}

func TestBlocksStopWordEqualIsTaggedAbsorbable(t *testing.T) {
	left := blocks("copy of reality")
	right := blocks("collection of images")
	pairs := Blocks(left, right, diffconfig.Normal)

	require.Len(t, pairs, 1)
	mod, ok := pairs[0].(diffpair.Modified)
	require.True(t, ok)
	found := false
	for _, part := range mod.Inline {
		if part.Kind.String() == "equal" && part.Value == "of " {
			found = true
			assert.NotEqual(t, inlinepart.AbsorbNone, part.AbsorbLevel, "stop-word equal should be tagged absorbable")
		}
	}
	assert.True(t, found, "expected an equal part for the shared stop word \"of\"")
}
