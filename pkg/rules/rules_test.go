package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richdiff/richdiff/pkg/inlinepart"
)

func TestMarkAbsorbEqualStopWords(t *testing.T) {
	parts := []inlinepart.Part{
		{Kind: inlinepart.KindRemoved, Value: "copy"},
		{Kind: inlinepart.KindEqual, Value: " of "},
		{Kind: inlinepart.KindRemoved, Value: "reality"},
		{Kind: inlinepart.KindAdded, Value: "images"},
	}
	eng := NewEngine()
	marked := eng.Mark(parts)
	assert.Equal(t, inlinepart.AbsorbStopword, marked[1].AbsorbLevel)
	// The rest keep their original values; Mark never deletes.
	assert.Equal(t, " of ", marked[1].Value)
}

func TestMarkSingleWordLargeChanges(t *testing.T) {
	parts := []inlinepart.Part{
		{Kind: inlinepart.KindRemoved, Value: "the quick brown fox"},
		{Kind: inlinepart.KindEqual, Value: " jumps "},
		{Kind: inlinepart.KindAdded, Value: "over the lazy dog"},
	}
	marked := NewEngine().Mark(parts)
	assert.Equal(t, inlinepart.AbsorbSingle, marked[1].AbsorbLevel)
}

func TestTransformAbsorbsIntoNeighbor(t *testing.T) {
	parts := []inlinepart.Part{
		{Kind: inlinepart.KindRemoved, Value: "copy"},
		{Kind: inlinepart.KindEqual, Value: " of "},
		{Kind: inlinepart.KindRemoved, Value: "reality"},
		{Kind: inlinepart.KindAdded, Value: "images"},
	}
	out := NewEngine().Transform(parts)
	// The stop-word equal is gone, absorbed into the previous removed.
	for _, p := range out {
		assert.NotEqual(t, " of ", p.Value)
	}
	assert.Len(t, out, 3)
}

func TestEmDashGuardDoesNotDoubleAbsorb(t *testing.T) {
	// "groups - the teams - are fine" vs "groups — teams — are fine":
	// minor pure-punctuation dash parts adjacent to other pure
	// punctuation must not be merged into each other.
	parts := []inlinepart.Part{
		{Kind: inlinepart.KindRemoved, Value: "- "},
		{Kind: inlinepart.KindRemoved, Value: "-", Minor: true},
		{Kind: inlinepart.KindAdded, Value: "—", Minor: true},
		{Kind: inlinepart.KindAdded, Value: "— "},
	}
	marked := NewEngine().Mark(parts)
	assert.Equal(t, inlinepart.AbsorbNone, marked[1].AbsorbLevel)
	assert.Equal(t, inlinepart.AbsorbNone, marked[2].AbsorbLevel)
}
