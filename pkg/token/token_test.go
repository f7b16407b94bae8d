package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeJoinRoundTrip(t *testing.T) {
	cases := []string{
		"The quick brown fox jumps over the lazy dog.",
		"single",
		"  leading space then word  ",
		"a\tb\nc",
		"",
	}
	for _, s := range cases {
		toks := Tokenize(s)
		joined := Join(toks)
		if len(toks) == 0 {
			assert.Empty(t, joined)
			continue
		}
		// Join reproduces s except trailing whitespace after the final
		// token is dropped.
		trimmed := s
		for len(trimmed) > 0 && isTrailingSpace(trimmed[len(trimmed)-1]) {
			trimmed = trimmed[:len(trimmed)-1]
		}
		assert.Equal(t, trimmed, joined)
	}
}

func isTrailingSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello", Normalize("Hello,"))
	assert.Equal(t, "world", Normalize(`"World"`))
	assert.Equal(t, "oxytocin", Normalize("Oxytocin"))
	assert.Equal(t, "don't", Normalize("don't"))
}

func TestIsPurePunctuation(t *testing.T) {
	assert.True(t, IsPurePunctuation("..."))
	assert.True(t, IsPurePunctuation("—"))
	assert.False(t, IsPurePunctuation("a."))
	assert.False(t, IsPurePunctuation(""))
}

func TestBigramDiceIdentity(t *testing.T) {
	assert.Equal(t, 1.0, BigramDice("hello world", "hello world"))
	assert.Equal(t, 0.0, BigramDice("a", "ab"))
	assert.Greater(t, BigramDice("night", "nacht"), 0.0)
	assert.Less(t, BigramDice("apple", "orange"), BigramDice("apple", "apples"))
}

func TestSimilarityCachedMatchesDirect(t *testing.T) {
	a, b := "the quick brown fox", "the quick brown dog"
	ca, cb := NewBigramCache(a), NewBigramCache(b)
	assert.Equal(t, BigramDice(a, b), SimilarityCached(ca, cb))
}

func TestFindAnchorsOrdering(t *testing.T) {
	a := Tokenize("the quick brown fox jumps over the lazy dog")
	b := Tokenize("a quick brown fox leaps over a very lazy dog")
	anchors := FindAnchors(a, b, 0, len(a), 0, len(b), 2, Exact)
	require.NotEmpty(t, anchors)
	for i := 1; i < len(anchors); i++ {
		assert.Less(t, anchors[i-1].AI, anchors[i].AI)
	}
	// "quick brown fox" should anchor.
	found := false
	for _, an := range anchors {
		if an.Len >= 3 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestIsOnlyStopWords(t *testing.T) {
	assert.True(t, IsOnlyStopWords("of the"))
	assert.True(t, IsOnlyStopWords("the"))
	assert.False(t, IsOnlyStopWords("philosophy"))
	assert.False(t, IsOnlyStopWords(""))
}

func TestSharedWordRunScore(t *testing.T) {
	assert.Equal(t, 0, SharedWordRunScore("hello", "world"))
	assert.GreaterOrEqual(t, SharedWordRunScore("a b c d", "x b c y"), 2)
}
