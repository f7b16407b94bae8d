package inline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richdiff/richdiff/pkg/inlinepart"
)

func reconstructLeft(parts []inlinepart.Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Kind == inlinepart.KindEqual || p.Kind == inlinepart.KindRemoved {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

func reconstructRight(parts []inlinepart.Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Kind == inlinepart.KindEqual || p.Kind == inlinepart.KindAdded {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

func TestComputeReconstructsBothSides(t *testing.T) {
	cases := []struct{ a, b string }{
		{"the quick brown fox jumps over the lazy dog", "the quick brown fox leaps over the lazy dog"},
		{"Oxytocin levels rise", "oxytocin levels rise sharply"},
		{"copy of reality", "images of reality"},
		{"groups - the teams - are fine", "groups — teams — are fine"},
	}
	for _, c := range cases {
		parts := Compute(c.a, c.b)
		assert.Equal(t, c.a, reconstructLeft(parts), "left reconstruction for %q/%q", c.a, c.b)
		assert.Equal(t, c.b, reconstructRight(parts), "right reconstruction for %q/%q", c.a, c.b)
	}
}

func TestComputeMarksCaseOnlyChangeMinor(t *testing.T) {
	parts := Compute("Oxytocin levels rise", "oxytocin levels rise sharply")
	foundMinor := false
	for _, p := range parts {
		if p.IsChange() && p.Minor {
			foundMinor = true
		}
	}
	assert.True(t, foundMinor, "expected at least one minor part for the case-only change")
}

func TestComputePreservesMarkdownEmphasis(t *testing.T) {
	parts := Compute("this is **very** important", "this is **extremely** important")
	assert.Equal(t, "this is **very** important", reconstructLeft(parts))
	assert.Equal(t, "this is **extremely** important", reconstructRight(parts))
}

func TestComputeIdenticalTextIsAllEqual(t *testing.T) {
	parts := Compute("no changes here at all", "no changes here at all")
	for _, p := range parts {
		assert.Equal(t, inlinepart.KindEqual, p.Kind)
	}
}
