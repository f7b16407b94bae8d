package inline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/richdiff/richdiff/pkg/inlinepart"
)

// emphasisRe matches **bold** and *italic* runs so they can be hidden
// behind an opaque, space-free placeholder before tokenization — a
// tokenizer splitting on whitespace would otherwise split emphasis
// markers mid-token.
var emphasisRe = regexp.MustCompile(`\*\*[^*\n]+\*\*|\*[^*\n]+\*`)

type markdownGuard struct {
	placeholders []string
}

func placeholderFor(i int) string {
	return fmt.Sprintf("\x00MD%d\x00", i)
}

func (g *markdownGuard) hide(s string) string {
	return emphasisRe.ReplaceAllStringFunc(s, func(m string) string {
		idx := len(g.placeholders)
		g.placeholders = append(g.placeholders, m)
		return placeholderFor(idx)
	})
}

func (g *markdownGuard) restoreString(s string) string {
	for i, m := range g.placeholders {
		s = strings.ReplaceAll(s, placeholderFor(i), m)
	}
	return s
}

func (g *markdownGuard) restoreParts(parts []inlinepart.Part) []inlinepart.Part {
	for i := range parts {
		parts[i].Value = g.restoreString(parts[i].Value)
		if len(parts[i].Children) > 0 {
			parts[i].Children = g.restoreParts(parts[i].Children)
		}
	}
	return parts
}
