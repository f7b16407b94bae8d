// Package rules implements the small declarative pattern-rewrite system
// used to mark (and optionally remove) low-information inline-diff
// parts, per spec §4.8.
package rules

import "github.com/richdiff/richdiff/pkg/inlinepart"

// Context is the view a Rule's Condition and Transform get of the part
// array around a candidate match. Condition only reads it; a Transform
// may write to Parts outside its matched window (the default rules
// grow a neighboring part this way).
type Context struct {
	Parts []inlinepart.Part
	Index int
}

// At returns the part at ctx.Index+offset, and whether that index is
// in bounds.
func (ctx Context) At(offset int) (inlinepart.Part, bool) {
	i := ctx.Index + offset
	if i < 0 || i >= len(ctx.Parts) {
		return inlinepart.Part{}, false
	}
	return ctx.Parts[i], true
}

// Rule is a single pattern-rewrite: a kind pattern to match at some
// index, a condition gating whether it applies, and either a mark
// (AbsorbLevel) or a transform (replacement parts).
type Rule struct {
	Name        string
	Pattern     []inlinepart.Kind
	AbsorbLevel inlinepart.AbsorbLevel
	Condition   func(ctx Context) bool
	// Transform returns the replacement parts for the matched window.
	// It is only consulted in Transform mode.
	Transform func(ctx Context) []inlinepart.Part
}

func (r Rule) matchesAt(parts []inlinepart.Part, i int) bool {
	if i+len(r.Pattern) > len(parts) {
		return false
	}
	for k, want := range r.Pattern {
		if parts[i+k].Kind != want {
			return false
		}
	}
	return true
}

// Engine holds a priority-ordered list of rules and applies them either
// in mark-only mode (tagging AbsorbLevel, never deleting text) or
// transform mode (replacing matched parts, with deletions absorbed into
// adjacent same-kind changes).
type Engine struct {
	Rules []Rule
}

// NewEngine returns an engine with the default priority-ordered
// stop-word absorption rules (spec §4.8).
func NewEngine() Engine {
	return Engine{Rules: DefaultRules()}
}

const maxIterations = 10

// Mark applies the engine's rules in mark-only mode until the part
// slice is stable or 10 iterations have run. Matched parts have their
// AbsorbLevel set; no text is deleted.
func (e Engine) Mark(parts []inlinepart.Part) []inlinepart.Part {
	cur := append([]inlinepart.Part(nil), parts...)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i := 0; i < len(cur); i++ {
			ctx := Context{Parts: cur, Index: i}
			for _, r := range e.Rules {
				if !r.matchesAt(cur, i) || !r.Condition(ctx) {
					continue
				}
				for k := range r.Pattern {
					if cur[i+k].AbsorbLevel != r.AbsorbLevel {
						cur[i+k].AbsorbLevel = r.AbsorbLevel
						changed = true
					}
				}
				break
			}
		}
		if !changed {
			break
		}
	}
	return cur
}

// Transform applies the engine's rules in transform mode until the part
// slice is stable or 10 iterations have run. A matched window is
// replaced wholesale by Rule.Transform's return value.
func (e Engine) Transform(parts []inlinepart.Part) []inlinepart.Part {
	cur := append([]inlinepart.Part(nil), parts...)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i := 0; i < len(cur); i++ {
			ctx := Context{Parts: cur, Index: i}
			matched := false
			for _, r := range e.Rules {
				if !r.matchesAt(cur, i) || !r.Condition(ctx) || r.Transform == nil {
					continue
				}
				repl := r.Transform(ctx)
				next := make([]inlinepart.Part, 0, len(cur)-len(r.Pattern)+len(repl))
				next = append(next, cur[:i]...)
				next = append(next, repl...)
				next = append(next, cur[i+len(r.Pattern):]...)
				cur = next
				matched = true
				changed = true
				break
			}
			if matched {
				break
			}
		}
		if !changed {
			break
		}
	}
	return cur
}
