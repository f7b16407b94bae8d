// Package block defines the handle the diff core operates on.
//
// Markdown parsing and AST-to-block extraction live outside this module;
// a caller is expected to produce a []Block from whatever document tree
// it already has (see the Source interface below, used only in docs and
// tests).
package block

// Block is an opaque handle to a parsed document node (heading,
// paragraph, blockquote, code block, list) plus its derived plaintext.
// Blocks are immutable once produced and are borrowed, never copied, by
// the diff pairs that reference them.
type Block struct {
	Text string
	// Line is the source line number, used only for downstream
	// rendering. -1 means unknown.
	Line int
}

// NoLine is the Line value for a Block with no known source position.
const NoLine = -1

// New returns a Block with no known line number.
func New(text string) Block {
	return Block{Text: text, Line: NoLine}
}

// Source is the external collaborator that turns a parsed document into
// a flat, ordered block sequence. It is consumed by callers of this
// module, never by the module itself.
type Source interface {
	// ExtractBlocks returns the top-level block nodes of doc, in
	// document order.
	ExtractBlocks(doc any) []Block
	// BlockToText returns the canonicalized plaintext of a single
	// block. It must be idempotent.
	BlockToText(b Block) string
}
