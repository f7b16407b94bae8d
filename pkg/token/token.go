// Package token implements the word-level tokenizer, normalization, and
// bigram similarity primitives the diff core is built on (spec §4.1).
package token

import (
	"regexp"
	"strings"
	"unicode"
)

// Token is a single non-space run plus its trailing whitespace.
type Token struct {
	// Word is the non-space run itself.
	Word string
	// Raw is Word plus any whitespace that followed it in the source.
	// Concatenating every token's Raw reproduces the input from its
	// first word on: whitespace before the first word is not part of
	// any token, and whitespace after the final word stays in the final
	// token's Raw.
	Raw string
	// Norm is the normalized form of Word, used for fuzzy matching.
	Norm string
}

var tokenRe = regexp.MustCompile(`(\S+)(\s*)`)

// Tokenize splits s into a finite ordered sequence of tokens. Join is
// its inverse except for whitespace before the first word, which no
// token captures; whitespace after the final word is kept.
func Tokenize(s string) []Token {
	matches := tokenRe.FindAllStringSubmatchIndex(s, -1)
	toks := make([]Token, 0, len(matches))
	for _, m := range matches {
		word := s[m[2]:m[3]]
		raw := s[m[2]:m[5]]
		toks = append(toks, Token{Word: word, Raw: raw, Norm: Normalize(word)})
	}
	return toks
}

// Join concatenates the raw form of every token, reproducing the
// original tokenized string from its first word on, including any
// whitespace after the last word (carried by the final token's Raw).
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Raw)
	}
	return b.String()
}

// leadingStrip is the set of characters stripped from the start of a
// word during normalization.
const leadingStrip = `'"([{<`

// trailingStrip is the set of characters stripped from the end of a
// word during normalization.
const trailingStrip = `.,;:!?'")]}>`

// Normalize lower-cases word and strips a leading/trailing punctuation
// shell, for use in fuzzy (non-exact) token comparisons.
func Normalize(word string) string {
	w := strings.ToLower(word)
	w = strings.TrimLeft(w, leadingStrip)
	w = strings.TrimRight(w, trailingStrip)
	return w
}

// IsPurePunctuation reports whether s is non-empty and contains no
// letters or digits.
func IsPurePunctuation(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
