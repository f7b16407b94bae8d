package token

import (
	"strings"
	"unicode"
)

// StopWords is the fixed set of ~180 English function words (articles,
// pronouns, auxiliaries, prepositions, conjunctions, common adverbs)
// used to recognize low-information text for absorption purposes.
var StopWords = buildStopWords()

func buildStopWords() map[string]struct{} {
	words := strings.Fields(`
		a an the
		i me my mine myself we us our ours ourselves
		you your yours yourself yourselves
		he him his himself she her hers herself it its itself
		they them their theirs themselves
		this that these those
		what which who whom whose
		am is are was were be been being
		have has had having
		do does did doing
		a an the and but if or because as until while
		of at by for with about against between into through
		during before after above below to from up down in out on off
		over under again further then once
		here there when where why how
		all any both each few more most other some such
		no nor not only own same so than too very
		s t can will just don should now
		d ll m o re ve y
		ain aren couldn didn doesn hadn hasn haven isn ma mightn
		mustn needn shan shouldn wasn weren won wouldn
		also however therefore thus hence moreover furthermore
		yet still even though although whether
		shall may might must could would should
		one ones
	`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the letter-only-normalized form of w is in
// StopWords.
func IsStopWord(w string) bool {
	_, ok := StopWords[letterOnly(w)]
	return ok
}

// letterOnly lower-cases w and drops every rune that is not a letter.
func letterOnly(w string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(w) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsOnlyStopWords reports whether every whitespace-split token in s is,
// after letter-only normalization, either empty or a stop word. Pure-punctuation
// tokens normalize to the empty string and therefore count as stop
// words for this purpose.
func IsOnlyStopWords(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		n := letterOnly(f)
		if n == "" {
			continue
		}
		if _, ok := StopWords[n]; !ok {
			return false
		}
	}
	return true
}
