package token

// SharedWordRunScore returns the length of the longest contiguous
// common run of raw (exact) word tokens between a and b, with a
// minimum run length of 1. It returns 0 if the two texts share no
// single token in sequence.
func SharedWordRunScore(a, b string) int {
	ta, tb := Tokenize(a), Tokenize(b)
	anchor, ok := LongestRun(ta, tb, 0, len(ta), 0, len(tb), 1, Exact)
	if !ok {
		return 0
	}
	return anchor.Len
}
