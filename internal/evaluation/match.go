package evaluation

import "strings"

// Similarity thresholds for WordSimilar, expressed as fractions of the
// shorter word's length.
const (
	prefixSimilarityRatio = 0.6
	charSimilarityRatio   = 0.7
)

// containsPhrase reports whether needle occurs verbatim in haystack. Both
// arguments must already be lower-cased.
func containsPhrase(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// containsWithVariants tests needle and every known transcription variant of
// it for presence in haystack.
func containsWithVariants(haystack, needle string) bool {
	if containsPhrase(haystack, needle) {
		return true
	}
	for _, variant := range variantsFor(needle) {
		if containsPhrase(haystack, variant) {
			return true
		}
	}
	return false
}

// WordSimilar reports whether two lower-cased words are close enough to be
// treated as the same word after transcription noise. Exact matches always
// pass; words shorter than three characters must match exactly. Longer words
// pass on containment, on a shared prefix covering at least 60% of the
// shorter word, or on a multiset character intersection covering at least
// 70% of the shorter word.
func WordSimilar(a, b string) bool {
	if a == b {
		return a != ""
	}

	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesA) < 3 || len(runesB) < 3 {
		return false
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	shorter := len(runesA)
	if len(runesB) < shorter {
		shorter = len(runesB)
	}

	prefix := 0
	for prefix < len(runesA) && prefix < len(runesB) && runesA[prefix] == runesB[prefix] {
		prefix++
	}
	if float64(prefix) >= prefixSimilarityRatio*float64(shorter) {
		return true
	}

	// Multiset intersection: each character of b is consumable once.
	pool := make(map[rune]int, len(runesB))
	for _, r := range runesB {
		pool[r]++
	}
	common := 0
	for _, r := range runesA {
		if pool[r] > 0 {
			pool[r]--
			common++
		}
	}
	return float64(common) >= charSimilarityRatio*float64(shorter)
}

// FuzzyMatch reports whether term is present in text, tolerating
// speech-to-text noise. Strategies escalate: verbatim containment, the
// variant table, then word-level similarity against each word of text. The
// first hit wins. Blank terms never match.
func FuzzyMatch(text, term string) bool {
	haystack := strings.ToLower(strings.TrimSpace(text))
	needle := strings.ToLower(strings.TrimSpace(term))
	if haystack == "" || needle == "" {
		return false
	}

	if containsWithVariants(haystack, needle) {
		return true
	}

	for _, word := range strings.Fields(haystack) {
		if WordSimilar(word, needle) {
			return true
		}
	}
	return false
}
