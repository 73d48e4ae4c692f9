package evaluation

import (
	"math"
	"strings"
)

// Score component weights. Keyword coverage dominates; word overlap and
// answer length share the rest.
const (
	keywordWeight = 60.0
	overlapWeight = 20.0
	lengthWeight  = 20.0

	// substantialAnswerWords is the word count treated as a full-length
	// spoken answer for the length component.
	substantialAnswerWords = 40.0

	// overlapVocabularyRatio is the fraction of reference vocabulary that
	// must reappear (fuzzily) in the candidate answer for full overlap
	// credit. Kept as-is for behavioral compatibility with the scoring
	// model this was tuned against.
	overlapVocabularyRatio = 0.2
)

// scoreBreakdown carries the scorer's intermediate values so the feedback
// builders can condition on them without recomputing.
type scoreBreakdown struct {
	score          int
	verdict        Verdict
	coveredTerms   []string
	missedTerms    []string
	keywordPercent float64
	wordOverlap    float64
	candidateWords int
	referenceWords int
}

// scoreAnswer runs the full scoring pipeline: keyword partition, fuzzy word
// overlap, length credit, short-answer penalty, then the verdict table. It
// never fails; empty inputs degrade to zero scores.
func scoreAnswer(candidate, reference string, keywords []string) scoreBreakdown {
	candidateWords := Tokenize(candidate)
	referenceWords := Tokenize(reference)

	if len(keywords) == 0 {
		keywords = ExtractKeyTerms(reference)
	}

	covered := make([]string, 0, len(keywords))
	missed := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if FuzzyMatch(candidate, keyword) {
			covered = append(covered, strings.ToLower(keyword))
		} else {
			missed = append(missed, strings.ToLower(keyword))
		}
	}

	coverage := 0.0
	if len(keywords) > 0 {
		coverage = float64(len(covered)) / float64(len(keywords))
	}

	overlap := wordOverlap(candidateWords, referenceWords)

	lengthScore := float64(len(candidateWords)) / substantialAnswerWords
	if lengthScore > 1 {
		lengthScore = 1
	}

	raw := (coverage*keywordWeight + overlap*overlapWeight + lengthScore*lengthWeight) *
		shortAnswerPenalty(len(candidateWords))

	score := int(math.Round(clamp(raw, 0, 100)))
	keywordPercent := coverage * 100

	return scoreBreakdown{
		score:          score,
		verdict:        verdictFor(score, keywordPercent),
		coveredTerms:   covered,
		missedTerms:    missed,
		keywordPercent: keywordPercent,
		wordOverlap:    overlap,
		candidateWords: len(candidateWords),
		referenceWords: len(referenceWords),
	}
}

// wordOverlap counts candidate words with at least one similar reference
// word, then normalizes against a fifth of the reference vocabulary so
// paraphrased answers are not punished for skipping filler words.
func wordOverlap(candidateWords, referenceWords []string) float64 {
	if len(candidateWords) == 0 || len(referenceWords) == 0 {
		return 0
	}

	matched := 0
	for _, candidate := range candidateWords {
		for _, reference := range referenceWords {
			if WordSimilar(candidate, reference) {
				matched++
				break
			}
		}
	}

	denominator := float64(len(referenceWords)) * overlapVocabularyRatio
	if denominator < 1 {
		denominator = 1
	}
	overlap := float64(matched) / denominator
	if overlap > 1 {
		overlap = 1
	}
	return overlap
}

// shortAnswerPenalty dampens the whole score below fixed word counts. The
// gate is multiplicative so keyword density alone cannot rescue a
// three-word answer.
func shortAnswerPenalty(words int) float64 {
	switch {
	case words < 10:
		return 0.2
	case words < 20:
		return 0.5
	case words < 30:
		return 0.8
	default:
		return 1
	}
}

// verdictFor maps (score, keyword percent) to a hiring verdict. Tiers are
// checked from strictest down and both conditions must hold.
func verdictFor(score int, keywordPercent float64) Verdict {
	switch {
	case keywordPercent >= 70 && score >= 70:
		return VerdictStrongHire
	case keywordPercent >= 50 && score >= 55:
		return VerdictHire
	case keywordPercent >= 35 && score >= 40:
		return VerdictLeanHire
	case keywordPercent >= 20 && score >= 25:
		return VerdictLeanNoHire
	default:
		return VerdictNoHire
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
