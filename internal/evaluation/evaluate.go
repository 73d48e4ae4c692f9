// Package evaluation scores a candidate's interview answer against a
// reference answer with deterministic text heuristics: fuzzy keyword
// coverage, word overlap, and answer length, blended into a 0-100 score
// with a hiring verdict and templated feedback. It performs no I/O and
// holds no state; every call is independent.
package evaluation

// Verdict is a five-level hiring recommendation, most favorable first.
type Verdict string

const (
	VerdictStrongHire Verdict = "strong-hire"
	VerdictHire       Verdict = "hire"
	VerdictLeanHire   Verdict = "lean-hire"
	VerdictLeanNoHire Verdict = "lean-no-hire"
	VerdictNoHire     Verdict = "no-hire"
)

// Rank orders verdicts for comparison, 0 being most favorable.
func (v Verdict) Rank() int {
	switch v {
	case VerdictStrongHire:
		return 0
	case VerdictHire:
		return 1
	case VerdictLeanHire:
		return 2
	case VerdictLeanNoHire:
		return 3
	default:
		return 4
	}
}

// maxDisplayTerms caps the covered and missed term lists in the result.
// Scoring always uses the full lists.
const maxDisplayTerms = 5

// Result is the output of one evaluation.
type Result struct {
	Score            int      `json:"score"`
	Verdict          Verdict  `json:"verdict"`
	KeyPointsCovered []string `json:"key_points_covered"`
	KeyPointsMissed  []string `json:"key_points_missed"`
	Feedback         string   `json:"feedback"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
}

// Evaluate scores candidate against reference. When keywords is empty the
// mandatory terms are derived from the reference text instead. It never
// fails: empty or nonsense input degrades to a low score, not an error.
func Evaluate(candidate, reference string, keywords []string) *Result {
	breakdown := scoreAnswer(candidate, reference, keywords)

	return &Result{
		Score:            breakdown.score,
		Verdict:          breakdown.verdict,
		KeyPointsCovered: capTerms(breakdown.coveredTerms, maxDisplayTerms),
		KeyPointsMissed:  capTerms(breakdown.missedTerms, maxDisplayTerms),
		Feedback:         buildFeedback(breakdown),
		Strengths:        buildStrengths(breakdown),
		Improvements:     buildImprovements(breakdown),
	}
}

// capTerms returns a copy of terms truncated to n entries. The copy is
// never nil so the field marshals as [] rather than null.
func capTerms(terms []string, n int) []string {
	if len(terms) > n {
		terms = terms[:n]
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}
