package evaluation

import (
	"fmt"
	"strings"
)

// maxFeedbackItems caps the strengths and improvements lists.
const maxFeedbackItems = 4

// buildFeedback returns the one-line summary sentence for a score band,
// referencing how many key concepts the answer covered.
func buildFeedback(b scoreBreakdown) string {
	covered := len(b.coveredTerms)
	switch {
	case b.score >= 70:
		return fmt.Sprintf("Excellent answer. You covered %d key concepts with strong depth and detail.", covered)
	case b.score >= 55:
		return fmt.Sprintf("Good answer. You touched on %d key concepts, though some areas could use more depth.", covered)
	case b.score >= 40:
		return fmt.Sprintf("Decent attempt. You mentioned %d key concepts, but the answer needs more substance and specifics.", covered)
	case b.score >= 25:
		return fmt.Sprintf("Weak answer. Only %d key concepts came through, and the response lacks the detail interviewers expect.", covered)
	default:
		return "This answer misses the key concepts the question is probing for. Review the reference answer and try again."
	}
}

// buildStrengths lists what the answer did well. Always returns at least
// one entry.
func buildStrengths(b scoreBreakdown) []string {
	strengths := make([]string, 0, maxFeedbackItems)

	switch {
	case len(b.coveredTerms) >= 3:
		strengths = append(strengths, fmt.Sprintf("Strong coverage of core concepts: %s", strings.Join(capTerms(b.coveredTerms, 3), ", ")))
	case len(b.coveredTerms) > 0:
		strengths = append(strengths, fmt.Sprintf("Mentioned relevant concepts: %s", strings.Join(b.coveredTerms, ", ")))
	}

	if b.candidateWords >= int(substantialAnswerWords) {
		strengths = append(strengths, "Substantial answer length shows engagement with the question")
	} else if b.referenceWords > 0 && b.candidateWords >= b.referenceWords*3/4 {
		strengths = append(strengths, "Answer length is proportionate to the question's depth")
	}

	if b.score >= 70 {
		strengths = append(strengths, "Overall response quality is at or above the hiring bar")
	} else if b.wordOverlap >= 0.7 {
		strengths = append(strengths, "Good use of the vocabulary the question calls for")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Attempted to answer the question")
	}
	if len(strengths) > maxFeedbackItems {
		strengths = strengths[:maxFeedbackItems]
	}
	return strengths
}

// buildImprovements lists concrete followups, padded with a generic
// structure suggestion so the list is never empty.
func buildImprovements(b scoreBreakdown) []string {
	improvements := make([]string, 0, maxFeedbackItems)

	if len(b.missedTerms) > 0 {
		improvements = append(improvements, fmt.Sprintf("Work these missing concepts into your answer: %s", strings.Join(capTerms(b.missedTerms, 3), ", ")))
	}
	if b.candidateWords < 30 {
		improvements = append(improvements, "Expand your answer with a concrete example from your own experience")
	}
	if b.score < 55 {
		improvements = append(improvements, "Re-read the reference answer and note which points yours skipped")
	}
	improvements = append(improvements, "Structure responses with the STAR method: Situation, Task, Action, Result")

	if len(improvements) > maxFeedbackItems {
		improvements = improvements[:maxFeedbackItems]
	}
	return improvements
}
