// Package qualitygate scores blog article drafts against publication
// heuristics: structure, readability, coherence, technical depth, and
// citation health. Scoring is deterministic given its inputs; the only
// I/O lives in the link checker, which runs separately and feeds its
// findings in.
package qualitygate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"prepverse/answer-evaluator/internal/evaluation"
)

// Dimension weights, summing to 1.
const (
	structureWeight   = 0.25
	readabilityWeight = 0.20
	coherenceWeight   = 0.20
	technicalWeight   = 0.20
	citationWeight    = 0.15
)

const DefaultPassThreshold = 70

type Config struct {
	// PassThreshold is the minimum total score for a passing report.
	PassThreshold int
	// MinWords and MaxWords bound the acceptable article length.
	MinWords int
	MaxWords int
}

func (c Config) withDefaults() Config {
	if c.PassThreshold <= 0 {
		c.PassThreshold = DefaultPassThreshold
	}
	if c.MinWords <= 0 {
		c.MinWords = 400
	}
	if c.MaxWords <= 0 {
		c.MaxWords = 3000
	}
	return c
}

type Draft struct {
	Title string
	Body  string
}

// LinkResult is one URL's liveness outcome, produced by the link checker.
type LinkResult struct {
	URL        string
	Alive      bool
	StatusCode int
	Detail     string
}

type Report struct {
	Score  int
	Passed bool

	Structure   int
	Readability int
	Coherence   int
	Technical   int
	Citations   int

	Issues []string
}

var (
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	codeFencePattern = regexp.MustCompile("(?m)^```")
	examplePattern   = regexp.MustCompile(`(?i)\bfor (example|instance)\b|\be\.g\.`)
	transitionWords  = regexp.MustCompile(`(?i)\b(however|therefore|moreover|furthermore|first|second|finally|next|because|instead|meanwhile|consequently|additionally|as a result|in practice|for example)\b`)
)

// Score grades a draft. Link findings come from a prior Check run; pass
// nil when the draft has no links or the checker was skipped.
func Score(draft Draft, links []LinkResult, cfg Config) Report {
	cfg = cfg.withDefaults()

	paragraphs := splitParagraphs(draft.Body)
	words := len(strings.Fields(draft.Body))

	// Never nil so the field marshals as [] rather than null.
	issues := make([]string, 0, 8)

	structure, structureIssues := scoreStructure(draft.Title, draft.Body, paragraphs, words, cfg)
	issues = append(issues, structureIssues...)

	readability, readabilityIssues := scoreReadability(paragraphs, words, draft.Body)
	issues = append(issues, readabilityIssues...)

	coherence, coherenceIssues := scoreCoherence(paragraphs)
	issues = append(issues, coherenceIssues...)

	technical, technicalIssues := scoreTechnical(draft.Body)
	issues = append(issues, technicalIssues...)

	citations, citationIssues := scoreCitations(links)
	issues = append(issues, citationIssues...)

	total := int(math.Round(
		float64(structure)*structureWeight +
			float64(readability)*readabilityWeight +
			float64(coherence)*coherenceWeight +
			float64(technical)*technicalWeight +
			float64(citations)*citationWeight))
	total = clampScore(total)

	return Report{
		Score:       total,
		Passed:      total >= cfg.PassThreshold,
		Structure:   structure,
		Readability: readability,
		Coherence:   coherence,
		Technical:   technical,
		Citations:   citations,
		Issues:      issues,
	}
}

func scoreStructure(title, body string, paragraphs []string, words int, cfg Config) (int, []string) {
	score := 100
	var issues []string

	if strings.TrimSpace(title) == "" {
		score -= 15
		issues = append(issues, "draft has no title")
	}

	if words < cfg.MinWords {
		score -= 40
		issues = append(issues, fmt.Sprintf("too short: %d words, minimum is %d", words, cfg.MinWords))
	} else if words > cfg.MaxWords {
		score -= 15
		issues = append(issues, fmt.Sprintf("very long: %d words, consider trimming below %d", words, cfg.MaxWords))
	}

	if len(paragraphs) < 3 {
		score -= 25
		issues = append(issues, "fewer than three paragraphs; break the content up")
	}

	if !headingPattern.MatchString(body) {
		score -= 20
		issues = append(issues, "no section headings found")
	}

	return clampScore(score), issues
}

func scoreReadability(paragraphs []string, words int, body string) (int, []string) {
	score := 100
	var issues []string

	sentences := splitSentences(body)
	if len(sentences) > 0 {
		avg := float64(words) / float64(len(sentences))
		if avg > 35 {
			score -= 50
			issues = append(issues, fmt.Sprintf("average sentence runs %.0f words; aim under 25", avg))
		} else if avg > 25 {
			score -= 25
			issues = append(issues, fmt.Sprintf("average sentence runs %.0f words; shorter sentences read better", avg))
		}
	}

	overlong := 0
	for _, p := range paragraphs {
		if len(strings.Fields(p)) > 150 {
			overlong++
		}
	}
	if overlong > 0 {
		if overlong > 2 {
			overlong = 2
		}
		score -= overlong * 20
		issues = append(issues, "one or more paragraphs exceed 150 words")
	}

	return clampScore(score), issues
}

// scoreCoherence checks that adjacent paragraphs share vocabulary and that
// the prose uses transition words. Word similarity reuses the evaluation
// package's predicate so both validators agree on what "the same word"
// means.
func scoreCoherence(paragraphs []string) (int, []string) {
	if len(paragraphs) < 2 {
		return 50, []string{"not enough paragraphs to judge flow"}
	}

	connected := 0
	pairs := len(paragraphs) - 1
	for i := 1; i < len(paragraphs); i++ {
		if paragraphsConnected(paragraphs[i-1], paragraphs[i]) {
			connected++
		}
	}
	flow := float64(connected) / float64(pairs)

	transitions := len(transitionWords.FindAllString(strings.Join(paragraphs, "\n"), -1))
	if transitions > 6 {
		transitions = 6
	}

	score := int(math.Round(flow*70 + float64(transitions)/6*30))

	var issues []string
	if flow < 0.5 {
		issues = append(issues, "adjacent paragraphs share little vocabulary; the narrative may be jumping around")
	}
	if transitions < 2 {
		issues = append(issues, "few transition words; connect the sections explicitly")
	}

	return clampScore(score), issues
}

// paragraphsConnected reports whether at least 15% of the later
// paragraph's words fuzzily reappear from the earlier one.
func paragraphsConnected(prev, next string) bool {
	prevWords := evaluation.Tokenize(prev)
	nextWords := evaluation.Tokenize(next)
	if len(prevWords) == 0 || len(nextWords) == 0 {
		return false
	}

	matched := 0
	for _, w := range nextWords {
		for _, p := range prevWords {
			if evaluation.WordSimilar(w, p) {
				matched++
				break
			}
		}
	}
	return float64(matched) >= 0.15*float64(len(nextWords))
}

func scoreTechnical(body string) (int, []string) {
	terms := evaluation.ExtractKeyTerms(body)

	score := len(terms) * 8
	if codeFencePattern.MatchString(body) {
		score += 10
	}
	if examplePattern.MatchString(body) {
		score += 10
	}
	score = clampScore(score)

	var issues []string
	if len(terms) < 3 {
		issues = append(issues, "little technical vocabulary; add concrete detail")
	}

	return score, issues
}

func scoreCitations(links []LinkResult) (int, []string) {
	if len(links) == 0 {
		return 50, []string{"no source links; cite at least one reference"}
	}

	alive := 0
	var issues []string
	for _, link := range links {
		if link.Alive {
			alive++
		} else if len(issues) < 3 {
			issues = append(issues, fmt.Sprintf("dead link: %s", link.URL))
		}
	}

	score := int(math.Round(float64(alive) / float64(len(links)) * 100))
	return clampScore(score), issues
}

func splitParagraphs(body string) []string {
	parts := strings.Split(body, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paragraphs = append(paragraphs, part)
	}
	return paragraphs
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
