package qualitygate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultPassThreshold, cfg.PassThreshold)
	assert.Equal(t, 400, cfg.MinWords)
	assert.Equal(t, 3000, cfg.MaxWords)

	custom := Config{PassThreshold: 80}.withDefaults()
	assert.Equal(t, 80, custom.PassThreshold)
	assert.Equal(t, 400, custom.MinWords)
}

func TestScoreStructure(t *testing.T) {
	cfg := Config{}.withDefaults()
	para := strings.TrimSpace(strings.Repeat("word ", 150))
	longPara := strings.TrimSpace(strings.Repeat("word ", 1100))

	tests := []struct {
		name       string
		title      string
		body       string
		wantScore  int
		wantIssues int
	}{
		{
			name:       "complete draft scores full marks",
			title:      "Scaling Postgres",
			body:       "## Heading\n\n" + para + "\n\n" + para + "\n\n" + para,
			wantScore:  100,
			wantIssues: 0,
		},
		{
			name:       "bare fragment loses every structure point",
			title:      "",
			body:       "tiny draft",
			wantScore:  0,
			wantIssues: 4,
		},
		{
			name:       "overlong draft is docked but passes",
			title:      "Scaling Postgres",
			body:       "## Heading\n\n" + longPara + "\n\n" + longPara + "\n\n" + longPara,
			wantScore:  85,
			wantIssues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := splitParagraphs(tt.body)
			words := len(strings.Fields(tt.body))
			score, issues := scoreStructure(tt.title, tt.body, paragraphs, words, cfg)
			assert.Equal(t, tt.wantScore, score)
			assert.Len(t, issues, tt.wantIssues)
		})
	}
}

func TestScoreReadability(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantScore  int
		wantIssues int
	}{
		{
			name:       "short sentences score full marks",
			body:       "Short. Nice. Good.",
			wantScore:  100,
			wantIssues: 0,
		},
		{
			name:       "run-on sentence over 35 words",
			body:       strings.TrimSpace(strings.Repeat("word ", 40)),
			wantScore:  50,
			wantIssues: 1,
		},
		{
			name:       "sentences averaging 30 words",
			body:       strings.TrimSpace(strings.Repeat("word ", 30)),
			wantScore:  75,
			wantIssues: 1,
		},
		{
			name:       "single paragraph over 150 words",
			body:       strings.TrimSpace(strings.Repeat("one two three four five. ", 31)),
			wantScore:  80,
			wantIssues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := splitParagraphs(tt.body)
			words := len(strings.Fields(tt.body))
			score, issues := scoreReadability(paragraphs, words, tt.body)
			assert.Equal(t, tt.wantScore, score)
			assert.Len(t, issues, tt.wantIssues)
		})
	}
}

func TestScoreCoherence(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		wantScore  int
		wantIssues int
	}{
		{
			name:       "single paragraph cannot be judged",
			paragraphs: []string{"Only one paragraph here."},
			wantScore:  50,
			wantIssues: 1,
		},
		{
			name: "linked paragraphs with transitions",
			paragraphs: []string{
				"We scaled the database with sharding and replication across regions.",
				"However, the replication lag between database shards caused stale reads. Therefore we added monitoring.",
			},
			wantScore:  80,
			wantIssues: 0,
		},
		{
			name: "linked paragraphs without transitions",
			paragraphs: []string{
				"The cache stores session data.",
				"The cache also stores rate counters.",
			},
			wantScore:  70,
			wantIssues: 1,
		},
		{
			name: "unrelated paragraphs share nothing",
			paragraphs: []string{
				"Quantum entanglement links particle pairs.",
				"Buy good fresh bread today.",
			},
			wantScore:  0,
			wantIssues: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := scoreCoherence(tt.paragraphs)
			assert.Equal(t, tt.wantScore, score)
			assert.Len(t, issues, tt.wantIssues)
		})
	}
}

func TestScoreTechnical(t *testing.T) {
	t.Run("terms alone", func(t *testing.T) {
		score, issues := scoreTechnical("We deployed PostgreSQL and Redis behind a load balancer.")
		assert.Equal(t, 24, score)
		assert.Empty(t, issues)
	})

	t.Run("terms plus code fence and example", func(t *testing.T) {
		body := "We cache responses in Redis and measure latency.\n\nFor example:\n\n```go\nclient.Get(ctx, key)\n```\n"
		score, issues := scoreTechnical(body)
		assert.Equal(t, 44, score)
		assert.Empty(t, issues)
	})

	t.Run("vague prose is flagged", func(t *testing.T) {
		score, issues := scoreTechnical("It went well and everyone was happy about it.")
		assert.Equal(t, 0, score)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "little technical vocabulary")
	})
}

func TestScoreCitations(t *testing.T) {
	t.Run("no links is neutral with an issue", func(t *testing.T) {
		score, issues := scoreCitations(nil)
		assert.Equal(t, 50, score)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "no source links")
	})

	t.Run("all links alive", func(t *testing.T) {
		score, issues := scoreCitations([]LinkResult{
			{URL: "https://example.com/a", Alive: true},
			{URL: "https://example.com/b", Alive: true},
		})
		assert.Equal(t, 100, score)
		assert.Empty(t, issues)
	})

	t.Run("half the links dead", func(t *testing.T) {
		score, issues := scoreCitations([]LinkResult{
			{URL: "https://example.com/a", Alive: true},
			{URL: "https://example.com/gone", Alive: false},
		})
		assert.Equal(t, 50, score)
		require.Len(t, issues, 1)
		assert.Equal(t, "dead link: https://example.com/gone", issues[0])
	})

	t.Run("one of three alive rounds down", func(t *testing.T) {
		score, _ := scoreCitations([]LinkResult{
			{URL: "https://example.com/a", Alive: true},
			{URL: "https://example.com/b", Alive: false},
			{URL: "https://example.com/c", Alive: false},
		})
		assert.Equal(t, 33, score)
	})

	t.Run("dead link issues cap at three", func(t *testing.T) {
		links := make([]LinkResult, 5)
		for i := range links {
			links[i] = LinkResult{URL: "https://example.com/dead", Alive: false}
		}
		score, issues := scoreCitations(links)
		assert.Equal(t, 0, score)
		assert.Len(t, issues, 3)
	})
}

func TestScore_PublishableDraft(t *testing.T) {
	para := "The cache layer keeps profile reads fast. However, the cache invalidation path needs care. " +
		"Therefore we log every cache flush and measure latency. For example, the p99 latency stays under ten milliseconds."

	parts := []string{"## Caching profile reads"}
	for i := 0; i < 13; i++ {
		parts = append(parts, para)
	}
	draft := Draft{
		Title: "Caching profile reads at scale",
		Body:  strings.Join(parts, "\n\n"),
	}
	links := []LinkResult{{URL: "https://example.com/docs", Alive: true, StatusCode: 200}}

	report := Score(draft, links, Config{})

	assert.True(t, report.Passed)
	assert.GreaterOrEqual(t, report.Score, 85)
	assert.Equal(t, 100, report.Structure)
	assert.Equal(t, 100, report.Readability)
	assert.Equal(t, 100, report.Coherence)
	assert.Equal(t, 100, report.Citations)
	assert.GreaterOrEqual(t, report.Technical, 40)
	assert.Empty(t, report.Issues)
}

func TestScore_RejectsBareFragment(t *testing.T) {
	report := Score(Draft{Title: "", Body: "too short"}, nil, Config{})

	assert.False(t, report.Passed)
	assert.Less(t, report.Score, 50)
	assert.Equal(t, 0, report.Structure)
	assert.Contains(t, report.Issues, "draft has no title")
	assert.Contains(t, report.Issues, "no source links; cite at least one reference")
	assert.NotNil(t, report.Issues)
}

func TestSplitParagraphs(t *testing.T) {
	paragraphs := splitParagraphs("first block\n\n\n\nsecond block\n\n   \n\nthird")
	assert.Equal(t, []string{"first block", "second block", "third"}, paragraphs)

	assert.Empty(t, splitParagraphs(""))
	assert.Empty(t, splitParagraphs("   \n\n  "))
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("One here. Two there! Three anywhere?")
	assert.Len(t, sentences, 3)

	assert.Len(t, splitSentences("no terminator at all"), 1)
	assert.Empty(t, splitSentences(""))
}
