package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArticlePrompt_CarriesTopicAndRules(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildArticlePrompt("Cache invalidation strategies")

	assert.Contains(t, prompt, "Cache invalidation strategies")
	assert.Contains(t, prompt, "Markdown")
	assert.Contains(t, prompt, "https://")
}

func TestBuildTopicQuery(t *testing.T) {
	pb := NewPromptBuilder()

	assert.Equal(t, "Title\n\nBody", pb.BuildTopicQuery("Title", "Body"))
	assert.Equal(t, "Body", pb.BuildTopicQuery("", "Body"))
	assert.Equal(t, "Body", pb.BuildTopicQuery("   ", "Body"))
}

func TestFormatOriginality(t *testing.T) {
	t.Run("no neighbors", func(t *testing.T) {
		got := FormatOriginality(nil, 0.85)
		assert.Equal(t, "No published article is close to this draft.", got)
	})

	t.Run("overlap above threshold", func(t *testing.T) {
		got := FormatOriginality([]SearchResult{{Score: 0.91, Title: "Scaling Postgres"}}, 0.85)
		assert.Contains(t, got, `"Scaling Postgres"`)
		assert.Contains(t, got, "Rework")
	})

	t.Run("below threshold", func(t *testing.T) {
		got := FormatOriginality([]SearchResult{{Score: 0.42, Title: "Scaling Postgres"}}, 0.85)
		assert.Contains(t, got, "looks original")
		assert.Contains(t, got, "0.42")
	})

	t.Run("falls back to id when title missing", func(t *testing.T) {
		got := FormatOriginality([]SearchResult{{Score: 0.95, ID: "article-7"}}, 0.85)
		assert.Contains(t, got, "article-7")
	})
}
