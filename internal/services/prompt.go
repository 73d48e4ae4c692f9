package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildArticlePrompt creates the prompt for generating a blog article draft
// on an interview-prep topic.
func (pb *PromptBuilder) BuildArticlePrompt(topic string) string {
	return fmt.Sprintf(`You are an experienced engineer writing for an interview-preparation blog.

TOPIC:
%s

Write a complete blog article draft about the topic in Markdown.

Requirements:
1. Start with a single H1 title line ("# ...") that names the topic.
2. Use H2 section headings ("## ...") to structure the article.
3. Aim for 600-1200 words across at least five paragraphs.
4. Include one concrete worked example, ideally with a fenced code block.
5. Keep sentences short. Prefer plain language over buzzwords.
6. Cite at least one public reference with a full https:// URL.

Return ONLY the Markdown article, no preamble and no closing remarks.`, topic)
}

// BuildTopicQuery creates the retrieval query used to find published
// articles near a draft's subject.
func (pb *PromptBuilder) BuildTopicQuery(title, body string) string {
	if strings.TrimSpace(title) == "" {
		return body
	}
	return fmt.Sprintf("%s\n\n%s", title, body)
}

// FormatOriginality turns nearest-neighbor search results into the
// originality note stored on a gate report. Scores are cosine
// similarities in [0, 1].
func FormatOriginality(results []SearchResult, threshold float32) string {
	if len(results) == 0 {
		return "No published article is close to this draft."
	}

	top := results[0]
	if top.Score >= threshold {
		title := top.Title
		if title == "" {
			title = top.ID
		}
		return fmt.Sprintf("Draft overlaps with published article %q (similarity %.2f). Rework it before publishing.", title, top.Score)
	}

	return fmt.Sprintf("Closest published article is %.2f similar; the draft looks original.", top.Score)
}
