package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkText_ShortTextIsOneChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("A single short paragraph.", 1000, 200)

	assert.Equal(t, []string{"A single short paragraph."}, chunks)
}

func TestChunkText_PacksParagraphsTogether(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("First paragraph.\n\nSecond paragraph.", 1000, 0)

	assert.Equal(t, []string{"First paragraph.\n\nSecond paragraph."}, chunks)
}

func TestChunkText_SplitsOnParagraphBoundary(t *testing.T) {
	chunker := NewTextChunker()
	para1 := strings.Repeat("a", 600)
	para2 := strings.Repeat("b", 600)

	chunks := chunker.ChunkText(para1+"\n\n"+para2, 1000, 0)

	assert.Equal(t, []string{para1, para2}, chunks)
}

func TestChunkText_OverlapCarriesTrailingContext(t *testing.T) {
	chunker := NewTextChunker()
	para1 := strings.Repeat("a", 600)
	para2 := strings.Repeat("b", 600)

	chunks := chunker.ChunkText(para1+"\n\n"+para2, 1000, 100)

	assert.Len(t, chunks, 2)
	assert.Equal(t, para1, chunks[0])
	assert.Equal(t, strings.Repeat("a", 100)+"\n\n"+para2, chunks[1])
}

func TestChunkText_OversizedParagraphSplitsOnSentences(t *testing.T) {
	chunker := NewTextChunker()
	para := strings.TrimSpace(strings.Repeat("Alpha beta gamma delta epsilon. ", 20))

	chunks := chunker.ChunkText(para, 200, 0)

	assert.Len(t, chunks, 4)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 200)
	}
}

func TestChunkText_BadParamsFallBackToDefaults(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("Still works.", 0, -5)

	assert.Equal(t, []string{"Still works."}, chunks)
}

func TestChunkText_EmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("\n\n  \n\n", 1000, 200))
}
