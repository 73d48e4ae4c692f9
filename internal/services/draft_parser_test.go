package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDraftFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile_MarkdownWithTitle(t *testing.T) {
	parser := NewDraftParserService()
	path := writeDraftFile(t, "draft.md", "# My Title\n\nFirst para.\n\nSecond para.\n")

	draft, err := parser.ParseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "My Title", draft.Title)
	assert.Equal(t, "First para.\n\nSecond para.", draft.Body)
}

func TestParseFile_PlainTextHasNoTitle(t *testing.T) {
	parser := NewDraftParserService()
	path := writeDraftFile(t, "notes.txt", "just notes\nmore notes\n")

	draft, err := parser.ParseFile(path)

	require.NoError(t, err)
	assert.Empty(t, draft.Title)
	assert.Equal(t, "just notes\nmore notes", draft.Body)
}

func TestParseFile_TitleWithoutBody(t *testing.T) {
	parser := NewDraftParserService()
	path := writeDraftFile(t, "empty.md", "# Only A Title\n")

	_, err := parser.ParseFile(path)

	assert.ErrorContains(t, err, "no text content")
}

func TestParseFile_MissingFile(t *testing.T) {
	parser := NewDraftParserService()

	_, err := parser.ParseFile(filepath.Join(t.TempDir(), "missing.md"))

	assert.ErrorContains(t, err, "does not exist")
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	parser := NewDraftParserService()
	path := writeDraftFile(t, "draft.docx", "whatever")

	_, err := parser.ParseFile(path)

	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
	}{
		{"h1 with body", "# Title\n\nBody here", "Title", "Body here"},
		{"no h1", "Plain text", "", "Plain text"},
		{"h1 only", "# Lonely", "Lonely", ""},
		{"leading blank lines", "\n\n# Spaced\nBody", "Spaced", "Body"},
		{"h2 is not a title", "## Section\nBody", "", "## Section\nBody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := SplitTitle(tt.input)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses blank runs", "a\n\n\n\nb", "a\n\nb"},
		{"trims line whitespace", "  a  \nb", "a\nb"},
		{"drops surrounding blanks", "\n\na\n\n", "a"},
		{"keeps paragraph breaks", "p1\n\np2", "p1\n\np2"},
		{"keeps single newlines", "line one\nline two\n\nnext para", "line one\nline two\n\nnext para"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
