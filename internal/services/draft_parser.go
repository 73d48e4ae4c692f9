package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type DraftParserService interface {
	ParseFile(filePath string) (*ParsedDraft, error)
}

// ParsedDraft is the text content pulled out of an uploaded file. Title
// is empty when the file carries no markdown H1; callers fall back to
// the filename.
type ParsedDraft struct {
	Title string
	Body  string
}

type draftParserService struct{}

func NewDraftParserService() DraftParserService {
	return &draftParserService{}
}

// ParseFile implements DraftParserService.
func (p *draftParserService) ParseFile(filePath string) (*ParsedDraft, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text, err := extractPDFText(filePath)
		if err != nil {
			return nil, err
		}
		return &ParsedDraft{Body: CleanText(text)}, nil
	case ".md", ".txt":
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		title, body := SplitTitle(string(raw))
		if strings.TrimSpace(body) == "" {
			return nil, fmt.Errorf("no text content found in file")
		}
		return &ParsedDraft{Title: title, Body: strings.TrimSpace(body)}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}
}

func extractPDFText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Broken pages are skipped, the rest still extract
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// SplitTitle pulls a leading markdown H1 out of a document and returns
// the title and the remaining body. Documents without an H1 come back
// with an empty title and the input unchanged.
func SplitTitle(markdown string) (string, string) {
	trimmed := strings.TrimSpace(markdown)
	if !strings.HasPrefix(trimmed, "# ") {
		return "", markdown
	}

	line, rest, found := strings.Cut(trimmed, "\n")
	title := strings.TrimSpace(strings.TrimPrefix(line, "# "))
	if !found {
		return title, ""
	}
	return title, strings.TrimSpace(rest)
}

// CleanText normalizes extracted text. Lines are trimmed and runs of
// blank lines collapse to a single one, so paragraph boundaries survive
// for the chunker and the gate's paragraph split.
func CleanText(text string) string {
	var cleaned []string
	blank := true

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		cleaned = append(cleaned, line)
		blank = false
	}

	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, "\n")
}
