package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"prepverse/answer-evaluator/internal/models"
	"prepverse/answer-evaluator/internal/repositories"
)

type ArticleService interface {
	CreateFromUpload(file *multipart.FileHeader) (*models.ArticleDraft, error)
	GenerateDraft(ctx context.Context, topic string) (*models.ArticleDraft, error)
}

type articleService struct {
	articleRepo   repositories.ArticleRepository
	storage       StorageService
	parser        DraftParserService
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewArticleService(
	articleRepo repositories.ArticleRepository,
	storage StorageService,
	parser DraftParserService,
	geminiService GeminiService,
	maxRetries int,
) ArticleService {
	return &articleService{
		articleRepo:   articleRepo,
		storage:       storage,
		parser:        parser,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// CreateFromUpload implements ArticleService.
func (a *articleService) CreateFromUpload(file *multipart.FileHeader) (*models.ArticleDraft, error) {
	filename, filePath, err := a.storage.SaveFile(file, "draft")
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	parsed, err := a.parser.ParseFile(filePath)
	if err != nil {
		// Cleanup stored file if parsing fails
		a.storage.DeleteFile(filename)
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}

	title := parsed.Title
	if title == "" {
		title = titleFromFilename(file.Filename)
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")

	draft := &models.ArticleDraft{
		Title:     title,
		Body:      parsed.Body,
		Source:    models.ArticleUploaded,
		Filename:  &filename,
		FilePath:  &filePath,
		FileType:  &fileType,
		WordCount: len(strings.Fields(parsed.Body)),
	}

	if err := a.articleRepo.Create(draft); err != nil {
		// Cleanup stored file if database insert fails
		a.storage.DeleteFile(filename)
		return nil, err
	}

	log.Printf("📄 Draft %s stored from upload (%d words)\n", draft.ID, draft.WordCount)
	return draft, nil
}

// GenerateDraft implements ArticleService.
func (a *articleService) GenerateDraft(ctx context.Context, topic string) (*models.ArticleDraft, error) {
	prompt := a.promptBuilder.BuildArticlePrompt(topic)

	log.Printf("🤖 Generating draft for topic: %s\n", topic)
	markdown, err := a.geminiService.GenerateTextWithRetry(ctx, prompt, 0.7, a.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft: %w", err)
	}

	title, body := SplitTitle(markdown)
	if title == "" {
		title = topic
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("model returned an empty draft")
	}

	draft := &models.ArticleDraft{
		Title:     title,
		Body:      body,
		Source:    models.ArticleGenerated,
		Topic:     &topic,
		WordCount: len(strings.Fields(body)),
	}

	if err := a.articleRepo.Create(draft); err != nil {
		return nil, err
	}

	log.Printf("✅ Draft %s generated (%d words)\n", draft.ID, draft.WordCount)
	return draft, nil
}

// titleFromFilename turns "system-design_basics.md" into
// "system design basics".
func titleFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.TrimSpace(base)
	if base == "" {
		return "Untitled draft"
	}
	return base
}
