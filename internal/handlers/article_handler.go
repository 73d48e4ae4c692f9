package handlers

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepverse/answer-evaluator/internal/models"
	"prepverse/answer-evaluator/internal/repositories"
	"prepverse/answer-evaluator/internal/services"
)

type ArticleHandler struct {
	articleRepo    repositories.ArticleRepository
	gateRepo       repositories.GateReportRepository
	articleService services.ArticleService
	worker         services.Worker
	maxFileSize    int64
	validator      *validator.Validate
}

func NewArticleHandler(
	articleRepo repositories.ArticleRepository,
	gateRepo repositories.GateReportRepository,
	articleService services.ArticleService,
	worker services.Worker,
	maxFileSize int64,
) *ArticleHandler {
	return &ArticleHandler{
		articleRepo:    articleRepo,
		gateRepo:       gateRepo,
		articleService: articleService,
		worker:         worker,
		maxFileSize:    maxFileSize,
		validator:      validator.New(),
	}
}

// HandleUpload handles POST /articles
func (h *ArticleHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("draft")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No draft uploaded. Send a .md, .txt or .pdf file in the 'draft' field.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Draft file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	draft, err := h.articleService.CreateFromUpload(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to process draft: %v", err),
		})
	}

	response := models.UploadArticleResponse{
		ID:           draft.ID.String(),
		Title:        draft.Title,
		OriginalName: file.Filename,
		WordCount:    draft.WordCount,
	}
	if draft.Filename != nil {
		response.Filename = *draft.Filename
	}
	if draft.FileType != nil {
		response.FileType = *draft.FileType
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleList handles GET /articles. Newest drafts first.
func (h *ArticleHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	drafts, err := h.articleRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list article drafts",
		})
	}

	return c.JSON(fiber.Map{
		"drafts": drafts,
		"count":  len(drafts),
	})
}

// HandleGenerate handles POST /articles/generate
func (h *ArticleHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.GenerateArticleRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	draft, err := h.articleService.GenerateDraft(c.Context(), req.Topic)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to generate draft: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.GenerateArticleResponse{
		ID:        draft.ID.String(),
		Title:     draft.Title,
		WordCount: draft.WordCount,
	})
}

// HandleValidate handles POST /articles/:id/validate
func (h *ArticleHandler) HandleValidate(c *fiber.Ctx) error {
	articleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid article ID format",
		})
	}

	// Verify the draft exists
	if _, err := h.articleRepo.FindByID(articleID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article draft not found",
		})
	}

	report := &models.GateReport{
		ID:             uuid.New(),
		ArticleDraftID: articleID,
		Status:         models.GateQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.gateRepo.Create(report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create gate report",
		})
	}

	// Enqueue the gate run to the worker
	h.worker.EnqueueGate(report.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ValidateArticleResponse{
		ReportID: report.ID.String(),
		Status:   models.GateQueued,
	})
}

// HandleGetReport handles GET /articles/:id/report. A draft can be validated
// more than once; this returns the most recent run.
func (h *ArticleHandler) HandleGetReport(c *fiber.Ctx) error {
	articleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid article ID format",
		})
	}

	report, err := h.gateRepo.FindLatestByArticle(articleID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No gate report found for this article",
		})
	}

	response := models.GateReportResponse{
		ID:             report.ID.String(),
		ArticleDraftID: report.ArticleDraftID.String(),
		Status:         report.Status,
	}

	// The result columns are written together, so one nil check covers them.
	if report.Status == models.GateCompleted && report.Score != nil {
		response.Result = &models.GateResultData{
			Score:            *report.Score,
			Passed:           *report.Passed,
			StructureScore:   *report.StructureScore,
			ReadabilityScore: *report.ReadabilityScore,
			CoherenceScore:   *report.CoherenceScore,
			TechnicalScore:   *report.TechnicalScore,
			CitationScore:    *report.CitationScore,
			Issues:           report.Issues,
			Links:            report.Links,
			Originality:      report.Originality,
		}
	}

	if report.Status == models.GateFailed && report.ErrorMessage != nil {
		response.ErrorMessage = report.ErrorMessage
	}

	return c.JSON(response)
}
