package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"prepverse/answer-evaluator/internal/metrics"
	"prepverse/answer-evaluator/internal/models"
	"prepverse/answer-evaluator/internal/qualitygate"
	"prepverse/answer-evaluator/internal/repositories"
)

type GateService interface {
	RunGate(ctx context.Context, reportID uuid.UUID) error
}

type gateService struct {
	gateRepo      repositories.GateReportRepository
	articleRepo   repositories.ArticleRepository
	linkChecker   *qualitygate.LinkChecker
	gateConfig    qualitygate.Config
	geminiService GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder

	// similarityThreshold is the cosine score above which a draft is
	// flagged as overlapping a published article.
	similarityThreshold float32
}

func NewGateService(
	gateRepo repositories.GateReportRepository,
	articleRepo repositories.ArticleRepository,
	linkChecker *qualitygate.LinkChecker,
	gateConfig qualitygate.Config,
	geminiService GeminiService,
	qdrantService QdrantService,
	similarityThreshold float32,
) GateService {
	return &gateService{
		gateRepo:            gateRepo,
		articleRepo:         articleRepo,
		linkChecker:         linkChecker,
		gateConfig:          gateConfig,
		geminiService:       geminiService,
		qdrantService:       qdrantService,
		promptBuilder:       NewPromptBuilder(),
		similarityThreshold: similarityThreshold,
	}
}

// RunGate implements GateService. It runs the full quality gate over a
// draft and persists the report.
func (g *gateService) RunGate(ctx context.Context, reportID uuid.UUID) error {
	if err := g.gateRepo.UpdateStatus(reportID, models.GateProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting quality gate for report: %s\n", reportID)

	report, err := g.gateRepo.FindByID(reportID)
	if err != nil {
		g.gateRepo.UpdateError(reportID, err.Error())
		metrics.RecordGateRun(metrics.GateOutcomeError)
		return fmt.Errorf("failed to get gate report: %w", err)
	}

	draft, err := g.articleRepo.FindByID(report.ArticleDraftID)
	if err != nil {
		g.gateRepo.UpdateError(reportID, fmt.Sprintf("article draft not found: %v", err))
		metrics.RecordGateRun(metrics.GateOutcomeError)
		return fmt.Errorf("failed to get article draft: %w", err)
	}

	log.Printf("🔗 Checking links for draft %s...\n", draft.ID)
	urls := qualitygate.ExtractURLs(draft.Body)
	links := g.linkChecker.Check(ctx, urls)

	result := qualitygate.Score(qualitygate.Draft{Title: draft.Title, Body: draft.Body}, links, g.gateConfig)

	log.Println("🔍 Checking draft originality against published articles...")
	originality := g.originalityNote(ctx, draft)

	findings := make([]models.LinkFinding, len(links))
	for i, link := range links {
		findings[i] = models.LinkFinding{
			URL:        link.URL,
			Alive:      link.Alive,
			StatusCode: link.StatusCode,
			Detail:     link.Detail,
		}
	}

	update := &repositories.GateResultUpdate{
		Score:            &result.Score,
		Passed:           &result.Passed,
		StructureScore:   &result.Structure,
		ReadabilityScore: &result.Readability,
		CoherenceScore:   &result.Coherence,
		TechnicalScore:   &result.Technical,
		CitationScore:    &result.Citations,
		Issues:           result.Issues,
		Links:            findings,
		Originality:      &originality,
	}

	if err := g.gateRepo.UpdateResult(reportID, update); err != nil {
		return fmt.Errorf("failed to save gate report: %w", err)
	}

	outcome := metrics.GateOutcomeFailed
	if result.Passed {
		outcome = metrics.GateOutcomePassed
	}
	metrics.RecordGateRun(outcome)

	log.Printf("✅ Quality gate completed for report %s: score %d, passed %t\n", reportID, result.Score, result.Passed)
	return nil
}

// originalityNote embeds the draft and searches the published-article
// collection. Failures degrade to an explanatory note so a flaky vector
// store never blocks a gate run.
func (g *gateService) originalityNote(ctx context.Context, draft *models.ArticleDraft) string {
	query := g.promptBuilder.BuildTopicQuery(draft.Title, draft.Body)

	embedding, err := g.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Warning: failed to embed draft for originality check: %v\n", err)
		return "Originality check unavailable."
	}

	results, err := g.qdrantService.SearchSimilar(ctx, embedding, 3)
	if err != nil {
		log.Printf("⚠️  Warning: failed to search published articles: %v\n", err)
		return "Originality check unavailable."
	}

	return FormatOriginality(results, g.similarityThreshold)
}
