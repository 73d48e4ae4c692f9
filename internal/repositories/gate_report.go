package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepverse/answer-evaluator/internal/models"
)

type GateReportRepository interface {
	Create(report *models.GateReport) error
	FindByID(id uuid.UUID) (*models.GateReport, error)
	FindLatestByArticle(articleID uuid.UUID) (*models.GateReport, error)
	UpdateStatus(id uuid.UUID, status models.GateStatus) error
	UpdateResult(id uuid.UUID, data *GateResultUpdate) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.GateReport, error)
}

// GateResultUpdate carries the columns a finished gate run writes. Nil
// fields are left untouched.
type GateResultUpdate struct {
	Score            *int
	Passed           *bool
	StructureScore   *int
	ReadabilityScore *int
	CoherenceScore   *int
	TechnicalScore   *int
	CitationScore    *int
	Issues           []string
	Links            []models.LinkFinding
	Originality      *string
}

type gateReportRepository struct {
	db *gorm.DB
}

func NewGateReportRepository(db *gorm.DB) GateReportRepository {
	return &gateReportRepository{db: db}
}

func (r *gateReportRepository) Create(report *models.GateReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create gate report: %w", err)
	}
	return nil
}

func (r *gateReportRepository) FindByID(id uuid.UUID) (*models.GateReport, error) {
	var report models.GateReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("gate report not found")
		}
		return nil, fmt.Errorf("failed to find gate report: %w", err)
	}
	return &report, nil
}

func (r *gateReportRepository) FindLatestByArticle(articleID uuid.UUID) (*models.GateReport, error) {
	var report models.GateReport
	err := r.db.
		Where("article_draft_id = ?", articleID).
		Order("created_at DESC").
		First(&report).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("gate report not found")
		}
		return nil, fmt.Errorf("failed to find gate report: %w", err)
	}
	return &report, nil
}

func (r *gateReportRepository) UpdateStatus(id uuid.UUID, status models.GateStatus) error {
	result := r.db.Model(&models.GateReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("gate report not found")
	}

	return nil
}

func (r *gateReportRepository) UpdateResult(id uuid.UUID, data *GateResultUpdate) error {
	updates := map[string]interface{}{
		"status":     models.GateCompleted,
		"updated_at": time.Now(),
	}

	if data.Score != nil {
		updates["score"] = *data.Score
	}
	if data.Passed != nil {
		updates["passed"] = *data.Passed
	}
	if data.StructureScore != nil {
		updates["structure_score"] = *data.StructureScore
	}
	if data.ReadabilityScore != nil {
		updates["readability_score"] = *data.ReadabilityScore
	}
	if data.CoherenceScore != nil {
		updates["coherence_score"] = *data.CoherenceScore
	}
	if data.TechnicalScore != nil {
		updates["technical_score"] = *data.TechnicalScore
	}
	if data.CitationScore != nil {
		updates["citation_score"] = *data.CitationScore
	}
	if data.Issues != nil {
		updates["issues"] = data.Issues
	}
	if data.Links != nil {
		updates["links"] = data.Links
	}
	if data.Originality != nil {
		updates["originality"] = *data.Originality
	}

	result := r.db.Model(&models.GateReport{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("gate report not found")
	}

	return nil
}

func (r *gateReportRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.GateReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.GateFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("gate report not found")
	}

	return nil
}

// gateStaleAfter is how long a report may sit in processing before the
// pending-jobs poller reclaims it. A worker that crashed mid-run never
// moves its report out of processing, so those rows have to be re-fed.
// Every run refreshes updated_at when it starts, which keeps in-flight
// reports out of reach.
const gateStaleAfter = 10 * time.Minute

func (r *gateReportRepository) FindPendingJobs(limit int) ([]models.GateReport, error) {
	var reports []models.GateReport
	cutoff := time.Now().Add(-gateStaleAfter)
	err := r.db.
		Where("status = ? OR (status = ? AND updated_at < ?)", models.GateQueued, models.GateProcessing, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return reports, nil
}
