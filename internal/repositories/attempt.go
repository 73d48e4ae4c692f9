package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepverse/answer-evaluator/internal/models"
)

type AttemptRepository interface {
	Create(attempt *models.PracticeAttempt) error
	FindByID(id uuid.UUID) (*models.PracticeAttempt, error)
	UpdateState(id uuid.UUID, state models.AttemptState) error
	TransitionState(id uuid.UUID, from, to models.AttemptState) error
	SetTranscript(id uuid.UUID, raw string) error
	SetEditedTranscript(id uuid.UUID, edited string) error
	UpdateResult(id uuid.UUID, result *AttemptResultUpdate) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.PracticeAttempt, error)
}

// AttemptResultUpdate carries the evaluation output into the result
// columns. Nil fields are left untouched.
type AttemptResultUpdate struct {
	Score            *int
	Verdict          *string
	KeyPointsCovered []string
	KeyPointsMissed  []string
	Feedback         *string
	Strengths        []string
	Improvements     []string
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// Create implements AttemptRepository.
func (r *attemptRepository) Create(attempt *models.PracticeAttempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

// FindByID implements AttemptRepository.
func (r *attemptRepository) FindByID(id uuid.UUID) (*models.PracticeAttempt, error) {
	var attempt models.PracticeAttempt
	if err := r.db.Where("id = ?", id).First(&attempt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("attempt not found")
		}
		return nil, fmt.Errorf("failed to find attempt: %w", err)
	}
	return &attempt, nil
}

// UpdateState implements AttemptRepository.
func (r *attemptRepository) UpdateState(id uuid.UUID, state models.AttemptState) error {
	result := r.db.Model(&models.PracticeAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":      state,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update state: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt not found")
	}

	return nil
}

// TransitionState implements AttemptRepository. The from-state guard in the
// WHERE clause makes the transition atomic: two concurrent submits cannot
// both move the same attempt into processing.
func (r *attemptRepository) TransitionState(id uuid.UUID, from, to models.AttemptState) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("invalid transition %s -> %s", from, to)
	}

	result := r.db.Model(&models.PracticeAttempt{}).
		Where("id = ? AND state = ?", id, from).
		Updates(map[string]interface{}{
			"state":      to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to transition state: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt not in state %s", from)
	}

	return nil
}

// SetTranscript implements AttemptRepository.
func (r *attemptRepository) SetTranscript(id uuid.UUID, raw string) error {
	result := r.db.Model(&models.PracticeAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"raw_transcript": raw,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set transcript: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt not found")
	}

	return nil
}

// SetEditedTranscript implements AttemptRepository.
func (r *attemptRepository) SetEditedTranscript(id uuid.UUID, edited string) error {
	result := r.db.Model(&models.PracticeAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"edited_transcript": edited,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set edited transcript: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt not found")
	}

	return nil
}

// UpdateResult implements AttemptRepository. Also moves the attempt into
// the evaluated state.
func (r *attemptRepository) UpdateResult(id uuid.UUID, data *AttemptResultUpdate) error {
	updates := map[string]interface{}{
		"state":      models.AttemptEvaluated,
		"updated_at": time.Now(),
	}

	if data.Score != nil {
		updates["score"] = *data.Score
	}
	if data.Verdict != nil {
		updates["verdict"] = *data.Verdict
	}
	if data.KeyPointsCovered != nil {
		updates["key_points_covered"] = data.KeyPointsCovered
	}
	if data.KeyPointsMissed != nil {
		updates["key_points_missed"] = data.KeyPointsMissed
	}
	if data.Feedback != nil {
		updates["feedback"] = *data.Feedback
	}
	if data.Strengths != nil {
		updates["strengths"] = data.Strengths
	}
	if data.Improvements != nil {
		updates["improvements"] = data.Improvements
	}

	result := r.db.Model(&models.PracticeAttempt{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt not found")
	}

	return nil
}

// UpdateError implements AttemptRepository.
func (r *attemptRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.PracticeAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":         models.AttemptFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt not found")
	}

	return nil
}

// FindPendingJobs implements AttemptRepository. Pending means submitted
// and waiting for a worker slot.
func (r *attemptRepository) FindPendingJobs(limit int) ([]models.PracticeAttempt, error) {
	var attempts []models.PracticeAttempt
	err := r.db.
		Where("state = ?", models.AttemptProcessing).
		Order("created_at ASC").
		Limit(limit).
		Find(&attempts).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return attempts, nil
}
