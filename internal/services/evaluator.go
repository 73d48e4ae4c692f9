package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"prepverse/answer-evaluator/internal/evaluation"
	"prepverse/answer-evaluator/internal/metrics"
	"prepverse/answer-evaluator/internal/models"
	"prepverse/answer-evaluator/internal/repositories"
)

type EvaluatorService interface {
	Evaluate(candidateAnswer, referenceAnswer string, keywords []string) *evaluation.Result
	EvaluateAttempt(ctx context.Context, attemptID uuid.UUID) error
}

type evaluatorService struct {
	attemptRepo repositories.AttemptRepository
}

func NewEvaluatorService(attemptRepo repositories.AttemptRepository) EvaluatorService {
	return &evaluatorService{
		attemptRepo: attemptRepo,
	}
}

// Evaluate implements EvaluatorService. It scores a candidate answer
// directly, without touching an attempt record.
func (e *evaluatorService) Evaluate(candidateAnswer, referenceAnswer string, keywords []string) *evaluation.Result {
	result := evaluation.Evaluate(candidateAnswer, referenceAnswer, keywords)
	metrics.RecordEvaluation(string(result.Verdict), result.Score)
	return result
}

// EvaluateAttempt implements EvaluatorService. It scores a submitted
// practice attempt and persists the outcome. The scoring itself never
// fails; only storage problems move an attempt into the failed state.
func (e *evaluatorService) EvaluateAttempt(ctx context.Context, attemptID uuid.UUID) error {
	log.Printf("🔄 Starting evaluation for attempt: %s\n", attemptID)

	attempt, err := e.attemptRepo.FindByID(attemptID)
	if err != nil {
		return fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.State != models.AttemptProcessing {
		// The poller can hand back attempts another worker already
		// finished; nothing to do.
		log.Printf("📋 Attempt %s is %s, skipping\n", attemptID, attempt.State)
		return nil
	}

	transcript := ""
	if attempt.EditedTranscript != nil {
		transcript = *attempt.EditedTranscript
	} else if attempt.RawTranscript != nil {
		transcript = *attempt.RawTranscript
	}

	result := evaluation.Evaluate(transcript, attempt.ReferenceAnswer, attempt.Keywords)

	verdict := string(result.Verdict)
	update := &repositories.AttemptResultUpdate{
		Score:            &result.Score,
		Verdict:          &verdict,
		KeyPointsCovered: result.KeyPointsCovered,
		KeyPointsMissed:  result.KeyPointsMissed,
		Feedback:         &result.Feedback,
		Strengths:        result.Strengths,
		Improvements:     result.Improvements,
	}

	if err := e.attemptRepo.UpdateResult(attemptID, update); err != nil {
		e.attemptRepo.UpdateError(attemptID, fmt.Sprintf("failed to save result: %v", err))
		return fmt.Errorf("failed to save result: %w", err)
	}

	metrics.RecordEvaluation(verdict, result.Score)
	log.Printf("✅ Attempt %s evaluated: score %d, verdict %s\n", attemptID, result.Score, verdict)
	return nil
}
