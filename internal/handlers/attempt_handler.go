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

type AttemptHandler struct {
	attemptRepo repositories.AttemptRepository
	worker      services.Worker
	validator   *validator.Validate
}

func NewAttemptHandler(attemptRepo repositories.AttemptRepository, worker services.Worker) *AttemptHandler {
	return &AttemptHandler{
		attemptRepo: attemptRepo,
		worker:      worker,
		validator:   validator.New(),
	}
}

// HandleCreate handles POST /attempts
func (h *AttemptHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateAttemptRequest

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

	attempt := &models.PracticeAttempt{
		ID:              uuid.New(),
		QuestionText:    req.QuestionText,
		ReferenceAnswer: req.ReferenceAnswer,
		Keywords:        req.Keywords,
		State:           models.AttemptReady,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.attemptRepo.Create(attempt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create attempt",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateAttemptResponse{
		ID:    attempt.ID.String(),
		State: attempt.State,
	})
}

// HandleGet handles GET /attempts/:id. Clients poll this after submitting.
func (h *AttemptHandler) HandleGet(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attempt ID format",
		})
	}

	attempt, err := h.attemptRepo.FindByID(attemptID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attempt not found",
		})
	}

	response := models.AttemptResponse{
		ID:           attempt.ID.String(),
		State:        attempt.State,
		QuestionText: attempt.QuestionText,
	}

	// The result columns are written together, so one nil check covers them.
	if attempt.State == models.AttemptEvaluated && attempt.Score != nil {
		response.Result = &models.AttemptResultData{
			Score:            *attempt.Score,
			Verdict:          *attempt.Verdict,
			KeyPointsCovered: attempt.KeyPointsCovered,
			KeyPointsMissed:  attempt.KeyPointsMissed,
			Feedback:         *attempt.Feedback,
			Strengths:        attempt.Strengths,
			Improvements:     attempt.Improvements,
		}
	}

	if attempt.State == models.AttemptFailed && attempt.ErrorMessage != nil {
		response.ErrorMessage = attempt.ErrorMessage
	}

	return c.JSON(response)
}

// HandleRecord handles POST /attempts/:id/record
func (h *AttemptHandler) HandleRecord(c *fiber.Ctx) error {
	return h.transition(c, models.AttemptReady, models.AttemptRecording)
}

// HandleTranscript handles POST /attempts/:id/transcript. Recording has
// stopped and the speech-to-text output lands here.
func (h *AttemptHandler) HandleTranscript(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attempt ID format",
		})
	}

	var req models.TranscriptRequest
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

	attempt, err := h.attemptRepo.FindByID(attemptID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attempt not found",
		})
	}

	if err := h.attemptRepo.TransitionState(attemptID, models.AttemptRecording, models.AttemptEditing); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("attempt is %s, expected %s", attempt.State, models.AttemptRecording),
		})
	}

	if err := h.attemptRepo.SetTranscript(attemptID, req.Transcript); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save transcript",
		})
	}

	return c.JSON(fiber.Map{
		"id":    attemptID.String(),
		"state": models.AttemptEditing,
	})
}

// HandleDiscard handles POST /attempts/:id/discard. The attempt goes back to
// ready; the next recording overwrites the abandoned transcript.
func (h *AttemptHandler) HandleDiscard(c *fiber.Ctx) error {
	return h.transition(c, models.AttemptEditing, models.AttemptReady)
}

// HandleSubmit handles POST /attempts/:id/submit
func (h *AttemptHandler) HandleSubmit(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attempt ID format",
		})
	}

	// An empty body means the raw transcript stands as submitted.
	var req models.SubmitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}
	}

	attempt, err := h.attemptRepo.FindByID(attemptID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attempt not found",
		})
	}

	if attempt.State != models.AttemptEditing {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("attempt is %s, expected %s", attempt.State, models.AttemptEditing),
		})
	}

	// The edit must land before the state moves to processing; once the
	// attempt is processing the worker may pick it up at any moment.
	if req.EditedTranscript != "" {
		if err := h.attemptRepo.SetEditedTranscript(attemptID, req.EditedTranscript); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save edited transcript",
			})
		}
	}

	if err := h.attemptRepo.TransitionState(attemptID, models.AttemptEditing, models.AttemptProcessing); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Attempt state changed, try again",
		})
	}

	// Enqueue the scoring job to the worker
	h.worker.EnqueueAttempt(attemptID)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"id":    attemptID.String(),
		"state": models.AttemptProcessing,
	})
}

// HandleReset handles POST /attempts/:id/reset. Works from both terminal
// states so a failed attempt can be retried with the next question.
func (h *AttemptHandler) HandleReset(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attempt ID format",
		})
	}

	attempt, err := h.attemptRepo.FindByID(attemptID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attempt not found",
		})
	}

	if attempt.State != models.AttemptEvaluated && attempt.State != models.AttemptFailed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("attempt is %s, expected evaluated or failed", attempt.State),
		})
	}

	if err := h.attemptRepo.TransitionState(attemptID, attempt.State, models.AttemptReady); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Attempt state changed, try again",
		})
	}

	return c.JSON(fiber.Map{
		"id":    attemptID.String(),
		"state": models.AttemptReady,
	})
}

// transition moves an attempt along a single lifecycle edge. The from-state
// guard lives in the repository update, so a stale read here can only make
// the conflict message slightly off, never the state.
func (h *AttemptHandler) transition(c *fiber.Ctx, from, to models.AttemptState) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attempt ID format",
		})
	}

	attempt, err := h.attemptRepo.FindByID(attemptID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attempt not found",
		})
	}

	if err := h.attemptRepo.TransitionState(attemptID, from, to); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("attempt is %s, expected %s", attempt.State, from),
		})
	}

	return c.JSON(fiber.Map{
		"id":    attemptID.String(),
		"state": to,
	})
}
