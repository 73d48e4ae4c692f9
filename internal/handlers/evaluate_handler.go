package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"prepverse/answer-evaluator/internal/models"
	"prepverse/answer-evaluator/internal/services"
)

type EvaluateHandler struct {
	evaluatorService services.EvaluatorService
	validator        *validator.Validate
}

func NewEvaluateHandler(evaluatorService services.EvaluatorService) *EvaluateHandler {
	return &EvaluateHandler{
		evaluatorService: evaluatorService,
		validator:        validator.New(),
	}
}

// HandleEvaluate handles POST /evaluate. Scoring is deterministic and cheap,
// so this endpoint answers synchronously; the attempt endpoints cover the
// full recorded-interview flow.
func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

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

	result := h.evaluatorService.Evaluate(req.CandidateAnswer, req.ReferenceAnswer, req.Keywords)

	return c.JSON(result)
}

// validationMessage pulls the first field failure out of a validator error.
func validationMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
