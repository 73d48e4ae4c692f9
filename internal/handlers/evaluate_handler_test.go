package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepverse/answer-evaluator/internal/evaluation"
	"prepverse/answer-evaluator/internal/services"
)

func newEvaluateTestApp() *fiber.App {
	h := NewEvaluateHandler(services.NewEvaluatorService(newMemAttemptRepo()))
	app := fiber.New()
	app.Post("/evaluate", h.HandleEvaluate)
	return app
}

func TestHandleEvaluate_ScoresAnswer(t *testing.T) {
	app := newEvaluateTestApp()

	resp, err := app.Test(jsonRequest("POST", "/evaluate",
		`{"candidate_answer":"Push the click events through kafka and buffer them before the database.",
		  "reference_answer":"Use kafka to buffer click events so database spikes flatten out.",
		  "keywords":["kafka"]}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result evaluation.Result
	decodeJSON(t, resp, &result)
	assert.Greater(t, result.Score, 0)
	assert.NotEmpty(t, result.Verdict)
	assert.Contains(t, result.KeyPointsCovered, "kafka")
	assert.NotEmpty(t, result.Feedback)
}

func TestHandleEvaluate_EmptyCandidateScoresZero(t *testing.T) {
	app := newEvaluateTestApp()

	resp, err := app.Test(jsonRequest("POST", "/evaluate",
		`{"candidate_answer":"","reference_answer":"Use kafka to buffer click events."}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result evaluation.Result
	decodeJSON(t, resp, &result)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, evaluation.VerdictNoHire, result.Verdict)
}

func TestHandleEvaluate_MissingReferenceAnswer(t *testing.T) {
	app := newEvaluateTestApp()

	resp, err := app.Test(jsonRequest("POST", "/evaluate", `{"candidate_answer":"Use kafka."}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "ReferenceAnswer")
}

func TestHandleEvaluate_MalformedJSON(t *testing.T) {
	app := newEvaluateTestApp()

	resp, err := app.Test(jsonRequest("POST", "/evaluate", `{not json`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Invalid request payload", body["error"])
}
