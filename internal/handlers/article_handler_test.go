package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepverse/answer-evaluator/internal/models"
	"prepverse/answer-evaluator/internal/repositories"
)

type stubArticleService struct {
	draft       *models.ArticleDraft
	uploadErr   error
	generateErr error
	gotTopic    string
}

func (s *stubArticleService) CreateFromUpload(*multipart.FileHeader) (*models.ArticleDraft, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return s.draft, nil
}

func (s *stubArticleService) GenerateDraft(_ context.Context, topic string) (*models.ArticleDraft, error) {
	s.gotTopic = topic
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return s.draft, nil
}

type memArticleRepo struct {
	drafts map[uuid.UUID]*models.ArticleDraft
	order  []uuid.UUID
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{drafts: make(map[uuid.UUID]*models.ArticleDraft)}
}

func (m *memArticleRepo) seed(draft *models.ArticleDraft) *models.ArticleDraft {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	m.drafts[draft.ID] = draft
	m.order = append(m.order, draft.ID)
	return draft
}

func (m *memArticleRepo) Create(draft *models.ArticleDraft) error {
	m.drafts[draft.ID] = draft
	m.order = append(m.order, draft.ID)
	return nil
}

func (m *memArticleRepo) FindByID(id uuid.UUID) (*models.ArticleDraft, error) {
	draft, ok := m.drafts[id]
	if !ok {
		return nil, errors.New("article draft not found")
	}
	return draft, nil
}

// FindRecent returns seeded drafts newest first, like the real query.
func (m *memArticleRepo) FindRecent(limit int) ([]models.ArticleDraft, error) {
	drafts := make([]models.ArticleDraft, 0, limit)
	for i := len(m.order) - 1; i >= 0 && len(drafts) < limit; i-- {
		drafts = append(drafts, *m.drafts[m.order[i]])
	}
	return drafts, nil
}

type memGateRepo struct {
	reports map[uuid.UUID]*models.GateReport
}

func newMemGateRepo() *memGateRepo {
	return &memGateRepo{reports: make(map[uuid.UUID]*models.GateReport)}
}

func (m *memGateRepo) Create(report *models.GateReport) error {
	m.reports[report.ID] = report
	return nil
}

func (m *memGateRepo) FindByID(id uuid.UUID) (*models.GateReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, errors.New("gate report not found")
	}
	return report, nil
}

func (m *memGateRepo) FindLatestByArticle(articleID uuid.UUID) (*models.GateReport, error) {
	for _, report := range m.reports {
		if report.ArticleDraftID == articleID {
			return report, nil
		}
	}
	return nil, errors.New("no gate report for article")
}

func (m *memGateRepo) UpdateStatus(id uuid.UUID, status models.GateStatus) error {
	report, err := m.FindByID(id)
	if err != nil {
		return err
	}
	report.Status = status
	return nil
}

func (m *memGateRepo) UpdateResult(uuid.UUID, *repositories.GateResultUpdate) error { return nil }

func (m *memGateRepo) UpdateError(uuid.UUID, string) error { return nil }

func (m *memGateRepo) FindPendingJobs(int) ([]models.GateReport, error) { return nil, nil }

type articleTestEnv struct {
	app         *fiber.App
	service     *stubArticleService
	articleRepo *memArticleRepo
	gateRepo    *memGateRepo
	worker      *stubWorker
}

func newArticleTestEnv(maxFileSize int64) *articleTestEnv {
	env := &articleTestEnv{
		service:     &stubArticleService{},
		articleRepo: newMemArticleRepo(),
		gateRepo:    newMemGateRepo(),
		worker:      &stubWorker{},
	}
	h := NewArticleHandler(env.articleRepo, env.gateRepo, env.service, env.worker, maxFileSize)
	env.app = fiber.New()
	env.app.Post("/articles", h.HandleUpload)
	env.app.Get("/articles", h.HandleList)
	env.app.Post("/articles/generate", h.HandleGenerate)
	env.app.Post("/articles/:id/validate", h.HandleValidate)
	env.app.Get("/articles/:id/report", h.HandleGetReport)
	return env
}

func multipartDraftRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("draft", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/articles", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleUpload_CreatesDraft(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	env.service.draft = &models.ArticleDraft{
		ID:        uuid.New(),
		Title:     "Scaling Notes",
		Body:      "Shard early.\n\nCache often.",
		Source:    models.ArticleUploaded,
		Filename:  strPtr("scaling-notes_abc123.md"),
		FileType:  strPtr("md"),
		WordCount: 4,
	}

	resp, err := env.app.Test(multipartDraftRequest(t, "scaling-notes.md", "# Scaling Notes\n\nShard early.\n\nCache often."))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body models.UploadArticleResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Scaling Notes", body.Title)
	assert.Equal(t, "scaling-notes.md", body.OriginalName)
	assert.Equal(t, "scaling-notes_abc123.md", body.Filename)
	assert.Equal(t, "md", body.FileType)
	assert.Equal(t, 4, body.WordCount)
}

func TestHandleUpload_NoFile(t *testing.T) {
	env := newArticleTestEnv(1 << 20)

	resp, err := env.app.Test(jsonRequest("POST", "/articles", `{"topic":"not a file"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "No draft uploaded")
}

func TestHandleUpload_FileTooLarge(t *testing.T) {
	env := newArticleTestEnv(10)

	resp, err := env.app.Test(multipartDraftRequest(t, "big.md", "this content is longer than ten bytes"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "too large")
}

func TestHandleUpload_ParserRejection(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	env.service.uploadErr = errors.New("unsupported file type: .docx")

	resp, err := env.app.Test(multipartDraftRequest(t, "notes.docx", "content"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "unsupported file type")
}

func TestHandleList_NewestFirst(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	env.articleRepo.seed(&models.ArticleDraft{Title: "Older Draft"})
	env.articleRepo.seed(&models.ArticleDraft{Title: "Newer Draft"})

	resp, err := env.app.Test(jsonRequest("GET", "/articles", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Drafts []models.ArticleDraft `json:"drafts"`
		Count  int                   `json:"count"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Drafts, 2)
	assert.Equal(t, "Newer Draft", body.Drafts[0].Title)
}

func TestHandleGenerate_CreatesDraft(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	env.service.draft = &models.ArticleDraft{
		ID:        uuid.New(),
		Title:     "Cache Invalidation",
		Source:    models.ArticleGenerated,
		WordCount: 480,
	}

	resp, err := env.app.Test(jsonRequest("POST", "/articles/generate", `{"topic":"Cache invalidation"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Cache invalidation", env.service.gotTopic)

	var body models.GenerateArticleResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Cache Invalidation", body.Title)
	assert.Equal(t, 480, body.WordCount)
}

func TestHandleGenerate_TopicTooShort(t *testing.T) {
	env := newArticleTestEnv(1 << 20)

	resp, err := env.app.Test(jsonRequest("POST", "/articles/generate", `{"topic":"ab"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["error"], "Topic")
}

func TestHandleGenerate_ServiceFailure(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	env.service.generateErr = errors.New("gemini API error")

	resp, err := env.app.Test(jsonRequest("POST", "/articles/generate", `{"topic":"Cache invalidation"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleValidate_EnqueuesGateRun(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	draft := env.articleRepo.seed(&models.ArticleDraft{Title: "Scaling Notes"})

	resp, err := env.app.Test(jsonRequest("POST", "/articles/"+draft.ID.String()+"/validate", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body models.ValidateArticleResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, models.GateQueued, body.Status)

	reportID, err := uuid.Parse(body.ReportID)
	require.NoError(t, err)
	stored := env.gateRepo.reports[reportID]
	require.NotNil(t, stored)
	assert.Equal(t, draft.ID, stored.ArticleDraftID)
	assert.Equal(t, models.GateQueued, stored.Status)
	assert.Equal(t, []uuid.UUID{reportID}, env.worker.gates)
}

func TestHandleValidate_UnknownDraft(t *testing.T) {
	env := newArticleTestEnv(1 << 20)

	resp, err := env.app.Test(jsonRequest("POST", "/articles/"+uuid.NewString()+"/validate", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, env.worker.gates)
}

func TestHandleValidate_InvalidID(t *testing.T) {
	env := newArticleTestEnv(1 << 20)

	resp, err := env.app.Test(jsonRequest("POST", "/articles/nope/validate", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetReport_CompletedReportCarriesResult(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	articleID := uuid.New()
	report := &models.GateReport{
		ID:               uuid.New(),
		ArticleDraftID:   articleID,
		Status:           models.GateCompleted,
		Score:            intPtr(81),
		Passed:           boolPtr(true),
		StructureScore:   intPtr(90),
		ReadabilityScore: intPtr(75),
		CoherenceScore:   intPtr(80),
		TechnicalScore:   intPtr(85),
		CitationScore:    intPtr(70),
		Issues:           []string{"Only 1 working link; aim for at least 2 citations"},
		Links:            []models.LinkFinding{{URL: "https://redis.io", Alive: true, StatusCode: 200}},
		Originality:      strPtr("Draft looks original. Closest published neighbor scored 0.42."),
	}
	require.NoError(t, env.gateRepo.Create(report))

	resp, err := env.app.Test(jsonRequest("GET", "/articles/"+articleID.String()+"/report", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.GateReportResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, models.GateCompleted, body.Status)
	require.NotNil(t, body.Result)
	assert.Equal(t, 81, body.Result.Score)
	assert.True(t, body.Result.Passed)
	assert.Equal(t, 75, body.Result.ReadabilityScore)
	require.Len(t, body.Result.Links, 1)
	assert.Equal(t, "https://redis.io", body.Result.Links[0].URL)
	require.NotNil(t, body.Result.Originality)
	assert.Contains(t, *body.Result.Originality, "looks original")
	assert.Nil(t, body.ErrorMessage)
}

func TestHandleGetReport_QueuedReportHasNoResult(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	articleID := uuid.New()
	require.NoError(t, env.gateRepo.Create(&models.GateReport{
		ID:             uuid.New(),
		ArticleDraftID: articleID,
		Status:         models.GateQueued,
	}))

	resp, err := env.app.Test(jsonRequest("GET", "/articles/"+articleID.String()+"/report", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.GateReportResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, models.GateQueued, body.Status)
	assert.Nil(t, body.Result)
	assert.Nil(t, body.ErrorMessage)
}

func TestHandleGetReport_FailedReportCarriesError(t *testing.T) {
	env := newArticleTestEnv(1 << 20)
	articleID := uuid.New()
	require.NoError(t, env.gateRepo.Create(&models.GateReport{
		ID:             uuid.New(),
		ArticleDraftID: articleID,
		Status:         models.GateFailed,
		ErrorMessage:   strPtr("failed to get article draft: record not found"),
	}))

	resp, err := env.app.Test(jsonRequest("GET", "/articles/"+articleID.String()+"/report", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.GateReportResponse
	decodeJSON(t, resp, &body)
	assert.Nil(t, body.Result)
	require.NotNil(t, body.ErrorMessage)
	assert.Contains(t, *body.ErrorMessage, "record not found")
}

func TestHandleGetReport_NoReportYet(t *testing.T) {
	env := newArticleTestEnv(1 << 20)

	resp, err := env.app.Test(jsonRequest("GET", "/articles/"+uuid.NewString()+"/report", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
