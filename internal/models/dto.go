package models

// EvaluateRequest is the synchronous evaluation body. CandidateAnswer may
// be empty: scoring degrades to zero rather than erroring, so rejecting it
// here would change the contract.
type EvaluateRequest struct {
	CandidateAnswer string   `json:"candidate_answer"`
	ReferenceAnswer string   `json:"reference_answer" validate:"required"`
	Keywords        []string `json:"keywords,omitempty" validate:"omitempty,dive,min=1"`
}

type CreateAttemptRequest struct {
	QuestionText    string   `json:"question_text" validate:"required"`
	ReferenceAnswer string   `json:"reference_answer" validate:"required"`
	Keywords        []string `json:"keywords,omitempty" validate:"omitempty,dive,min=1"`
}

type CreateAttemptResponse struct {
	ID    string       `json:"id"`
	State AttemptState `json:"state"`
}

// TranscriptRequest carries the raw speech-to-text output when recording
// stops.
type TranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// SubmitRequest carries the user-corrected transcript; it is what gets
// scored. Empty text is allowed for the same reason as EvaluateRequest.
type SubmitRequest struct {
	EditedTranscript string `json:"edited_transcript"`
}

type AttemptResultData struct {
	Score            int      `json:"score"`
	Verdict          string   `json:"verdict"`
	KeyPointsCovered []string `json:"key_points_covered"`
	KeyPointsMissed  []string `json:"key_points_missed"`
	Feedback         string   `json:"feedback"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
}

// AttemptResponse is the polling shape: result and error are only present
// in the states that carry them.
type AttemptResponse struct {
	ID           string             `json:"id"`
	State        AttemptState       `json:"state"`
	QuestionText string             `json:"question_text"`
	Result       *AttemptResultData `json:"result,omitempty"`
	ErrorMessage *string            `json:"error_message,omitempty"`
}

type UploadArticleResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	WordCount    int    `json:"word_count"`
}

type GenerateArticleRequest struct {
	Topic string `json:"topic" validate:"required,min=3"`
}

type GenerateArticleResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

type ValidateArticleResponse struct {
	ReportID string     `json:"report_id"`
	Status   GateStatus `json:"status"`
}

type GateResultData struct {
	Score            int           `json:"score"`
	Passed           bool          `json:"passed"`
	StructureScore   int           `json:"structure_score"`
	ReadabilityScore int           `json:"readability_score"`
	CoherenceScore   int           `json:"coherence_score"`
	TechnicalScore   int           `json:"technical_score"`
	CitationScore    int           `json:"citation_score"`
	Issues           []string      `json:"issues"`
	Links            []LinkFinding `json:"links"`
	Originality      *string       `json:"originality,omitempty"`
}

// GateReportResponse is the report polling shape, same status-dependent
// layout as AttemptResponse.
type GateReportResponse struct {
	ID             string          `json:"id"`
	ArticleDraftID string          `json:"article_draft_id"`
	Status         GateStatus      `json:"status"`
	Result         *GateResultData `json:"result,omitempty"`
	ErrorMessage   *string         `json:"error_message,omitempty"`
}
