package models

import (
	"time"

	"github.com/google/uuid"
)

type AttemptState string

const (
	AttemptReady      AttemptState = "ready"
	AttemptRecording  AttemptState = "recording"
	AttemptEditing    AttemptState = "editing"
	AttemptProcessing AttemptState = "processing"
	AttemptEvaluated  AttemptState = "evaluated"
	AttemptFailed     AttemptState = "failed"
)

// attemptTransitions is the full lifecycle: record, transcribe, edit,
// submit, then either read the result and move on or discard and retry.
var attemptTransitions = map[AttemptState][]AttemptState{
	AttemptReady:      {AttemptRecording},
	AttemptRecording:  {AttemptEditing},
	AttemptEditing:    {AttemptProcessing, AttemptReady},
	AttemptProcessing: {AttemptEvaluated, AttemptFailed},
	AttemptEvaluated:  {AttemptReady},
	AttemptFailed:     {AttemptReady},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s AttemptState) CanTransitionTo(next AttemptState) bool {
	for _, allowed := range attemptTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PracticeAttempt struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionText    string       `gorm:"type:text;not null" json:"question_text"`
	ReferenceAnswer string       `gorm:"type:text;not null" json:"reference_answer"`
	Keywords        []string     `gorm:"serializer:json;type:text" json:"keywords"`
	State           AttemptState `gorm:"not null;default:'ready'" json:"state"`

	// Transcripts: the raw speech-to-text output and the user-corrected
	// version. Scoring prefers the edited transcript and falls back to
	// the raw one when no edit was submitted.
	RawTranscript    *string `gorm:"type:text" json:"raw_transcript,omitempty"`
	EditedTranscript *string `gorm:"type:text" json:"edited_transcript,omitempty"`

	// Result columns, set when the state reaches evaluated.
	Score            *int     `json:"score,omitempty"`
	Verdict          *string  `gorm:"type:text" json:"verdict,omitempty"`
	KeyPointsCovered []string `gorm:"serializer:json;type:text" json:"key_points_covered,omitempty"`
	KeyPointsMissed  []string `gorm:"serializer:json;type:text" json:"key_points_missed,omitempty"`
	Feedback         *string  `gorm:"type:text" json:"feedback,omitempty"`
	Strengths        []string `gorm:"serializer:json;type:text" json:"strengths,omitempty"`
	Improvements     []string `gorm:"serializer:json;type:text" json:"improvements,omitempty"`

	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PracticeAttempt) TableName() string {
	return "practice_attempts"
}
