package models

import (
	"time"

	"github.com/google/uuid"
)

type ArticleSource string

const (
	ArticleUploaded  ArticleSource = "uploaded"
	ArticleGenerated ArticleSource = "generated"
)

type GateStatus string

const (
	GateQueued     GateStatus = "queued"
	GateProcessing GateStatus = "processing"
	GateCompleted  GateStatus = "completed"
	GateFailed     GateStatus = "failed"
)

// ArticleDraft is a blog draft waiting to clear the quality gate before
// publication. Uploaded drafts keep their file provenance; generated
// drafts record the topic they were generated from.
type ArticleDraft struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string        `gorm:"type:text;not null" json:"title"`
	Body      string        `gorm:"type:text;not null" json:"body"`
	Source    ArticleSource `gorm:"not null" json:"source"`
	Topic     *string       `gorm:"type:text" json:"topic,omitempty"`
	Filename  *string       `gorm:"type:text" json:"filename,omitempty"`
	FilePath  *string       `gorm:"type:text" json:"file_path,omitempty"`
	FileType  *string       `gorm:"type:text" json:"file_type,omitempty"`
	WordCount int           `json:"word_count"`
	CreatedAt time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time     `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (ArticleDraft) TableName() string {
	return "article_drafts"
}

// LinkFinding is the per-URL outcome of the liveness check, stored on the
// report as a json column.
type LinkFinding struct {
	URL        string `json:"url"`
	Alive      bool   `json:"alive"`
	StatusCode int    `json:"status_code,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// GateReport is one quality-gate run over a draft. A draft can be
// re-validated after edits, so reports are append-only.
type GateReport struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ArticleDraftID uuid.UUID  `gorm:"type:uuid;not null;index" json:"article_draft_id"`
	Status         GateStatus `gorm:"not null;default:'queued'" json:"status"`

	Score            *int          `json:"score,omitempty"`
	Passed           *bool         `json:"passed,omitempty"`
	StructureScore   *int          `json:"structure_score,omitempty"`
	ReadabilityScore *int          `json:"readability_score,omitempty"`
	CoherenceScore   *int          `json:"coherence_score,omitempty"`
	TechnicalScore   *int          `json:"technical_score,omitempty"`
	CitationScore    *int          `json:"citation_score,omitempty"`
	Issues           []string      `gorm:"serializer:json;type:text" json:"issues,omitempty"`
	Links            []LinkFinding `gorm:"serializer:json;type:text" json:"links,omitempty"`
	Originality      *string       `gorm:"type:text" json:"originality,omitempty"`

	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ArticleDraft ArticleDraft `gorm:"foreignKey:ArticleDraftID" json:"-"`
}

func (GateReport) TableName() string {
	return "gate_reports"
}
