package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	StatusDraft    CaseStatus = "draft"
	StatusActive   CaseStatus = "active"
	StatusPending  CaseStatus = "pending"
	StatusResolved CaseStatus = "resolved"
	StatusClosed   CaseStatus = "closed"
	StatusArchived CaseStatus = "archived"
)

// statusTransitions encodes the allowed status machine:
// draft -> active -> pending -> resolved|closed, and any open status
// can be archived. Archived is terminal.
var statusTransitions = map[CaseStatus][]CaseStatus{
	StatusDraft:    {StatusActive, StatusArchived},
	StatusActive:   {StatusPending, StatusResolved, StatusClosed, StatusArchived},
	StatusPending:  {StatusResolved, StatusClosed, StatusArchived},
	StatusResolved: {StatusArchived},
	StatusClosed:   {StatusArchived},
	StatusArchived: {},
}

// Valid reports whether the status is a known value
func (s CaseStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine allows moving to next
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TimelineEntry records a single status change. The timeline is append-only.
type TimelineEntry struct {
	Event       string     `json:"event"`
	Description string     `json:"description"`
	FromStatus  CaseStatus `json:"fromStatus"`
	ToStatus    CaseStatus `json:"toStatus"`
	Date        time.Time  `json:"date"`
}

// Timeline is the append-only list of status-change events for a case
type Timeline []TimelineEntry

// Value implements driver.Valuer for JSONB
func (t Timeline) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB
func (t *Timeline) Scan(value interface{}) error {
	return scanJSONB(value, t, func() { *t = make(Timeline, 0) })
}

// CaseNote is a note attached to a case by a user
type CaseNote struct {
	Content   string    `json:"content"`
	AddedBy   uuid.UUID `json:"addedBy"`
	AddedAt   time.Time `json:"addedAt"`
	IsPrivate bool      `json:"isPrivate"`
}

// CaseNotes is the append-only collection of notes on a case
type CaseNotes []CaseNote

// Value implements driver.Valuer for JSONB
func (n CaseNotes) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements sql.Scanner for JSONB
func (n *CaseNotes) Scan(value interface{}) error {
	return scanJSONB(value, n, func() { *n = make(CaseNotes, 0) })
}

// DocumentKind distinguishes generated artifacts from user uploads
type DocumentKind string

const (
	DocumentGenerated DocumentKind = "generated"
	DocumentUploaded  DocumentKind = "uploaded"
)

// CaseDocument references a document artifact attached to a case
type CaseDocument struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Kind        DocumentKind `json:"kind"`
	StoragePath string       `json:"storagePath"`
	Size        int64        `json:"size"`
	UploadedAt  time.Time    `json:"uploadedAt"`
}

// CaseDocuments is the collection of documents attached to a case
type CaseDocuments []CaseDocument

// Value implements driver.Valuer for JSONB
func (d CaseDocuments) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB
func (d *CaseDocuments) Scan(value interface{}) error {
	return scanJSONB(value, d, func() { *d = make(CaseDocuments, 0) })
}

// Case represents a legal case built around one analyzed query.
// The user reference is immutable after creation.
type Case struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	OriginalQuery string          `json:"originalQuery"`
	Language      Language        `json:"language"`
	Category      Category        `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Status        CaseStatus      `json:"status"`
	UrgencyLevel  int             `json:"urgencyLevel"`
	Tags          []string        `json:"tags,omitempty"`
	Analysis      *AnalysisResult `json:"aiAnalysis,omitempty"`
	Timeline      Timeline        `json:"timeline"`
	Notes         CaseNotes       `json:"notes"`
	Documents     CaseDocuments   `json:"documents"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// scanJSONB unmarshals a JSONB column value, tolerating the multiple raw
// types pgx may hand back and treating NULL/empty as the empty collection.
func scanJSONB(value interface{}, dest interface{}, reset func()) error {
	if value == nil {
		reset()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		reset()
		return nil
	}

	if len(bytes) == 0 {
		reset()
		return nil
	}

	return json.Unmarshal(bytes, dest)
}
