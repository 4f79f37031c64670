package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nyayasetu-backend/models"
	"nyayasetu-backend/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidStatusTransition is returned when a status change violates the
// case lifecycle machine
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// CaseService manages the lifecycle of legal cases
type CaseService struct {
	store *store.Coordinator
	log   *zap.Logger
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// WithCaseCoordinator sets the dual-store coordinator
func WithCaseCoordinator(coordinator *store.Coordinator) CaseServiceOption {
	return func(s *CaseService) {
		s.store = coordinator
	}
}

// WithCaseLogger sets the logger
func WithCaseLogger(log *zap.Logger) CaseServiceOption {
	return func(s *CaseService) {
		s.log = log
	}
}

// NewCaseService creates a new case service
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCaseRequest is the input for creating a case from an analysis
type CreateCaseRequest struct {
	UserID   uuid.UUID
	Analysis *models.AnalysisResult
	Title    string
	Tags     []string
	Urgency  int
}

// CreateCaseResult is the output of case creation
type CreateCaseResult struct {
	Case       *models.Case
	ReplicaKey string
}

// CreateFromAnalysis builds a draft case around one analyzed query and
// persists it through the coordinator
func (s *CaseService) CreateFromAnalysis(ctx context.Context, req CreateCaseRequest) (*CreateCaseResult, error) {
	if req.Analysis == nil {
		return nil, errors.New("analysis is required")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Legal Query"
	}

	now := time.Now().UTC()
	record := &models.Case{
		UserID:        req.UserID,
		Title:         title,
		Description:   req.Analysis.CleanedQuery,
		OriginalQuery: req.Analysis.OriginalQuery,
		Language:      req.Analysis.Language,
		Category:      req.Analysis.Category,
		Subcategory:   req.Analysis.Subcategory,
		Status:        models.StatusDraft,
		UrgencyLevel:  req.Urgency,
		Tags:          req.Tags,
		Analysis:      req.Analysis,
		Timeline: models.Timeline{{
			Event:       "case_created",
			Description: "Case created from query analysis",
			ToStatus:    models.StatusDraft,
			Date:        now,
		}},
		Notes:     models.CaseNotes{},
		Documents: models.CaseDocuments{},
	}

	result, err := s.store.CreateCase(ctx, record)
	if err != nil {
		return nil, err
	}

	s.log.Info("case created",
		zap.String("case_id", result.Case.ID.String()),
		zap.String("category", string(result.Case.Category)))

	return &CreateCaseResult{Case: result.Case, ReplicaKey: result.ReplicaKey}, nil
}

// Get retrieves a single case
func (s *CaseService) Get(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	return s.store.GetCase(ctx, id)
}

// List retrieves a user's cases, optionally filtered by status
func (s *CaseService) List(ctx context.Context, userID uuid.UUID, status *models.CaseStatus, limit, offset int) ([]*models.Case, error) {
	return s.store.ListUserCases(ctx, userID, status, limit, offset)
}

// ChangeStatus moves a case through its lifecycle. Every accepted
// transition appends exactly one timeline entry.
func (s *CaseService) ChangeStatus(ctx context.Context, id uuid.UUID, next models.CaseStatus, description string) (*models.Case, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, next)
	}

	record, err := s.store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	if !record.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, record.Status, next)
	}

	if description == "" {
		description = fmt.Sprintf("Status changed from %s to %s", record.Status, next)
	}

	entry := models.TimelineEntry{
		Event:       "status_changed",
		Description: description,
		FromStatus:  record.Status,
		ToStatus:    next,
		Date:        time.Now().UTC(),
	}
	record.Status = next
	record.Timeline = append(record.Timeline, entry)

	if err := s.store.UpdateCase(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// AddNoteRequest is the input for attaching a note to a case
type AddNoteRequest struct {
	CaseID    uuid.UUID
	Content   string
	AddedBy   uuid.UUID
	IsPrivate bool
}

// AddNote appends a note to a case
func (s *CaseService) AddNote(ctx context.Context, req AddNoteRequest) (*models.Case, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errors.New("note content is empty")
	}

	record, err := s.store.GetCase(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}

	record.Notes = append(record.Notes, models.CaseNote{
		Content:   content,
		AddedBy:   req.AddedBy,
		AddedAt:   time.Now().UTC(),
		IsPrivate: req.IsPrivate,
	})

	if err := s.store.UpdateCase(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// AttachDocument records a document artifact on a case
func (s *CaseService) AttachDocument(ctx context.Context, caseID uuid.UUID, doc models.CaseDocument) (*models.Case, error) {
	record, err := s.store.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	record.Documents = append(record.Documents, doc)

	if err := s.store.UpdateCase(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a case from both stores
func (s *CaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCase(ctx, id)
}

// Stats reports case counts by status from the primary store
func (s *CaseService) Stats(ctx context.Context) (map[models.CaseStatus]int, error) {
	return s.store.CountCasesByStatus(ctx)
}
