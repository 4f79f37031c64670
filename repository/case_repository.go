package repository

import (
	"context"
	"errors"
	"fmt"

	"nyayasetu-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCaseNotFound is returned when a case does not exist in the primary store
var ErrCaseNotFound = errors.New("case not found")

// CaseRepository handles database operations for cases
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create creates a new case
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (
			user_id, title, description, original_query, language,
			category, subcategory, status, urgency_level, tags,
			analysis, timeline, notes, documents
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.UserID,
		c.Title,
		c.Description,
		c.OriginalQuery,
		c.Language,
		c.Category,
		c.Subcategory,
		c.Status,
		c.UrgencyLevel,
		c.Tags,
		c.Analysis,
		c.Timeline,
		c.Notes,
		c.Documents,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return err
}

// GetByID retrieves a case by ID
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c := &models.Case{}
	query := `
		SELECT id, user_id, title, description, original_query, language,
			category, subcategory, status, urgency_level, tags,
			analysis, timeline, notes, documents,
			created_at, updated_at
		FROM cases
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.OriginalQuery,
		&c.Language,
		&c.Category,
		&c.Subcategory,
		&c.Status,
		&c.UrgencyLevel,
		&c.Tags,
		&c.Analysis,
		&c.Timeline,
		&c.Notes,
		&c.Documents,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Update updates a case
func (r *CaseRepository) Update(ctx context.Context, c *models.Case) error {
	query := `
		UPDATE cases SET
			title = $2,
			description = $3,
			language = $4,
			category = $5,
			subcategory = $6,
			status = $7,
			urgency_level = $8,
			tags = $9,
			analysis = $10,
			timeline = $11,
			notes = $12,
			documents = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.ID,
		c.Title,
		c.Description,
		c.Language,
		c.Category,
		c.Subcategory,
		c.Status,
		c.UrgencyLevel,
		c.Tags,
		c.Analysis,
		c.Timeline,
		c.Notes,
		c.Documents,
	).Scan(&c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCaseNotFound
	}
	return err
}

// ListByUserID retrieves all cases for a user, newest first
func (r *CaseRepository) ListByUserID(ctx context.Context, userID uuid.UUID, status *models.CaseStatus, limit, offset int) ([]*models.Case, error) {
	query := `
		SELECT id, user_id, title, description, original_query, language,
			category, subcategory, status, urgency_level, tags,
			analysis, timeline, notes, documents,
			created_at, updated_at
		FROM cases
		WHERE user_id = $1`

	args := []interface{}{userID}
	argIndex := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.Case
	for rows.Next() {
		c := &models.Case{}
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Title,
			&c.Description,
			&c.OriginalQuery,
			&c.Language,
			&c.Category,
			&c.Subcategory,
			&c.Status,
			&c.UrgencyLevel,
			&c.Tags,
			&c.Analysis,
			&c.Timeline,
			&c.Notes,
			&c.Documents,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}

// CountByStatus returns the number of cases per status
func (r *CaseRepository) CountByStatus(ctx context.Context) (map[models.CaseStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM cases GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.CaseStatus]int)
	for rows.Next() {
		var status models.CaseStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// Delete deletes a case
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cases WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// Ping verifies the primary store is reachable
func (r *CaseRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
