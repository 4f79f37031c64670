// Package store coordinates the primary Postgres store and the
// eventually-consistent Redis replica. Writes go to the primary
// synchronously and are mirrored to the replica in the background.
package store

import (
	"context"
	"errors"
	"time"

	"nyayasetu-backend/models"

	"github.com/google/uuid"
)

var (
	// ErrPrimaryWriteFailed means the synchronous primary write failed and
	// nothing was persisted anywhere
	ErrPrimaryWriteFailed = errors.New("primary store write failed")

	// ErrRecordUnavailable means neither the primary nor the replica could
	// serve the record
	ErrRecordUnavailable = errors.New("record unavailable from both stores")

	// ErrReplicaSyncFailed means a manual resync could not reach the replica
	ErrReplicaSyncFailed = errors.New("replica sync failed")
)

// CasePrimary is the synchronous source-of-truth store for cases
type CasePrimary interface {
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	Update(ctx context.Context, c *models.Case) error
	ListByUserID(ctx context.Context, userID uuid.UUID, status *models.CaseStatus, limit, offset int) ([]*models.Case, error)
	CountByStatus(ctx context.Context) (map[models.CaseStatus]int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// UserPrimary is the synchronous source-of-truth store for users
type UserPrimary interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Ping(ctx context.Context) error
}

// Replica is the eventually-consistent secondary store
type Replica interface {
	UpsertCase(ctx context.Context, c *models.Case, syncedAt time.Time) error
	UpsertUser(ctx context.Context, user *models.User, syncedAt time.Time) error
	GetCase(ctx context.Context, id uuid.UUID) (*models.Case, error)
	ListCasesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Case, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	DeleteCase(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Ping(ctx context.Context) error
}
