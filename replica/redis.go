// Package replica implements the eventually-consistent secondary store on
// Redis. Records are mirrored from Postgres as JSON envelopes that carry
// their provenance, so a replica read can always be traced back to its
// primary row.
package replica

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nyayasetu-backend/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a record has not been mirrored to the replica
var ErrNotFound = errors.New("record not found in replica")

const (
	casePrefix    = "cases:"
	userPrefix    = "users:"
	userSetPrefix = "user_cases:"
)

// envelope wraps a mirrored record with its primary-store provenance
type envelope struct {
	PrimaryID string          `json:"primaryId"`
	Source    string          `json:"source"`
	SyncedAt  time.Time       `json:"syncedAt"`
	Data      json.RawMessage `json:"data"`
}

// Store mirrors cases and users into Redis
type Store struct {
	client *redis.Client
}

// NewStore creates a replica store on an existing Redis client
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// UpsertCase writes or overwrites the replica copy of a case. The write is
// idempotent, so replays from the sync queue are harmless.
func (s *Store) UpsertCase(ctx context.Context, c *models.Case, syncedAt time.Time) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal case for replica: %w", err)
	}

	env := envelope{
		PrimaryID: c.ID.String(),
		Source:    "postgres",
		SyncedAt:  syncedAt,
		Data:      data,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, casePrefix+c.ID.String(), payload, 0)
	pipe.SAdd(ctx, userSetPrefix+c.UserID.String(), c.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}

// UpsertUser writes or overwrites the replica copy of a user
func (s *Store) UpsertUser(ctx context.Context, user *models.User, syncedAt time.Time) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user for replica: %w", err)
	}

	env := envelope{
		PrimaryID: user.ID.String(),
		Source:    "postgres",
		SyncedAt:  syncedAt,
		Data:      data,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, userPrefix+user.ID.String(), payload, 0).Err()
}

// GetCase reads the replica copy of a case
func (s *Store) GetCase(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	payload, err := s.client.Get(ctx, casePrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("corrupt replica envelope for case %s: %w", id, err)
	}

	c := &models.Case{}
	if err := json.Unmarshal(env.Data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCasesByUser reads all mirrored cases for a user via the membership set
func (s *Store) ListCasesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Case, error) {
	ids, err := s.client.SMembers(ctx, userSetPrefix+userID.String()).Result()
	if err != nil {
		return nil, err
	}

	var cases []*models.Case
	for _, rawID := range ids {
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		c, err := s.GetCase(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// The set can lag behind a delete, skip stale members
			continue
		}
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// GetUser reads the replica copy of a user
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	payload, err := s.client.Get(ctx, userPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("corrupt replica envelope for user %s: %w", id, err)
	}

	user := &models.User{}
	if err := json.Unmarshal(env.Data, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteCase removes the replica copy of a case and its set membership
func (s *Store) DeleteCase(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, casePrefix+id.String())
	pipe.SRem(ctx, userSetPrefix+userID.String(), id.String())
	_, err := pipe.Exec(ctx)
	return err
}

// Ping verifies the replica is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
