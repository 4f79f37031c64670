package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"nyayasetu-backend/models"
	"nyayasetu-backend/replica"
	"nyayasetu-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultQueueSize = 256

type syncOp string

const (
	opUpsert syncOp = "upsert"
	opDelete syncOp = "delete"
)

type syncJob struct {
	op         syncOp
	collection string
	id         uuid.UUID
	userID     uuid.UUID
}

// Coordinator routes reads and writes across the primary store and the
// replica. Primary failures on write are fatal to the request; replica
// failures are only ever logged.
type Coordinator struct {
	cases   CasePrimary
	users   UserPrimary
	replica Replica
	log     *zap.Logger

	queueSize int
	queue     chan syncJob
	pending   sync.WaitGroup
	done      chan struct{}
	started   atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

// CoordinatorOption is a functional option for Coordinator
type CoordinatorOption func(*Coordinator)

// WithCaseStore sets the primary case store
func WithCaseStore(cases CasePrimary) CoordinatorOption {
	return func(c *Coordinator) {
		c.cases = cases
	}
}

// WithUserStore sets the primary user store
func WithUserStore(users UserPrimary) CoordinatorOption {
	return func(c *Coordinator) {
		c.users = users
	}
}

// WithReplica sets the replica store
func WithReplica(r Replica) CoordinatorOption {
	return func(c *Coordinator) {
		c.replica = r
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.log = log
	}
}

// WithQueueSize bounds the background sync queue
func WithQueueSize(size int) CoordinatorOption {
	return func(c *Coordinator) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// NewCoordinator creates a coordinator. Start must be called before any
// write so the background sync worker is running.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		log:       zap.NewNop(),
		queueSize: defaultQueueSize,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.queue = make(chan syncJob, c.queueSize)
	return c
}

// Start launches the background replica sync worker
func (c *Coordinator) Start() {
	c.startOnce.Do(func() {
		c.started.Store(true)
		go c.worker()
	})
}

// Close drains the sync queue and stops the worker. Safe to call even
// when Start never ran.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.queue)
		c.mu.Unlock()
		if c.started.Load() {
			<-c.done
		}
	})
}

// Flush blocks until every queued sync job has been processed. Mainly
// useful in tests and during graceful shutdown.
func (c *Coordinator) Flush() {
	c.pending.Wait()
}

func (c *Coordinator) worker() {
	defer close(c.done)
	for job := range c.queue {
		c.process(job)
		c.pending.Done()
	}
}

func (c *Coordinator) process(job syncJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch {
	case job.op == opDelete && job.collection == "cases":
		err = c.replica.DeleteCase(ctx, job.id, job.userID)
	case job.collection == "cases":
		err = c.syncCase(ctx, job.id)
	case job.collection == "users":
		err = c.syncUser(ctx, job.id)
	default:
		err = fmt.Errorf("unknown sync collection %q", job.collection)
	}

	if err != nil {
		c.log.Warn("replica sync failed",
			zap.String("op", string(job.op)),
			zap.String("collection", job.collection),
			zap.String("id", job.id.String()),
			zap.Error(err))
	}
}

func (c *Coordinator) syncCase(ctx context.Context, id uuid.UUID) error {
	record, err := c.cases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return c.replica.UpsertCase(ctx, record, time.Now().UTC())
}

func (c *Coordinator) syncUser(ctx context.Context, id uuid.UUID) error {
	record, err := c.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return c.replica.UpsertUser(ctx, record, time.Now().UTC())
}

// enqueue submits a sync job without blocking the caller. When the queue
// is full the job is dropped and logged; a manual resync can repair the
// replica later.
func (c *Coordinator) enqueue(job syncJob) {
	if c.replica == nil {
		return
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		c.log.Warn("coordinator closed, dropping sync job",
			zap.String("collection", job.collection),
			zap.String("id", job.id.String()))
		return
	}
	c.pending.Add(1)
	select {
	case c.queue <- job:
	default:
		c.pending.Done()
		c.log.Warn("replica sync queue full, dropping job",
			zap.String("collection", job.collection),
			zap.String("id", job.id.String()))
	}
}

// CreateCaseResult reports where the new case landed
type CreateCaseResult struct {
	Case       *models.Case
	ReplicaKey string
}

// CreateCase writes a case to the primary store and schedules the replica
// mirror. The replica write never blocks or fails the request.
func (c *Coordinator) CreateCase(ctx context.Context, record *models.Case) (*CreateCaseResult, error) {
	if err := c.cases.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimaryWriteFailed, err)
	}

	c.enqueue(syncJob{op: opUpsert, collection: "cases", id: record.ID, userID: record.UserID})

	return &CreateCaseResult{
		Case:       record,
		ReplicaKey: "cases:" + record.ID.String(),
	}, nil
}

// UpdateCase writes an updated case to the primary store and schedules the
// replica mirror
func (c *Coordinator) UpdateCase(ctx context.Context, record *models.Case) error {
	if err := c.cases.Update(ctx, record); err != nil {
		if errors.Is(err, repository.ErrCaseNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPrimaryWriteFailed, err)
	}

	c.enqueue(syncJob{op: opUpsert, collection: "cases", id: record.ID, userID: record.UserID})
	return nil
}

// GetCase reads from the primary store, falling back to the replica when
// the primary is unreachable or has no such record. A record missing from
// both stores surfaces as the primary's not-found error; an unreachable
// pair surfaces as ErrRecordUnavailable.
func (c *Coordinator) GetCase(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	record, primaryErr := c.cases.GetByID(ctx, id)
	if primaryErr == nil {
		return record, nil
	}

	notFound := errors.Is(primaryErr, repository.ErrCaseNotFound)
	if !notFound {
		c.log.Warn("primary read failed, trying replica",
			zap.String("id", id.String()),
			zap.Error(primaryErr))
	}

	if c.replica == nil {
		if notFound {
			return nil, primaryErr
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordUnavailable, primaryErr)
	}

	record, replicaErr := c.replica.GetCase(ctx, id)
	if replicaErr == nil {
		return record, nil
	}
	if notFound {
		return nil, primaryErr
	}
	if errors.Is(replicaErr, replica.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrRecordUnavailable, primaryErr)
	}
	return nil, fmt.Errorf("%w: primary: %v, replica: %v", ErrRecordUnavailable, primaryErr, replicaErr)
}

// ListUserCases reads from the primary store, falling back to the replica
// when the primary is unreachable. The replica fallback ignores status and
// pagination since it only keeps the full per-user set.
func (c *Coordinator) ListUserCases(ctx context.Context, userID uuid.UUID, status *models.CaseStatus, limit, offset int) ([]*models.Case, error) {
	records, err := c.cases.ListByUserID(ctx, userID, status, limit, offset)
	if err == nil {
		return records, nil
	}

	c.log.Warn("primary list failed, trying replica",
		zap.String("user_id", userID.String()),
		zap.Error(err))

	if c.replica == nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordUnavailable, err)
	}
	records, replicaErr := c.replica.ListCasesByUser(ctx, userID)
	if replicaErr != nil {
		return nil, fmt.Errorf("%w: primary: %v, replica: %v", ErrRecordUnavailable, err, replicaErr)
	}
	return records, nil
}

// DeleteCase removes a case from the primary store and schedules the
// replica delete
func (c *Coordinator) DeleteCase(ctx context.Context, id uuid.UUID) error {
	record, err := c.cases.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.cases.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCaseNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPrimaryWriteFailed, err)
	}

	c.enqueue(syncJob{op: opDelete, collection: "cases", id: id, userID: record.UserID})
	return nil
}

// CountCasesByStatus reports case counts from the primary store
func (c *Coordinator) CountCasesByStatus(ctx context.Context) (map[models.CaseStatus]int, error) {
	return c.cases.CountByStatus(ctx)
}

// CreateUserResult reports where the new user landed
type CreateUserResult struct {
	User       *models.User
	ReplicaKey string
}

// CreateUser writes a user to the primary store and schedules the replica
// mirror
func (c *Coordinator) CreateUser(ctx context.Context, user *models.User) (*CreateUserResult, error) {
	if err := c.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimaryWriteFailed, err)
	}

	c.enqueue(syncJob{op: opUpsert, collection: "users", id: user.ID})

	return &CreateUserResult{
		User:       user,
		ReplicaKey: "users:" + user.ID.String(),
	}, nil
}

// GetUser reads from the primary store, falling back to the replica when
// the primary is unreachable or has no such record
func (c *Coordinator) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, primaryErr := c.users.GetByID(ctx, id)
	if primaryErr == nil {
		return user, nil
	}

	notFound := errors.Is(primaryErr, repository.ErrUserNotFound)

	if c.replica == nil {
		if notFound {
			return nil, primaryErr
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordUnavailable, primaryErr)
	}

	user, replicaErr := c.replica.GetUser(ctx, id)
	if replicaErr == nil {
		return user, nil
	}
	if notFound {
		return nil, primaryErr
	}
	if errors.Is(replicaErr, replica.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrRecordUnavailable, primaryErr)
	}
	return nil, fmt.Errorf("%w: primary: %v, replica: %v", ErrRecordUnavailable, primaryErr, replicaErr)
}

// GetUserByEmail reads from the primary store only. The replica is not
// indexed by email.
func (c *Coordinator) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.users.GetByEmail(ctx, email)
}

// SyncToReplica copies one record from the primary store to the replica
// right now. Used by the manual resync endpoint; the write is idempotent.
func (c *Coordinator) SyncToReplica(ctx context.Context, collection string, id uuid.UUID) error {
	if c.replica == nil {
		return fmt.Errorf("%w: no replica configured", ErrReplicaSyncFailed)
	}

	var err error
	switch collection {
	case "cases":
		err = c.syncCase(ctx, id)
	case "users":
		err = c.syncUser(ctx, id)
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}

	if err != nil {
		if errors.Is(err, repository.ErrCaseNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrReplicaSyncFailed, err)
	}
	return nil
}

// HealthCheck probes both stores independently
func (c *Coordinator) HealthCheck(ctx context.Context) models.StoreHealth {
	health := models.StoreHealth{CheckedAt: time.Now().UTC()}

	if err := c.cases.Ping(ctx); err != nil {
		c.log.Warn("primary store health check failed", zap.Error(err))
	} else {
		health.PrimaryUp = true
	}

	if c.replica != nil {
		if err := c.replica.Ping(ctx); err != nil {
			c.log.Warn("replica store health check failed", zap.Error(err))
		} else {
			health.ReplicaUp = true
		}
	}

	return health
}
