// Package storage persists document artifacts (generated drafts and user
// uploads) on the local filesystem or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ArtifactStore stores document artifacts attached to cases
type ArtifactStore interface {
	// Put stores an artifact and returns its storage path
	Put(ctx context.Context, docID uuid.UUID, name string, data io.Reader) (string, error)

	// Get retrieves an artifact by storage path
	Get(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Remove deletes an artifact by storage path
	Remove(ctx context.Context, storagePath string) error
}

// Backend selects the artifact store implementation
type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
)

// Config holds artifact store configuration
type Config struct {
	Backend      Backend
	LocalPath    string
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// New creates an artifact store for the configured backend
func New(cfg Config) (ArtifactStore, error) {
	switch cfg.Backend {
	case BackendLocal:
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./data/documents"
		}
		return NewLocal(cfg.LocalPath)
	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("S3 bucket is required for the s3 backend")
		}
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// artifactPath builds a unique storage path, sharded by the first byte of
// the document ID so one directory never collects every artifact
func artifactPath(docID uuid.UUID, name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	base = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, base)

	return fmt.Sprintf("%s/%s_%s%s", docID.String()[:2], docID.String(), base, ext)
}
