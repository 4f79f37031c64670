package models

import "time"

// StoreHealth is a point-in-time view of both persistence stores.
// It is recomputed on every check and never cached.
type StoreHealth struct {
	PrimaryUp bool      `json:"primaryUp"`
	ReplicaUp bool      `json:"replicaUp"`
	CheckedAt time.Time `json:"checkedAt"`
}
