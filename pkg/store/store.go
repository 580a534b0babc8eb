// Package store persists analysis runs so past results can be listed and
// retrieved by ID. A run records which graph was analyzed, which analyses
// ran, and the serialized report.
//
// Two backends share one interface: an in-memory store used by the CLI and
// in tests, and a MongoDB store for the HTTP server.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no run exists with the requested ID.
var ErrNotFound = errors.New("run not found")

// Record is one persisted analysis run.
type Record struct {
	ID        uuid.UUID       `json:"id" bson:"_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	GraphHash string          `json:"graph_hash" bson:"graph_hash"`
	Nodes     int             `json:"nodes" bson:"nodes"`
	Edges     int             `json:"edges" bson:"edges"`
	Kinds     []string        `json:"kinds" bson:"kinds"`
	Report    json.RawMessage `json:"report" bson:"report"`
}

// Store persists analysis runs.
//
// Get returns ErrNotFound when the ID is unknown. List returns runs
// newest-first.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Close(ctx context.Context) error
}

// MemStore keeps records in memory. It is safe for concurrent use.
type MemStore struct {
	mu   sync.RWMutex
	recs map[uuid.UUID]Record
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{recs: make(map[uuid.UUID]Record)}
}

// Put stores a record, replacing any existing record with the same ID.
func (s *MemStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *MemStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns all records.
func (s *MemStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	recs := make([]Record, 0, len(s.recs))
	for _, rec := range s.recs {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Close is a no-op for the in-memory backend.
func (s *MemStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemStore)(nil)
