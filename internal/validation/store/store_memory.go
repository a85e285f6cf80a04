package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const pruneEvery = 256

type cachedRecord struct {
	record   Record
	storedAt time.Time
}

// InMemoryStore keeps records in process memory with TTL expiration.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]cachedRecord
	ttl     time.Duration
	now     func() time.Time
	saves   int
}

// NewInMemoryStore creates a new in-memory store with the specified TTL.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		records: make(map[uuid.UUID]cachedRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save stores a record keyed by its ID, replacing any previous one.
// Expired records are swept periodically so memory stays bounded by the TTL.
func (s *InMemoryStore) Save(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.records[record.ID] = cachedRecord{record: record, storedAt: now}
	s.saves++
	if s.saves%pruneEvery == 0 {
		s.pruneLocked(now)
	}
	return nil
}

// Find retrieves a record by ID.
// Returns ErrNotFound if the record does not exist or has expired past the TTL.
func (s *InMemoryStore) Find(_ context.Context, id uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cached, ok := s.records[id]; ok {
		if s.now().Sub(cached.storedAt) < s.ttl {
			record := cached.record
			return &record, nil
		}
	}
	return nil, ErrNotFound
}

// Health always succeeds.
func (s *InMemoryStore) Health(context.Context) error {
	return nil
}

// Len returns the number of records held, expired or not.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *InMemoryStore) pruneLocked(now time.Time) {
	for id, cached := range s.records {
		if now.Sub(cached.storedAt) >= s.ttl {
			delete(s.records, id)
		}
	}
}
