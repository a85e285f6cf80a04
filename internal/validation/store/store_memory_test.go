package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"idcheck/internal/document"
	"idcheck/internal/validation"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemoryStore(time.Hour)
	s.store.now = func() time.Time { return s.now }
}

func newRecord() Record {
	return Record{
		ID:           uuid.New(),
		DocumentType: document.TypePassport,
		ValidatedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Report:       validation.Skipped(),
	}
}

func (s *InMemoryStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	record := newRecord()
	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.Find(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record, *found)
}

func (s *InMemoryStoreSuite) TestMissingRecord() {
	_, err := s.store.Find(context.Background(), uuid.New())
	s.ErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestExpiry() {
	ctx := context.Background()
	record := newRecord()
	s.Require().NoError(s.store.Save(ctx, record))

	s.now = s.now.Add(59 * time.Minute)
	_, err := s.store.Find(ctx, record.ID)
	s.NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.store.Find(ctx, record.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestExpiredRecordsArePruned() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, newRecord()))
	s.now = s.now.Add(2 * time.Hour)
	for range pruneEvery - 1 {
		s.Require().NoError(s.store.Save(ctx, newRecord()))
	}
	s.Equal(pruneEvery-1, s.store.Len())
}

func (s *InMemoryStoreSuite) TestFindReturnsCopy() {
	ctx := context.Background()
	record := newRecord()
	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.Find(ctx, record.ID)
	s.Require().NoError(err)
	found.RequestID = "mutated"

	again, err := s.store.Find(ctx, record.ID)
	s.Require().NoError(err)
	s.Empty(again.RequestID)
}

func (s *InMemoryStoreSuite) TestConcurrentAccess() {
	ctx := context.Background()
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 50)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := newRecord()
			ids[i] = record.ID
			s.NoError(s.store.Save(ctx, record))
			_, err := s.store.Find(ctx, record.ID)
			s.NoError(err)
		}(i)
	}
	wg.Wait()
	s.Equal(len(ids), s.store.Len())
}
