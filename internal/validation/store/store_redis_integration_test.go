//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"idcheck/internal/document"
	"idcheck/internal/validation"
	"idcheck/internal/validation/store"
	"idcheck/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = store.NewRedisStore(s.redis.Client, 5*time.Minute)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func sampleRecord() store.Record {
	v := validation.New(validation.WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	report := v.Validate(document.ExtractionResult{
		Status:       document.StatusSuccess,
		DocumentType: document.TypeOtherID,
		EssentialFields: document.EssentialFields{
			FullName:    document.FieldValue{Value: "Ana Lopez"},
			DateOfBirth: document.FieldValue{Value: "1995-11-02"},
			Sex:         document.FieldValue{Value: "F"},
		},
	})
	return store.Record{
		ID:           uuid.New(),
		DocumentType: document.TypeOtherID,
		ValidatedAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		RequestID:    "req-1",
		Report:       report,
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	record := sampleRecord()
	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.Find(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.ID, found.ID)
	s.Equal(record.DocumentType, found.DocumentType)
	s.True(record.ValidatedAt.Equal(found.ValidatedAt))
	s.Equal(record.Report, found.Report)
}

func (s *RedisStoreSuite) TestSkippedReportRoundTrip() {
	ctx := context.Background()
	record := sampleRecord()
	record.Report = validation.Skipped()
	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.Find(ctx, record.ID)
	s.Require().NoError(err)
	s.False(found.Report.ValidationRun)
	s.Equal(validation.SkippedMessage, found.Report.Message)
}

func (s *RedisStoreSuite) TestMissingRecord() {
	_, err := s.store.Find(context.Background(), uuid.New())
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *RedisStoreSuite) TestTTLApplied() {
	ctx := context.Background()
	record := sampleRecord()
	s.Require().NoError(s.store.Save(ctx, record))

	ttl, err := s.redis.Client.TTL(ctx, "idcheck:validation:"+record.ID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 4*time.Minute)
	s.NoError(s.store.Health(ctx))
}
