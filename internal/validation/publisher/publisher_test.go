package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcheck/internal/document"
	"idcheck/internal/validation"
)

func TestNewCompletedEventCarriesNoFieldValues(t *testing.T) {
	v := validation.New(validation.WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	report := v.Validate(document.ExtractionResult{
		Status:       document.StatusSuccess,
		DocumentType: document.TypePassport,
		EssentialFields: document.EssentialFields{
			FullName:    document.FieldValue{Value: "Jane Marie Doe"},
			DateOfBirth: document.FieldValue{Value: "1990-05-15"},
			Sex:         document.FieldValue{Value: "F"},
		},
		Metadata: document.Metadata{
			document.FieldPassportNumber: {Value: "X1234567"},
		},
	})

	id := uuid.New()
	validatedAt := time.Date(2024, 6, 1, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	event := NewCompletedEvent(id, document.TypePassport, validatedAt, "req-9", report)

	assert.Equal(t, EventType, event.Type)
	assert.Equal(t, report.Errors, event.Errors)
	assert.Equal(t, report.Warnings, event.Warnings)
	assert.Equal(t, time.UTC, event.ValidatedAt.Location())

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	for _, pii := range []string{"Jane", "1990-05-15", "X1234567"} {
		assert.NotContains(t, string(raw), pii)
	}
}

func TestNoOp(t *testing.T) {
	var p Publisher = NoOp{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	p.Close()
}

func TestNewKafkaRequiresBrokers(t *testing.T) {
	_, err := NewKafka(nil, "topic")
	assert.Error(t, err)
}
