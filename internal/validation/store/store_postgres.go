package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"idcheck/internal/document"
	"idcheck/pkg/requestcontext"
)

const schema = `
CREATE TABLE IF NOT EXISTS validation_reports (
	id            UUID PRIMARY KEY,
	document_type TEXT        NOT NULL,
	validated_at  TIMESTAMPTZ NOT NULL,
	request_id    TEXT        NOT NULL DEFAULT '',
	report        JSONB       NOT NULL,
	expires_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS validation_reports_expires_at_idx ON validation_reports (expires_at);
`

// PostgresStore persists records in PostgreSQL. Expired rows are invisible
// to Find and removed by DeleteExpired.
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresStore constructs a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool, ttl time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, ttl: ttl}
}

// Migrate creates the table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate validation_reports: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, record Record) error {
	report, err := json.Marshal(record.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	expiresAt := requestcontext.Now(ctx).Add(s.ttl)
	_, err = s.pool.Exec(ctx, `
		INSERT INTO validation_reports (id, document_type, validated_at, request_id, report, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			document_type = EXCLUDED.document_type,
			validated_at  = EXCLUDED.validated_at,
			request_id    = EXCLUDED.request_id,
			report        = EXCLUDED.report,
			expires_at    = EXCLUDED.expires_at`,
		record.ID, string(record.DocumentType), record.ValidatedAt, record.RequestID, report, expiresAt)
	if err != nil {
		return fmt.Errorf("save validation record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	var (
		record  Record
		docType string
		report  []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, document_type, validated_at, request_id, report
		FROM validation_reports
		WHERE id = $1 AND expires_at > $2`,
		id, requestcontext.Now(ctx)).Scan(&record.ID, &docType, &record.ValidatedAt, &record.RequestID, &report)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find validation record: %w", err)
	}
	record.DocumentType = document.Type(docType)
	if err := json.Unmarshal(report, &record.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &record, nil
}

// DeleteExpired removes rows past their retention and returns how many went.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM validation_reports WHERE expires_at <= $1`, requestcontext.Now(ctx))
	if err != nil {
		return 0, fmt.Errorf("delete expired validation records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
