package service

import (
	"context"

	"github.com/google/uuid"

	"idcheck/internal/validation/publisher"
	"idcheck/internal/validation/store"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Store persists validation records.
type Store interface {
	Save(ctx context.Context, record store.Record) error
	Find(ctx context.Context, id uuid.UUID) (*store.Record, error)
	Health(ctx context.Context) error
}

// Publisher delivers completion events.
type Publisher interface {
	Publish(ctx context.Context, event publisher.Event) error
}

// Pinger is implemented by publishers that can report broker reachability.
// Health consults it when the configured publisher has one.
type Pinger interface {
	Ping(ctx context.Context) error
}
