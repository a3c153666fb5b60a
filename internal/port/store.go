// Package port declares the interfaces the service layer depends on,
// keeping implementations swappable.
package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/ALIKZH777/dgdocs/internal/domain"
)

// SessionStore holds template sessions, their record queues, and batch
// progress snapshots. The core ships with an in-memory implementation;
// durable session storage is a host concern.
type SessionStore interface {
	SaveSession(ctx context.Context, s *domain.TemplateSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*domain.TemplateSession, error)
	ListSessions(ctx context.Context) ([]domain.TemplateSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	AddRecord(ctx context.Context, sessionID uuid.UUID, rec domain.ReplacementRecord) error
	ListRecords(ctx context.Context, sessionID uuid.UUID) ([]domain.ReplacementRecord, error)
	RemoveRecord(ctx context.Context, sessionID uuid.UUID, recordID string) error
	ClearRecords(ctx context.Context, sessionID uuid.UUID) error

	SetProgress(ctx context.Context, sessionID uuid.UUID, p domain.BatchProgress) error
	GetProgress(ctx context.Context, sessionID uuid.UUID) (domain.BatchProgress, error)

	// TryStartRun marks the session's batch as running; it returns false
	// when a run is already in progress. FinishRun clears the mark.
	TryStartRun(ctx context.Context, sessionID uuid.UUID) (bool, error)
	FinishRun(ctx context.Context, sessionID uuid.UUID) error
}
