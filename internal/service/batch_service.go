package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ALIKZH777/dgdocs/internal/batch"
	"github.com/ALIKZH777/dgdocs/internal/config"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/port"
)

// BatchService manages per-session record queues and batch runs.
type BatchService interface {
	AddRecord(ctx context.Context, sessionID uuid.UUID, rec domain.ReplacementRecord) (*domain.ReplacementRecord, error)
	ImportRecords(ctx context.Context, sessionID uuid.UUID, recs []domain.ReplacementRecord) (int, error)
	ListRecords(ctx context.Context, sessionID uuid.UUID) ([]domain.ReplacementRecord, error)
	RemoveRecord(ctx context.Context, sessionID uuid.UUID, recordID string) error
	Run(ctx context.Context, sessionID uuid.UUID) (*domain.BatchReport, error)
	Progress(ctx context.Context, sessionID uuid.UUID) (domain.BatchProgress, error)
}

type batchService struct {
	store port.SessionStore
	orch  *batch.Orchestrator
	cfg   *config.BatchConfig
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(store port.SessionStore, orch *batch.Orchestrator, cfg *config.BatchConfig) BatchService {
	return &batchService{store: store, orch: orch, cfg: cfg}
}

func (s *batchService) AddRecord(ctx context.Context, sessionID uuid.UUID, rec domain.ReplacementRecord) (*domain.ReplacementRecord, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// A selected field must have been detected in the template and must
	// carry a replacement value.
	for _, id := range rec.SelectedFields {
		if _, ok := session.Values[id]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrFieldNotDetected, id)
		}
		if rec.NewValues[id] == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrIncompleteRecord, id)
		}
	}

	existing, err := s.store.ListRecords(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.cfg.MaxRecords {
		return nil, domain.ErrQueueFull
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := s.store.AddRecord(ctx, sessionID, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ImportRecords queues a batch of records, skipping invalid ones. Returns
// the number queued.
func (s *batchService) ImportRecords(ctx context.Context, sessionID uuid.UUID, recs []domain.ReplacementRecord) (int, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return 0, err
	}
	added := 0
	for _, rec := range recs {
		if _, err := s.AddRecord(ctx, sessionID, rec); err != nil {
			log.Printf("batchService.ImportRecords: skipping record %s: %v", rec.ID, err)
			continue
		}
		added++
	}
	return added, nil
}

func (s *batchService) ListRecords(ctx context.Context, sessionID uuid.UUID) ([]domain.ReplacementRecord, error) {
	return s.store.ListRecords(ctx, sessionID)
}

func (s *batchService) RemoveRecord(ctx context.Context, sessionID uuid.UUID, recordID string) error {
	return s.store.RemoveRecord(ctx, sessionID, recordID)
}

func (s *batchService) Progress(ctx context.Context, sessionID uuid.UUID) (domain.BatchProgress, error) {
	return s.store.GetProgress(ctx, sessionID)
}

// Run drives the orchestrator over the session's queue. One run per
// session at a time; the queue is cleared after a completed run.
func (s *batchService) Run(ctx context.Context, sessionID uuid.UUID) (*domain.BatchReport, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRecords(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyQueue
	}

	ok, err := s.store.TryStartRun(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrBatchRunning
	}
	defer func() { _ = s.store.FinishRun(ctx, sessionID) }()

	onProgress := func(pct float64, status string) {
		_ = s.store.SetProgress(ctx, sessionID, domain.BatchProgress{
			State:   domain.BatchStateRunning,
			Percent: pct,
			Status:  status,
		})
	}

	log.Printf("batchService.Run: session %s, %d records", sessionID, len(records))
	report, err := s.orch.Run(ctx, records, session.Blob, session.Content, session.Values, onProgress)
	if err != nil {
		_ = s.store.SetProgress(ctx, sessionID, domain.BatchProgress{
			State:  domain.BatchStateAborted,
			Status: err.Error(),
		})
		return nil, err
	}

	_ = s.store.SetProgress(ctx, sessionID, domain.BatchProgress{
		State:   domain.BatchStateCompleted,
		Percent: 100,
		Status:  fmt.Sprintf("completed %d of %d records", report.ProcessedCount, report.TotalCount),
	})
	// Queued records are consumed by a completed run.
	_ = s.store.ClearRecords(ctx, sessionID)
	return report, nil
}
