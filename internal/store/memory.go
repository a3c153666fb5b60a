// Package store provides the in-memory SessionStore implementation.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ALIKZH777/dgdocs/internal/domain"
)

// Memory is a mutex-guarded in-process SessionStore. Sessions live for the
// lifetime of the process; a restart loses them, which matches the core's
// contract that durable persistence is a host concern.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.TemplateSession
	records  map[uuid.UUID][]domain.ReplacementRecord
	progress map[uuid.UUID]domain.BatchProgress
	running  map[uuid.UUID]bool
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[uuid.UUID]*domain.TemplateSession),
		records:  make(map[uuid.UUID][]domain.ReplacementRecord),
		progress: make(map[uuid.UUID]domain.BatchProgress),
		running:  make(map[uuid.UUID]bool),
	}
}

func (m *Memory) SaveSession(_ context.Context, s *domain.TemplateSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *Memory) GetSession(_ context.Context, id uuid.UUID) (*domain.TemplateSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *Memory) ListSessions(_ context.Context) ([]domain.TemplateSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.TemplateSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (m *Memory) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, id)
	delete(m.records, id)
	delete(m.progress, id)
	delete(m.running, id)
	return nil
}

func (m *Memory) AddRecord(_ context.Context, sessionID uuid.UUID, rec domain.ReplacementRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return domain.ErrNotFound
	}
	m.records[sessionID] = append(m.records[sessionID], rec)
	return nil
}

func (m *Memory) ListRecords(_ context.Context, sessionID uuid.UUID) ([]domain.ReplacementRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return nil, domain.ErrNotFound
	}
	recs := m.records[sessionID]
	out := make([]domain.ReplacementRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (m *Memory) RemoveRecord(_ context.Context, sessionID uuid.UUID, recordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.records[sessionID]
	for i, r := range recs {
		if r.ID == recordID {
			m.records[sessionID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *Memory) ClearRecords(_ context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, sessionID)
	return nil
}

func (m *Memory) SetProgress(_ context.Context, sessionID uuid.UUID, p domain.BatchProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.UpdatedAt = time.Now()
	m.progress[sessionID] = p
	return nil
}

func (m *Memory) GetProgress(_ context.Context, sessionID uuid.UUID) (domain.BatchProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return domain.BatchProgress{}, domain.ErrNotFound
	}
	p, ok := m.progress[sessionID]
	if !ok {
		return domain.BatchProgress{State: domain.BatchStateIdle}, nil
	}
	return p, nil
}

func (m *Memory) TryStartRun(_ context.Context, sessionID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return false, domain.ErrNotFound
	}
	if m.running[sessionID] {
		return false, nil
	}
	m.running[sessionID] = true
	return true, nil
}

func (m *Memory) FinishRun(_ context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.running, sessionID)
	return nil
}
