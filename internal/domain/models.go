package domain

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSession holds one uploaded reference template and everything
// derived from it. Blob, Content and Values are read-only once the session
// is created; batch runs work on copies.
type TemplateSession struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Size      int64             `json:"size"`
	Blob      []byte            `json:"-"`
	Content   string            `json:"-"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
}

// ReplacementRecord is one queued request to produce one output document.
// SelectedFields must be a subset of the session's detected fields;
// NewValues covers at least the selected fields.
type ReplacementRecord struct {
	ID             string            `json:"id"`
	SelectedFields []string          `json:"selected_fields"`
	NewValues      map[string]string `json:"new_values"`
	CreatedAt      time.Time         `json:"created_at"`
}

// BatchOutcome is the per-record result of a batch run.
type BatchOutcome struct {
	RecordID string `json:"record_id"`
	Success  bool   `json:"success"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchReport aggregates one orchestrator run. Archive holds the final
// ZIP bundle of all successful outputs.
type BatchReport struct {
	ProcessedCount int            `json:"processed_count"`
	TotalCount     int            `json:"total_count"`
	Outcomes       []BatchOutcome `json:"outcomes"`
	Archive        []byte         `json:"-"`
}

// BatchProgress is the caller-visible snapshot of a running batch.
type BatchProgress struct {
	State     BatchState `json:"state"`
	Percent   float64    `json:"percent"`
	Status    string     `json:"status"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FieldInfo describes one catalog entry for API consumers.
type FieldInfo struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Detected bool   `json:"detected"`
	Value    string `json:"value,omitempty"`
}
