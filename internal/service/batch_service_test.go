package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALIKZH777/dgdocs/internal/batch"
	"github.com/ALIKZH777/dgdocs/internal/config"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/field"
	"github.com/ALIKZH777/dgdocs/internal/store"
)

const sampleBody = "<w:document><w:t>نام و نام خانوادگی: علی رضایی</w:t></w:document>"

func samplePackage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   sampleBody,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newBatchFixture(t *testing.T, maxRecords int) (BatchService, *store.Memory, uuid.UUID) {
	t.Helper()
	st := store.NewMemory()
	session := &domain.TemplateSession{
		ID:      uuid.New(),
		Name:    "contract.docx",
		Blob:    samplePackage(t),
		Content: sampleBody,
		Values:  map[string]string{field.OwnerFullName: "علی رضایی"},
	}
	require.NoError(t, st.SaveSession(context.Background(), session))

	cfg := &config.BatchConfig{MaxRecords: maxRecords}
	svc := NewBatchService(st, batch.NewOrchestrator(0), cfg)
	return svc, st, session.ID
}

func ownerRecord(newName string) domain.ReplacementRecord {
	return domain.ReplacementRecord{
		SelectedFields: []string{field.OwnerFullName},
		NewValues:      map[string]string{field.OwnerFullName: newName},
	}
}

func TestBatchService_AddRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newBatchFixture(t, 2)

	rec, err := svc.AddRecord(ctx, sessionID, ownerRecord("حسن کریمی"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	_, err = svc.AddRecord(ctx, sessionID, domain.ReplacementRecord{
		SelectedFields: []string{field.NationalID},
		NewValues:      map[string]string{field.NationalID: "0499370899"},
	})
	assert.ErrorIs(t, err, domain.ErrFieldNotDetected)

	_, err = svc.AddRecord(ctx, sessionID, domain.ReplacementRecord{
		SelectedFields: []string{field.OwnerFullName},
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteRecord)

	_, err = svc.AddRecord(ctx, uuid.New(), ownerRecord("حسن کریمی"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddRecord(ctx, sessionID, ownerRecord("مریم احمدی"))
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, sessionID, ownerRecord("رضا موسوی"))
	assert.ErrorIs(t, err, domain.ErrQueueFull)
}

func TestBatchService_DefaultIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newBatchFixture(t, 10)

	// records queued back to back must stay individually addressable
	first, err := svc.AddRecord(ctx, sessionID, ownerRecord("حسن کریمی"))
	require.NoError(t, err)
	second, err := svc.AddRecord(ctx, sessionID, ownerRecord("مریم احمدی"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	require.NoError(t, svc.RemoveRecord(ctx, sessionID, first.ID))
	recs, err := svc.ListRecords(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, second.ID, recs[0].ID)
}

func TestBatchService_ImportRecordsSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newBatchFixture(t, 10)

	added, err := svc.ImportRecords(ctx, sessionID, []domain.ReplacementRecord{
		ownerRecord("حسن کریمی"),
		{SelectedFields: []string{field.NationalID},
			NewValues: map[string]string{field.NationalID: "0499370899"}},
		ownerRecord("مریم احمدی"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	recs, err := svc.ListRecords(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestBatchService_Run(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newBatchFixture(t, 10)

	_, err := svc.Run(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)

	_, err = svc.AddRecord(ctx, sessionID, ownerRecord("حسن کریمی"))
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, sessionID, ownerRecord("مریم احمدی"))
	require.NoError(t, err)

	report, err := svc.Run(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.ProcessedCount)
	assert.Equal(t, 2, report.TotalCount)
	assert.NotEmpty(t, report.Archive)

	zr, err := zip.NewReader(bytes.NewReader(report.Archive), int64(len(report.Archive)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)

	// a completed run consumes the queue and records final progress
	recs, err := svc.ListRecords(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, recs)

	p, err := svc.Progress(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStateCompleted, p.State)
	assert.Equal(t, 100.0, p.Percent)

	_, err = svc.Run(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)
}

func TestBatchService_RunGuard(t *testing.T) {
	ctx := context.Background()
	svc, st, sessionID := newBatchFixture(t, 10)

	_, err := svc.AddRecord(ctx, sessionID, ownerRecord("حسن کریمی"))
	require.NoError(t, err)

	ok, err := st.TryStartRun(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Run(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrBatchRunning)
}
