package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALIKZH777/dgdocs/internal/config"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/extract"
	"github.com/ALIKZH777/dgdocs/internal/field"
	"github.com/ALIKZH777/dgdocs/internal/store"
)

func newTemplateService(t *testing.T) TemplateService {
	t.Helper()
	catalog := field.NewCatalog()
	return NewTemplateService(
		store.NewMemory(),
		extract.New(catalog),
		catalog,
		&config.UploadConfig{MaxFileSizeMB: 1},
	)
}

// uploadInput builds a TemplateUploadInput the way an HTTP multipart form
// would deliver it.
func uploadInput(t *testing.T, filename string, blob []byte) TemplateUploadInput {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("template", filename)
	require.NoError(t, err)
	_, err = fw.Write(blob)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(16 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["template"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return TemplateUploadInput{File: file, Header: header}
}

func TestTemplateService_Upload(t *testing.T) {
	ctx := context.Background()
	svc := newTemplateService(t)

	session, err := svc.Upload(ctx, uploadInput(t, "قرارداد.docx", samplePackage(t)))
	require.NoError(t, err)
	assert.Equal(t, "قرارداد.docx", session.Name)
	assert.Equal(t, sampleBody, session.Content)
	assert.Equal(t, "علی رضایی", session.Values[field.OwnerFullName])

	got, err := svc.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestTemplateService_UploadRejections(t *testing.T) {
	ctx := context.Background()
	svc := newTemplateService(t)

	_, err := svc.Upload(ctx, uploadInput(t, "contract.pdf", samplePackage(t)))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	// docx extension but not a ZIP container
	_, err = svc.Upload(ctx, uploadInput(t, "contract.docx", []byte("plain text")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = svc.Upload(ctx, uploadInput(t, "contract.docx", bytes.Repeat([]byte{0x50}, 2<<20)))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestTemplateService_Fields(t *testing.T) {
	ctx := context.Background()
	svc := newTemplateService(t)

	// catalog listing without a session marks nothing detected
	infos, err := svc.Fields(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, infos)
	for _, info := range infos {
		assert.False(t, info.Detected)
	}

	session, err := svc.Upload(ctx, uploadInput(t, "contract.docx", samplePackage(t)))
	require.NoError(t, err)

	infos, err = svc.Fields(ctx, &session.ID)
	require.NoError(t, err)
	byID := make(map[string]domain.FieldInfo)
	for _, info := range infos {
		byID[info.ID] = info
	}
	assert.True(t, byID[field.OwnerFullName].Detected)
	assert.Equal(t, "علی رضایی", byID[field.OwnerFullName].Value)
	assert.False(t, byID[field.NationalID].Detected)

	missing := uuid.New()
	_, err = svc.Fields(ctx, &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
