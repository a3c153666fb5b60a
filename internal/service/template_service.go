package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ALIKZH777/dgdocs/internal/config"
	"github.com/ALIKZH777/dgdocs/internal/docx"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/extract"
	"github.com/ALIKZH777/dgdocs/internal/field"
	"github.com/ALIKZH777/dgdocs/internal/port"
)

// TemplateUploadInput is the DTO for template upload requests.
type TemplateUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// TemplateService defines the template session contract.
type TemplateService interface {
	Upload(ctx context.Context, input TemplateUploadInput) (*domain.TemplateSession, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TemplateSession, error)
	List(ctx context.Context) ([]domain.TemplateSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Fields(ctx context.Context, sessionID *uuid.UUID) ([]domain.FieldInfo, error)
}

type templateService struct {
	store     port.SessionStore
	extractor *extract.Extractor
	catalog   *field.Catalog
	cfg       *config.UploadConfig
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(
	store port.SessionStore,
	extractor *extract.Extractor,
	catalog *field.Catalog,
	cfg *config.UploadConfig,
) TemplateService {
	return &templateService{
		store:     store,
		extractor: extractor,
		catalog:   catalog,
		cfg:       cfg,
	}
}

func (s *templateService) Upload(ctx context.Context, input TemplateUploadInput) (*domain.TemplateSession, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size before reading
	maxBytes := s.cfg.MaxBytes()
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	blob, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(blob)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check: a docx is a ZIP container
	if !docx.IsPackage(blob) {
		return nil, domain.ErrUnsupportedFileType
	}

	content, err := docx.ReadDocument(blob)
	if err != nil {
		return nil, err
	}

	values := s.extractor.Extract(content)

	session := &domain.TemplateSession{
		ID:        uuid.New(),
		Name:      input.Header.Filename,
		Size:      int64(len(blob)),
		Blob:      blob,
		Content:   content,
		Values:    values,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	log.Printf("templateService.Upload: session %s from %q (%d bytes, %d fields detected)",
		session.ID, session.Name, session.Size, len(values))
	return session, nil
}

func (s *templateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TemplateSession, error) {
	return s.store.GetSession(ctx, id)
}

func (s *templateService) List(ctx context.Context) ([]domain.TemplateSession, error) {
	return s.store.ListSessions(ctx)
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	log.Printf("templateService.Delete: deleting session %s", id)
	return s.store.DeleteSession(ctx, id)
}

// Fields lists the catalog; with a session id, entries detected in that
// session carry their extracted value.
func (s *templateService) Fields(ctx context.Context, sessionID *uuid.UUID) ([]domain.FieldInfo, error) {
	var values map[string]string
	if sessionID != nil {
		session, err := s.store.GetSession(ctx, *sessionID)
		if err != nil {
			return nil, err
		}
		values = session.Values
	}

	defs := s.catalog.Definitions()
	out := make([]domain.FieldInfo, 0, len(defs))
	for _, d := range defs {
		info := domain.FieldInfo{ID: d.ID, Label: d.Label}
		if v, ok := values[d.ID]; ok {
			info.Detected = true
			info.Value = v
		}
		out = append(out, info)
	}
	return out, nil
}
