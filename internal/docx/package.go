// Package docx reads and rewrites the body part of a Word document
// container. A .docx file is a ZIP archive of XML parts; this package only
// touches word/document.xml and passes every other part through unchanged.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/ALIKZH777/dgdocs/internal/domain"
)

// DocumentPart is the archive path of the body XML inside the container.
const DocumentPart = "word/document.xml"

var packageMagic = []byte{'P', 'K', 0x03, 0x04}

// IsPackage reports whether blob starts with the ZIP local-file signature.
func IsPackage(blob []byte) bool {
	return bytes.HasPrefix(blob, packageMagic)
}

// ReadDocument opens the container and returns the body XML as text.
func ReadDocument(blob []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTemplateCorrupt, err)
	}
	for _, f := range r.File {
		if f.Name != DocumentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: opening %s: %v", domain.ErrTemplateCorrupt, DocumentPart, err)
		}
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("%w: reading %s: %v", domain.ErrTemplateCorrupt, DocumentPart, err)
		}
		return string(data), nil
	}
	return "", domain.ErrMissingDocumentPart
}

// ReplaceDocument re-serializes the container with the body part replaced
// by body. All other parts are copied through byte for byte.
func ReplaceDocument(blob []byte, body string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTemplateCorrupt, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	replaced := false
	for _, f := range r.File {
		if f.Name == DocumentPart {
			w, err := zw.Create(f.Name)
			if err != nil {
				return nil, fmt.Errorf("writing %s: %w", f.Name, err)
			}
			if _, err := io.WriteString(w, body); err != nil {
				return nil, fmt.Errorf("writing %s: %w", f.Name, err)
			}
			replaced = true
			continue
		}
		if err := copyPart(zw, f); err != nil {
			return nil, err
		}
	}
	if !replaced {
		return nil, domain.ErrMissingDocumentPart
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing container: %w", err)
	}
	return buf.Bytes(), nil
}

func copyPart(zw *zip.Writer, f *zip.File) error {
	hdr := f.FileHeader
	w, err := zw.CreateHeader(&hdr)
	if err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", domain.ErrTemplateCorrupt, f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("copying %s: %w", f.Name, err)
	}
	return nil
}
