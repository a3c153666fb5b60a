package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALIKZH777/dgdocs/internal/domain"
)

// makePackage builds a minimal docx-shaped container for tests.
func makePackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func templateParts(body string) map[string]string {
	return map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   body,
		"word/styles.xml":     `<?xml version="1.0"?><w:styles/>`,
	}
}

func TestIsPackage(t *testing.T) {
	blob := makePackage(t, templateParts("<w:document/>"))
	assert.True(t, IsPackage(blob))
	assert.False(t, IsPackage([]byte("plain text")))
	assert.False(t, IsPackage(nil))
}

func TestReadDocument(t *testing.T) {
	blob := makePackage(t, templateParts("<w:document><w:t>سلام</w:t></w:document>"))
	content, err := ReadDocument(blob)
	require.NoError(t, err)
	assert.Equal(t, "<w:document><w:t>سلام</w:t></w:document>", content)
}

func TestReadDocument_NotAZip(t *testing.T) {
	_, err := ReadDocument([]byte("definitely not a zip archive"))
	assert.ErrorIs(t, err, domain.ErrTemplateCorrupt)
}

func TestReadDocument_MissingBodyPart(t *testing.T) {
	blob := makePackage(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	_, err := ReadDocument(blob)
	assert.ErrorIs(t, err, domain.ErrMissingDocumentPart)
}

func TestReplaceDocument_RewritesOnlyBodyPart(t *testing.T) {
	blob := makePackage(t, templateParts("<w:document>old</w:document>"))

	out, err := ReplaceDocument(blob, "<w:document>new</w:document>")
	require.NoError(t, err)

	content, err := ReadDocument(out)
	require.NoError(t, err)
	assert.Equal(t, "<w:document>new</w:document>", content)

	// every other part passes through byte for byte
	r, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	names := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		names[f.Name] = string(data)
	}
	assert.Len(t, names, 3)
	assert.Equal(t, `<?xml version="1.0"?><Types/>`, names["[Content_Types].xml"])
	assert.Equal(t, `<?xml version="1.0"?><w:styles/>`, names["word/styles.xml"])
}

func TestReplaceDocument_CorruptContainer(t *testing.T) {
	_, err := ReplaceDocument([]byte("garbage"), "<w:document/>")
	assert.ErrorIs(t, err, domain.ErrTemplateCorrupt)
}

func TestReplaceDocument_MissingBodyPart(t *testing.T) {
	blob := makePackage(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	_, err := ReplaceDocument(blob, "<w:document/>")
	assert.ErrorIs(t, err, domain.ErrMissingDocumentPart)
}
