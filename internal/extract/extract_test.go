package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtract_UTF8TextFile(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("héllo wörld"))

	text, err := New().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", text)
}

func TestExtract_MarkdownFile(t *testing.T) {
	path := writeFile(t, "readme.md", []byte("# Title\n\nbody"))

	text, err := New().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", text)
}

func TestExtract_Latin1Fallback(t *testing.T) {
	// 0xE9 is "é" in Latin-1 and invalid as a standalone UTF-8 byte.
	path := writeFile(t, "legacy.txt", []byte{'c', 'a', 'f', 0xE9})

	text, err := New().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestExtract_UnknownExtensionTreatedAsText(t *testing.T) {
	path := writeFile(t, "data.csv", []byte("a,b,c"))

	text, err := New().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", text)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtract_CorruptPDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("not a pdf"))

	_, err := New().Extract(path)
	assert.ErrorIs(t, err, ErrExtraction)
}
