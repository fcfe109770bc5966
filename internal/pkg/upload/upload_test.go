package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveImageNilIsNoop(t *testing.T) {
	s := NewStore(t.TempDir())

	name, err := s.SaveImage(nil)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestSaveImageEmptyFilenameIsNoop(t *testing.T) {
	s := NewStore(t.TempDir())

	name, err := s.SaveImage(buildFileHeader(t, "   ", "x"))
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestSaveImageWritesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	name, err := s.SaveImage(buildFileHeader(t, "logo.PNG", "png-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.True(t, strings.HasSuffix(name, ".png"), "expected lowercased extension, got %q", name)

	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSaveImageGeneratesDistinctNames(t *testing.T) {
	s := NewStore(t.TempDir())

	first, err := s.SaveImage(buildFileHeader(t, "photo.jpg", "a"))
	require.NoError(t, err)
	second, err := s.SaveImage(buildFileHeader(t, "photo.jpg", "b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSaveImageDropsUnsafeExtension(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	name, err := s.SaveImage(buildFileHeader(t, "../../etc/passwd", "boom"))
	require.NoError(t, err)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")

	// The file must land inside the store directory.
	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
}

func TestSaveImageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s := NewStore(dir)

	name, err := s.SaveImage(buildFileHeader(t, "pic.gif", "gif"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
}
