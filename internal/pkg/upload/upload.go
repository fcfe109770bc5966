// Package upload persists admin image uploads to local disk under
// collision-free generated names.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxExtLen = 10

// Store writes uploaded files into a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string { return s.dir }

// SaveImage writes the uploaded file under a generated name and returns
// that name. A nil header or empty filename is a no-op returning "":
// image fields are optional on every form that carries one.
func (s *Store) SaveImage(file *multipart.FileHeader) (string, error) {
	if file == nil || strings.TrimSpace(file.Filename) == "" {
		return "", nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir %q: %w", s.dir, err)
	}

	name := buildFileName(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", file.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file %q: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file %q: %w", name, err)
	}
	return name, nil
}

// buildFileName derives a collision-free stored name, keeping the
// original extension when it looks safe.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if !safeExt(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

func safeExt(ext string) bool {
	if len(ext) < 2 || len(ext) > maxExtLen {
		return false
	}
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
