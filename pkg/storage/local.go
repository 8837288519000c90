package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadSize caps media files at 5MB.
const MaxUploadSize = 5 << 20

// allowedTypes lists the accepted upload MIME types (images and audio only).
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/mp3":  true,
}

// LocalStore saves uploaded media under a single directory, served
// statically at /uploads.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory media is stored under
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file to disk under a timestamped name and returns
// the stored filename. Rejects files that are too large or of an unsupported
// MIME type.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("file too large: %d bytes", file.Size)
	}
	if !allowedTypes[ContentType(file)] {
		return "", fmt.Errorf("unsupported file type: %s", ContentType(file))
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// ContentType returns the declared MIME type of an upload, without
// parameters
func ContentType(file *multipart.FileHeader) string {
	ct := file.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// IsImage reports whether the upload declares an image MIME type
func IsImage(file *multipart.FileHeader) bool {
	return strings.HasPrefix(ContentType(file), "image/")
}

// IsAudio reports whether the upload declares an audio MIME type
func IsAudio(file *multipart.FileHeader) bool {
	return strings.HasPrefix(ContentType(file), "audio/")
}
