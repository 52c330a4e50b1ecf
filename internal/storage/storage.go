// Package storage keeps uploaded profile images on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore writes profile images under a base directory, one file per
// user keyed by the user id.
type ImageStore struct {
	baseDir string
}

// NewImageStore creates an ImageStore rooted at baseDir, creating the
// directory when missing.
func NewImageStore(baseDir string) (*ImageStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{baseDir: baseDir}, nil
}

// Save stores the image for a user, replacing any previous one, and
// returns the stored file's relative path.
func (s *ImageStore) Save(userID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	if err := s.Delete(userID); err != nil {
		return "", err
	}

	name := userID + ext
	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// Delete removes the stored image of a user, if any.
func (s *ImageStore) Delete(userID string) error {
	matches, err := filepath.Glob(filepath.Join(s.baseDir, userID+".*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove image file: %w", err)
		}
	}
	return nil
}

// Path returns the absolute path of a stored image name.
func (s *ImageStore) Path(name string) string {
	return filepath.Join(s.baseDir, name)
}
