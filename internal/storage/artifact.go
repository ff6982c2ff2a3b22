package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "go-food-lens/internal/errors"
)

// ArtifactStore owns the transient image artifacts created during ingestion.
// Every artifact gets a request-scoped name, so concurrent uploads never
// share a path.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates the artifact directory if it does not exist.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewInternalError("failed to create upload directory", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Save writes the uploaded content to a uniquely named file and returns its
// path. The caller is responsible for removing the artifact when done.
func (s *ArtifactStore) Save(r io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(s.dir, uuid.New().String()+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewInternalError("failed to create artifact", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperrors.NewInternalError("failed to write artifact", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", apperrors.NewInternalError("failed to close artifact", err)
	}
	return path, nil
}

// Remove deletes an artifact. A missing file is not an error; cleanup runs on
// every pipeline exit path and must be safe to repeat.
func (s *ArtifactStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
