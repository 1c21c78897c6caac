package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/logger"
)

// FileStore keeps each document as a pretty-printed JSON file inside one directory.
type FileStore struct {
	KeyedMutex
	dir    string
	logger logger.Logger
}

// NewFileStore creates the data directory if needed and returns a store rooted at it.
func NewFileStore(dir string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("failed to create data directory").WithCause(err)
	}
	return &FileStore{
		dir:    dir,
		logger: log.WithComponent("docstore.file"),
	}, nil
}

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file backing the named document.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// EnsureExists writes def to the document file when the file is absent.
func (s *FileStore) EnsureExists(ctx context.Context, name string, def interface{}) error {
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat %s", name)).WithCause(err)
	}

	s.logger.Infof("Initializing %s with default content", name)
	return s.Write(ctx, name, def)
}

// Read decodes the document file into out.
func (s *FileStore) Read(ctx context.Context, name string, out interface{}) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NewStorageError(fmt.Sprintf("failed to read %s", name)).WithCause(apperrors.ErrDocumentMissing)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to read %s", name)).WithCause(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to parse %s", name)).WithCause(err)
	}
	return nil
}

// Write serializes value and replaces the document file.
func (s *FileStore) Write(ctx context.Context, name string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to serialize %s", name)).WithCause(err)
	}
	if err := replaceFile(s.Path(name), data, 0o644); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", name)).WithCause(err)
	}
	return nil
}

// Ping checks that the data directory is still present.
func (s *FileStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return apperrors.NewStorageError("data directory unavailable").WithCause(err)
	}
	if !info.IsDir() {
		return apperrors.NewStorageError("data path is not a directory").WithCause(apperrors.ErrStorageNotReady)
	}
	return nil
}

// Close is a no-op for files.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// replaceFile writes data to a temp file next to path and renames it over path,
// so readers see either the old or the new content.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
