package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/logger"
)

var errInvalidLegacyJSON = errors.New("file does not contain valid JSON")

// LegacyMockDirectory reads mocks from the deprecated layout: one {id}.json file per mock.
type LegacyMockDirectory struct {
	dir    string
	logger logger.Logger
}

var _ repository.LegacyMockSource = (*LegacyMockDirectory)(nil)

// NewLegacyMockDirectory creates a source over dir
func NewLegacyMockDirectory(dir string, log logger.Logger) *LegacyMockDirectory {
	return &LegacyMockDirectory{
		dir:    dir,
		logger: log.WithComponent("legacy-mocks"),
	}
}

// Scan reads every *.json file in the directory, in name order.
func (d *LegacyMockDirectory) Scan(ctx context.Context) ([]repository.LegacyMockFile, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list legacy mocks in %s: %w", d.dir, err)
	}

	files := make([]repository.LegacyMockFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		file := repository.LegacyMockFile{ID: strings.TrimSuffix(entry.Name(), ".json")}
		content, err := os.ReadFile(filepath.Join(d.dir, entry.Name()))
		switch {
		case err != nil:
			file.Err = err
		case !json.Valid(content):
			file.Err = errInvalidLegacyJSON
		default:
			file.Content = content
		}
		files = append(files, file)
	}

	d.logger.Debugf("Found %d legacy mock files in %s", len(files), d.dir)
	return files, nil
}
