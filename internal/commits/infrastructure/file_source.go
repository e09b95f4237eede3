// Package infrastructure provides commit sources backed by files.
package infrastructure

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/giterra/giterra/internal/commits/application"
	"github.com/giterra/giterra/internal/commits/domain"
	"github.com/giterra/giterra/internal/log"
)

// FileSource reads commits from a JSON or YAML commit file.
type FileSource struct {
	path   string
	format string
	now    func() time.Time
}

// NewFileSource creates a FileSource for path. An empty format is inferred
// from the file extension.
func NewFileSource(path, format string) (*FileSource, error) {
	if format == "" {
		inferred, err := application.FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = inferred
	}
	return &FileSource{path: path, format: format, now: time.Now}, nil
}

// Path returns the commit file path.
func (s *FileSource) Path() string {
	return s.path
}

// Commits implements application.CommitSource. The file is re-read on every
// call so watchers see edits.
func (s *FileSource) Commits(_ context.Context) ([]domain.CommitRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open commit file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := application.DecodeCommits(f, s.format, s.now)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	log.Debug(log.CatCLI, "Loaded commit file", "path", s.path, "commits", len(records))
	return records, nil
}

var _ application.CommitSource = (*FileSource)(nil)
