package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/giterra/giterra/internal/commits/domain"
)

// Supported commit file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// ErrUnsupportedFormat indicates a commit file format other than JSON or YAML.
	ErrUnsupportedFormat = errors.New("unsupported commit file format")

	// ErrUnknownChangeType indicates a commit entry names a type that is not a ChangeType.
	ErrUnknownChangeType = errors.New("unknown change type")

	// ErrInvalidTimestamp indicates a commit entry timestamp is not RFC 3339.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrDuplicateCommitID indicates two entries share an id after trimming.
	ErrDuplicateCommitID = errors.New("duplicate commit id")
)

// commitIDSpace namespaces the ids derived for entries that have none.
var commitIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://giterra.dev/commit-file"))

// commitEntry is one element of a commit file.
type commitEntry struct {
	ID        string `json:"id" yaml:"id"`
	Message   string `json:"message" yaml:"message"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// FormatFromPath infers the commit file format from its extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeCommits reads a list of commit entries in format.
//
// Entries without a type are classified from their message. Entries without
// an id get a UUID derived from their position, message and timestamp, so
// re-reading an unchanged file yields the same ids. Entries without a
// timestamp are stamped with now(). Ids must be unique after trimming.
func DecodeCommits(r io.Reader, format string, now func() time.Time) ([]domain.CommitRecord, error) {
	var entries []commitEntry

	switch strings.ToLower(format) {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json commits: %w", err)
		}
	case FormatYAML, "yml":
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml commits: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	records := make([]domain.CommitRecord, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		rec, err := e.record(i, now)
		if err != nil {
			return nil, fmt.Errorf("commit %d: %w", i, err)
		}
		if first, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("commit %d: %w %q (first used by commit %d)", i, ErrDuplicateCommitID, rec.ID, first)
		}
		seen[rec.ID] = i
		records = append(records, rec)
	}
	return records, nil
}

func (e commitEntry) record(index int, now func() time.Time) (domain.CommitRecord, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		name := fmt.Sprintf("%d\x00%s\x00%s", index, e.Message, e.Timestamp)
		id = uuid.NewSHA1(commitIDSpace, []byte(name)).String()
	}

	ts := now()
	if e.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			return domain.CommitRecord{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, e.Timestamp)
		}
		ts = parsed
	}

	rec := domain.NewCommitRecord(id, e.Message, ts)
	if e.Type != "" {
		ct, ok := domain.ParseChangeType(e.Type)
		if !ok {
			return domain.CommitRecord{}, fmt.Errorf("%w: %q", ErrUnknownChangeType, e.Type)
		}
		rec.Type = ct
	}
	return rec, nil
}
