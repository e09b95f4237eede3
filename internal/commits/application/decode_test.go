package application

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/giterra/giterra/internal/commits/domain"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func now() time.Time { return fixedNow }

func TestDecodeCommits_JSON(t *testing.T) {
	input := `[
		{"id": "a1", "message": "feat: implement cache", "timestamp": "2024-05-01T10:00:00Z"},
		{"id": "b2", "message": "fix bug in parser", "type": "fix"},
		{"id": "c3", "message": "updated readme", "type": "DOCS"}
	]`

	records, err := DecodeCommits(strings.NewReader(input), FormatJSON, now)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, domain.CommitRecord{
		ID:        "a1",
		Message:   "feat: implement cache",
		Type:      domain.TypeFeat,
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}, records[0])
	require.Equal(t, domain.TypeFix, records[1].Type)
	require.Equal(t, fixedNow, records[1].Timestamp)
	require.Equal(t, domain.TypeDocs, records[2].Type, "explicit type wins over classification")
}

func TestDecodeCommits_YAML(t *testing.T) {
	input := `
- id: a1
  message: "refactor the loader"
  timestamp: "2024-05-01T10:00:00+02:00"
- message: "updated readme"
`
	records, err := DecodeCommits(strings.NewReader(input), "yml", now)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, domain.TypeRefactor, records[0].Type)
	require.True(t, records[0].Timestamp.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))

	require.Equal(t, domain.TypeChore, records[1].Type)
	_, err = uuid.Parse(records[1].ID)
	require.NoError(t, err, "missing id should be a uuid")
}

func TestDecodeCommits_AssignsDistinctIDs(t *testing.T) {
	input := `[{"message": "a"}, {"message": "b"}, {"message": "c"}]`
	records, err := DecodeCommits(strings.NewReader(input), FormatJSON, now)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range records {
		require.NotEmpty(t, r.ID)
		require.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}

func TestDecodeCommits_DerivedIDsAreStable(t *testing.T) {
	input := `[{"message": "add x"}, {"message": "add x"}, {"message": "add x", "timestamp": "2024-05-01T10:00:00Z"}]`

	first, err := DecodeCommits(strings.NewReader(input), FormatJSON, now)
	require.NoError(t, err)
	later := func() time.Time { return fixedNow.Add(time.Hour) }
	second, err := DecodeCommits(strings.NewReader(input), FormatJSON, later)
	require.NoError(t, err)

	require.Len(t, first, 3)
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID, "entry %d", i)
	}
	require.NotEqual(t, first[0].ID, first[1].ID, "same message at another position")
	require.NotEqual(t, first[1].ID, first[2].ID)
}

func TestDecodeCommits_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exact", `[{"id": "a1", "message": "fix crash"}, {"id": "a1", "message": "fix leak"}]`},
		{"whitespace variant", `[{"id": "a1", "message": "fix crash"}, {"id": " a1 ", "message": "fix leak"}]`},
		{"later entry", `[{"id": "a1", "message": "m"}, {"id": "b2", "message": "m"}, {"id": "b2\t", "message": "m"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommits(strings.NewReader(tt.input), FormatJSON, now)
			require.ErrorIs(t, err, ErrDuplicateCommitID)
		})
	}

	_, err := DecodeCommits(strings.NewReader(tests[1].input), FormatJSON, now)
	require.ErrorContains(t, err, "commit 1")
	require.ErrorContains(t, err, "commit 0")
}

func TestDecodeCommits_Empty(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		records, err := DecodeCommits(strings.NewReader(""), format, now)
		require.NoError(t, err, format)
		require.Empty(t, records, format)
	}
}

func TestDecodeCommits_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   error
	}{
		{"unsupported format", `[]`, "toml", ErrUnsupportedFormat},
		{"unknown type", `[{"id": "x", "message": "m", "type": "perf"}]`, FormatJSON, ErrUnknownChangeType},
		{"bad timestamp", `[{"id": "x", "message": "m", "timestamp": "yesterday"}]`, FormatJSON, ErrInvalidTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommits(strings.NewReader(tt.input), tt.format, now)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeCommits_MalformedJSON(t *testing.T) {
	_, err := DecodeCommits(strings.NewReader(`[{"id": `), FormatJSON, now)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode json commits")
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"commits.json":      FormatJSON,
		"commits.YAML":      FormatYAML,
		"dir/commits.yml":   FormatYAML,
		"/abs/history.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("commits.txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
