package domain

import (
	"strings"
	"time"
)

// ChangeType is the category a commit is bucketed into.
type ChangeType string

const (
	TypeFeat     ChangeType = "feat"
	TypeFix      ChangeType = "fix"
	TypeRefactor ChangeType = "refactor"
	TypeDocs     ChangeType = "docs"
	TypeChore    ChangeType = "chore"
	TypeStyle    ChangeType = "style"
)

// ChangeTypes lists every ChangeType in bucket order. Generated assets
// appear in this order.
var ChangeTypes = []ChangeType{
	TypeFeat,
	TypeFix,
	TypeRefactor,
	TypeDocs,
	TypeChore,
	TypeStyle,
}

// ParseChangeType returns the ChangeType named by s (case-insensitive).
func ParseChangeType(s string) (ChangeType, bool) {
	ct := ChangeType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ChangeTypes {
		if ct == known {
			return ct, true
		}
	}
	return "", false
}

// CommitRecord is a single classified commit. It is treated as immutable.
type CommitRecord struct {
	ID        string     `json:"id" yaml:"id"`
	Message   string     `json:"message" yaml:"message"`
	Type      ChangeType `json:"type" yaml:"type"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
}

// NewCommitRecord builds a record and classifies its message.
func NewCommitRecord(id, message string, ts time.Time) CommitRecord {
	return CommitRecord{
		ID:        id,
		Message:   message,
		Type:      Classify(message),
		Timestamp: ts,
	}
}

// GroupByType splits commits into per-type buckets. Input order is kept
// within each bucket. Records with an unknown Type land in the chore bucket.
func GroupByType(commits []CommitRecord) map[ChangeType][]CommitRecord {
	buckets := make(map[ChangeType][]CommitRecord, len(ChangeTypes))
	for _, c := range commits {
		t := c.Type
		if _, ok := ParseChangeType(string(t)); !ok {
			t = TypeChore
		}
		buckets[t] = append(buckets[t], c)
	}
	return buckets
}
