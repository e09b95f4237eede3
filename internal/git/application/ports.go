// Package application defines ports (interfaces) for git operations.
package application

import (
	"context"

	domain "github.com/giterra/giterra/internal/git/domain"
)

// CommitLogReader reads commit history from a repository.
// This abstraction allows for easy testing with mock implementations.
type CommitLogReader interface {
	// IsGitRepo reports whether the working directory is inside a git repository.
	IsGitRepo(ctx context.Context) bool
	// GetCommitLog returns up to limit commits reachable from ref, newest first.
	// If ref is empty, HEAD is used. Returns an empty slice for empty repositories.
	// Returns ErrGitLogTimeout if the context deadline is exceeded.
	GetCommitLog(ctx context.Context, ref string, limit int) ([]domain.CommitInfo, error)
}
