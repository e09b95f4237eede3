package domain

import "errors"

// Git-specific errors for reading commit history.
var (
	// ErrNotGitRepo indicates the directory is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrGitLogTimeout is returned when git log exceeds its deadline.
	ErrGitLogTimeout = errors.New("git log timed out")

	// ErrMalformedLog indicates git log output did not match the expected format.
	ErrMalformedLog = errors.New("malformed git log output")
)
