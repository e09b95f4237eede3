// Package infrastructure reads commit history by shelling out to git.
package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	appgit "github.com/giterra/giterra/internal/git/application"
	domain "github.com/giterra/giterra/internal/git/domain"
	"github.com/giterra/giterra/internal/log"
)

const (
	fieldSep = "\x1f"
	// recordSep is what git log -z writes between commits. A commit message
	// cannot contain NUL.
	recordSep = "\x00"

	// logFormat emits hash, short hash, author, author date and subject.
	// The subject comes last so a separator inside it stays part of it.
	logFormat = "%H" + fieldSep + "%h" + fieldSep + "%an" + fieldSep + "%aI" + fieldSep + "%s"
	logFields = 5
)

// Executor implements CommitLogReader using the git CLI.
type Executor struct {
	workDir string
	timeout time.Duration
}

// NewExecutor creates an Executor for the repository containing workDir.
// A zero timeout means no deadline beyond the caller's context.
func NewExecutor(workDir string, timeout time.Duration) *Executor {
	return &Executor{workDir: workDir, timeout: timeout}
}

// run executes a git command and returns its stdout.
func (e *Executor) run(ctx context.Context, args ...string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("git %s: %w", args[0], domain.ErrGitLogTimeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return "", domain.ErrNotGitRepo
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}
	return stdout.String(), nil
}

// IsGitRepo implements CommitLogReader.
func (e *Executor) IsGitRepo(ctx context.Context) bool {
	_, err := e.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// GetCommitLog implements CommitLogReader.
func (e *Executor) GetCommitLog(ctx context.Context, ref string, limit int) ([]domain.CommitInfo, error) {
	if !e.IsGitRepo(ctx) {
		return nil, domain.ErrNotGitRepo
	}

	// An unborn HEAD has no history to read.
	if _, err := e.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD"); err != nil && ref == "" {
		return []domain.CommitInfo{}, nil
	}

	args := []string{"log", "-z", "--format=" + logFormat}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if ref != "" {
		args = append(args, ref)
	}
	args = append(args, "--")

	log.Debug(log.CatGit, "Reading commit log", "dir", e.workDir, "ref", ref, "limit", limit)
	out, err := e.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseLog(out)
}

// ParseLog parses git log -z output produced with logFormat.
func ParseLog(raw string) ([]domain.CommitInfo, error) {
	commits := []domain.CommitInfo{}
	for _, record := range strings.Split(raw, recordSep) {
		record = strings.TrimLeft(record, "\r\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, logFields)
		if len(fields) != logFields {
			return nil, fmt.Errorf("%w: expected %d fields, got %d", domain.ErrMalformedLog, logFields, len(fields))
		}

		date, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", domain.ErrMalformedLog, fields[3])
		}

		commits = append(commits, domain.CommitInfo{
			Hash:      fields[0],
			ShortHash: fields[1],
			Author:    fields[2],
			Date:      date,
			Subject:   fields[4],
		})
	}
	return commits, nil
}

var _ appgit.CommitLogReader = (*Executor)(nil)
