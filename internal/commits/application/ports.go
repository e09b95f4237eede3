// Package application decodes and sources commit records for planet
// generation.
package application

import (
	"context"

	"github.com/giterra/giterra/internal/commits/domain"
)

// CommitSource yields the classified commits of one planet segment.
type CommitSource interface {
	// Commits returns commits in input order. Every record carries a Type.
	Commits(ctx context.Context) ([]domain.CommitRecord, error)
}
