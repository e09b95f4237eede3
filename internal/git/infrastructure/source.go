package infrastructure

import (
	"context"
	"fmt"
	"time"

	commitapp "github.com/giterra/giterra/internal/commits/application"
	commitdomain "github.com/giterra/giterra/internal/commits/domain"
	appgit "github.com/giterra/giterra/internal/git/application"
	"github.com/giterra/giterra/internal/log"
)

// DefaultCacheTTL bounds how long a classification is remembered.
const DefaultCacheTTL = time.Hour

// CommitSource adapts a CommitLogReader to the commits CommitSource port.
// Commits are returned oldest first so placement follows repository history.
type CommitSource struct {
	reader appgit.CommitLogReader
	cache  *ClassificationCache
	ref    string
	limit  int
}

// NewCommitSource creates a CommitSource reading up to limit commits of ref.
// A nil cache disables memoization.
func NewCommitSource(reader appgit.CommitLogReader, cache *ClassificationCache, ref string, limit int) *CommitSource {
	return &CommitSource{reader: reader, cache: cache, ref: ref, limit: limit}
}

// Commits implements commitapp.CommitSource.
func (s *CommitSource) Commits(ctx context.Context) ([]commitdomain.CommitRecord, error) {
	infos, err := s.reader.GetCommitLog(ctx, s.ref, s.limit)
	if err != nil {
		return nil, fmt.Errorf("read commit log: %w", err)
	}

	records := make([]commitdomain.CommitRecord, 0, len(infos))
	for i := len(infos) - 1; i >= 0; i-- {
		info := infos[i]
		var typ commitdomain.ChangeType
		if s.cache != nil {
			typ = s.cache.Classify(info.Hash, info.Subject)
		} else {
			typ = commitdomain.Classify(info.Subject)
		}
		records = append(records, commitdomain.CommitRecord{
			ID:        info.ShortHash,
			Message:   info.Subject,
			Type:      typ,
			Timestamp: info.Date,
		})
	}

	log.Debug(log.CatGit, "Classified commits", "ref", s.ref, "commits", len(records))
	return records, nil
}

var _ commitapp.CommitSource = (*CommitSource)(nil)
