package infrastructure

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	commitdomain "github.com/giterra/giterra/internal/commits/domain"
)

// ClassificationCache memoizes commit classification by commit hash.
// Commits are immutable, so entries only expire to bound memory in
// long-running watch sessions.
type ClassificationCache struct {
	c *gocache.Cache
}

// NewClassificationCache creates a cache whose entries live for ttl.
func NewClassificationCache(ttl time.Duration) *ClassificationCache {
	return &ClassificationCache{c: gocache.New(ttl, 2*ttl)}
}

// Classify returns the cached type for hash, classifying subject on a miss.
func (cc *ClassificationCache) Classify(hash, subject string) commitdomain.ChangeType {
	if v, ok := cc.c.Get(hash); ok {
		if ct, ok := v.(commitdomain.ChangeType); ok {
			return ct
		}
	}
	ct := commitdomain.Classify(subject)
	cc.c.SetDefault(hash, ct)
	return ct
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up.
func (cc *ClassificationCache) Len() int {
	return cc.c.ItemCount()
}
