// Package domain holds the commit types that drive planet generation.
//
// It contains only pure Go code: the CommitRecord entity, the ChangeType
// value object and the keyword classifier that maps a free-text commit
// message onto a ChangeType. Nothing here performs I/O.
//
// # Import Aliasing
//
// The git context also has a domain package. When importing both, alias them:
//
//	import (
//	    commitdomain "github.com/giterra/giterra/internal/commits/domain"
//	    gitdomain "github.com/giterra/giterra/internal/git/domain"
//	)
package domain
