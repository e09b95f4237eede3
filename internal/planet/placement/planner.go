package placement

import (
	"errors"
	"fmt"

	commitdomain "github.com/giterra/giterra/internal/commits/domain"
	"github.com/giterra/giterra/internal/planet/domain"
	"github.com/giterra/giterra/internal/planet/geometry"
	"github.com/giterra/giterra/internal/random"
)

// DefaultRadius is the planet surface radius used by the renderer.
const DefaultRadius = 100.0

// ErrNoRule indicates the dispatch table has no entry for a bucket/theme pair.
var ErrNoRule = errors.New("no placement rule")

// Planner places the commits of one bucket on a segment.
// A Planner draws from its random source and is not safe for concurrent use.
type Planner struct {
	radius float64
	rng    random.Source
}

// NewPlanner returns a Planner for a planet of the given surface radius.
func NewPlanner(radius float64, rng random.Source) *Planner {
	return &Planner{radius: radius, rng: rng}
}

// Plan returns one descriptor per commit in bucket, or a single combined
// descriptor when the rule collapses the bucket. An invalid segment is
// rejected before anything is placed.
func (p *Planner) Plan(
	bucket commitdomain.ChangeType,
	commits []commitdomain.CommitRecord,
	theme domain.Theme,
	segment int,
) ([]domain.AssetDescriptor, error) {
	if err := geometry.ValidateSegment(segment); err != nil {
		return nil, err
	}
	rule, ok := RuleFor(bucket, theme)
	if !ok {
		return nil, fmt.Errorf("%w for %s/%s", ErrNoRule, bucket, theme)
	}

	if rule.Collapse {
		asset, err := p.place(rule, 0, len(commits), segment)
		if err != nil {
			return nil, err
		}
		asset.ID = domain.OriginTreeID(segment)
		asset.SourceCommitID = domain.CombinedFeatsID
		return []domain.AssetDescriptor{asset}, nil
	}

	assets := make([]domain.AssetDescriptor, 0, len(commits))
	for i, c := range commits {
		asset, err := p.place(rule, i, len(commits), segment)
		if err != nil {
			return nil, err
		}
		asset.ID = domain.AssetID(bucket, segment, c.ID)
		asset.SourceCommitID = c.ID
		assets = append(assets, asset)
	}
	return assets, nil
}

func (p *Planner) place(rule Rule, index, count, segment int) (domain.AssetDescriptor, error) {
	phiRatio, thetaRatio := rule.ratios(p.rng, index, count)
	shell := rule.shell(p.rng, p.radius)

	pos, err := geometry.Map(shell, phiRatio, thetaRatio, segment)
	if err != nil {
		return domain.AssetDescriptor{}, fmt.Errorf("place %s: %w", rule.Asset, err)
	}

	return domain.AssetDescriptor{
		Type:     rule.Asset,
		Position: pos,
		Scale:    rule.Scale(p.rng, count),
	}, nil
}
