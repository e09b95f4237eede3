// Package application assembles planet segment configurations from
// classified commits.
package application

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	commitdomain "github.com/giterra/giterra/internal/commits/domain"
	"github.com/giterra/giterra/internal/log"
	"github.com/giterra/giterra/internal/planet/domain"
	"github.com/giterra/giterra/internal/planet/geometry"
	"github.com/giterra/giterra/internal/planet/placement"
	"github.com/giterra/giterra/internal/random"
)

const tracerName = "github.com/giterra/giterra/internal/planet"

// Generator builds a PlanetSegmentConfig for one segment.
type Generator struct {
	radius float64
	seed   int64
	rng    random.Source
	tracer trace.Tracer
}

// GeneratorOption configures Generator.
type GeneratorOption func(*Generator)

// WithRadius sets the planet surface radius. Defaults to placement.DefaultRadius.
func WithRadius(radius float64) GeneratorOption {
	return func(g *Generator) {
		g.radius = radius
	}
}

// WithSeed fixes the seed of every generation. Zero means a fresh seed per call.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithRandom makes every generation draw from src instead of a seeded source.
// The reported seed is then whatever WithSeed set.
func WithRandom(src random.Source) GeneratorOption {
	return func(g *Generator) {
		g.rng = src
	}
}

// WithTracer sets the tracer used for generation spans. Defaults to the
// global tracer provider.
func WithTracer(tracer trace.Tracer) GeneratorOption {
	return func(g *Generator) {
		g.tracer = tracer
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{radius: placement.DefaultRadius}
	for _, opt := range opts {
		opt(g)
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer(tracerName)
	}
	return g
}

// Generate selects the segment theme and places every bucket in ChangeTypes
// order. Commits must already carry a Type. An invalid segment is rejected
// before any asset is produced.
func (g *Generator) Generate(ctx context.Context, commits []commitdomain.CommitRecord, segment int) (domain.PlanetSegmentConfig, error) {
	_, span := g.tracer.Start(ctx, "planet.Generate", trace.WithAttributes(
		attribute.Int("planet.segment", segment),
		attribute.Int("planet.commits", len(commits)),
	))
	defer span.End()

	cfg, err := g.generate(commits, segment)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.PlanetSegmentConfig{}, err
	}

	span.SetAttributes(
		attribute.String("planet.theme", string(cfg.Theme)),
		attribute.Int("planet.assets", len(cfg.Assets)),
		attribute.Int64("planet.seed", cfg.Seed),
	)
	log.Debug(log.CatPlanet, "Generated segment",
		"segment", segment,
		"theme", cfg.Theme,
		"feats", cfg.Stats.FeatCount,
		"fixes", cfg.Stats.FixCount,
		"total", cfg.Stats.TotalCount,
		"assets", len(cfg.Assets),
		"seed", cfg.Seed)

	return cfg, nil
}

func (g *Generator) generate(commits []commitdomain.CommitRecord, segment int) (domain.PlanetSegmentConfig, error) {
	if err := geometry.ValidateSegment(segment); err != nil {
		return domain.PlanetSegmentConfig{}, err
	}

	seed := g.seed
	rng := g.rng
	if rng == nil {
		resolved, err := random.Resolve(seed)
		if err != nil {
			return domain.PlanetSegmentConfig{}, err
		}
		seed = resolved
		rng = random.NewSeeded(seed)
	}

	buckets := commitdomain.GroupByType(commits)
	stats := domain.Stats{
		FeatCount:  len(buckets[commitdomain.TypeFeat]),
		FixCount:   len(buckets[commitdomain.TypeFix]),
		TotalCount: len(commits),
	}
	theme := domain.SelectTheme(stats.FeatCount, stats.FixCount)

	planner := placement.NewPlanner(g.radius, rng)
	assets := make([]domain.AssetDescriptor, 0, len(commits)+1)
	for _, bucket := range commitdomain.ChangeTypes {
		placed, err := planner.Plan(bucket, buckets[bucket], theme, segment)
		if err != nil {
			return domain.PlanetSegmentConfig{}, err
		}
		assets = append(assets, placed...)
	}

	return domain.PlanetSegmentConfig{
		Segment: segment,
		Seed:    seed,
		Theme:   theme,
		Assets:  assets,
		Stats:   stats,
	}, nil
}
