// Package placement turns commit buckets into placed planet assets.
//
// Layout decisions live in a dispatch table keyed by (ChangeType, Theme).
// Each Rule names the asset type, how ratios are distributed across the
// segment, how high above the surface assets sit and how they are scaled.
// Adding a theme or change type means adding table rows, not branches.
package placement

import (
	"math"

	"github.com/giterra/giterra/internal/planet/domain"
	"github.com/giterra/giterra/internal/random"
)

// Strategy distributes the assets of one bucket over the segment.
type Strategy int

const (
	// StrategyCenter puts the asset at the segment center.
	StrategyCenter Strategy = iota
	// StrategyGrid lays assets out on a ceil(sqrt(n)) square grid, cell centered.
	StrategyGrid
	// StrategySweep advances phi with the index and alternates theta between two jittered bands.
	StrategySweep
	// StrategyScatter draws both ratios uniformly.
	StrategyScatter
	// StrategyRing spaces assets evenly on a circle around the center.
	StrategyRing
)

func (s Strategy) String() string {
	switch s {
	case StrategyCenter:
		return "center"
	case StrategyGrid:
		return "grid"
	case StrategySweep:
		return "sweep"
	case StrategyScatter:
		return "scatter"
	case StrategyRing:
		return "ring"
	default:
		return "unknown"
	}
}

// Altitude selects the shell an asset is placed on.
type Altitude int

const (
	// AltitudeSurface places assets on the planet surface.
	AltitudeSurface Altitude = iota
	// AltitudeFloating places assets on a fixed shell FloatingOffset above the surface.
	AltitudeFloating
	// AltitudeHovering places assets at a random height in [HoverMin, HoverMax) above the surface.
	AltitudeHovering
)

const (
	FloatingOffset = 5.0
	HoverMin       = 10.0
	HoverMax       = 25.0

	// sweep bands and their jitter, as theta ratios
	sweepBandEven = 0.3
	sweepBandOdd  = 0.7
	sweepJitter   = 0.1

	// ring radii, as a fraction of the ratio space half-width
	FixRingRadius      = 0.3
	RefactorRingRadius = 0.15

	worldTreeBase    = 8.0
	worldTreePerFeat = 2.0
	worldTreeMax     = 25.0
)

// ScaleFunc returns the scale of one asset. count is the bucket size.
type ScaleFunc func(rng random.Source, count int) float64

// Fixed returns a ScaleFunc that always yields v.
func Fixed(v float64) ScaleFunc {
	return func(random.Source, int) float64 { return v }
}

// Jittered returns a ScaleFunc yielding base + uniform[0, spread).
func Jittered(base, spread float64) ScaleFunc {
	return func(rng random.Source, _ int) float64 {
		return base + rng.Float64()*spread
	}
}

// WorldTree scales the collapsed origin tree with the number of feats:
// min(25, 8 + 2·count).
func WorldTree(_ random.Source, count int) float64 {
	return math.Min(worldTreeMax, worldTreeBase+worldTreePerFeat*float64(count))
}

// Rule describes how one bucket is placed under one theme.
type Rule struct {
	Asset    domain.AssetType
	Strategy Strategy
	Altitude Altitude
	Scale    ScaleFunc
	// RingRadius is used by StrategyRing only.
	RingRadius float64
	// Collapse emits a single descriptor for the whole bucket, even when it is empty.
	Collapse bool
}

// ratios returns the (phiRatio, thetaRatio) of asset index out of count.
func (r Rule) ratios(rng random.Source, index, count int) (float64, float64) {
	switch r.Strategy {
	case StrategyGrid:
		cols := int(math.Ceil(math.Sqrt(float64(count))))
		row, col := index/cols, index%cols
		return (float64(row) + 0.5) / float64(cols), (float64(col) + 0.5) / float64(cols)
	case StrategySweep:
		band := sweepBandEven
		if index%2 == 1 {
			band = sweepBandOdd
		}
		phi := (float64(index) + 0.5) / float64(count)
		return phi, band + random.Between(rng, -sweepJitter, sweepJitter)
	case StrategyScatter:
		phi := rng.Float64()
		return phi, rng.Float64()
	case StrategyRing:
		angle := 2 * math.Pi * float64(index) / float64(max(count, 1))
		return 0.5 + r.RingRadius*math.Cos(angle)*0.5, 0.5 + r.RingRadius*math.Sin(angle)*0.5
	default:
		return 0.5, 0.5
	}
}

// shell returns the placement radius for a planet of surface radius.
func (r Rule) shell(rng random.Source, surface float64) float64 {
	switch r.Altitude {
	case AltitudeFloating:
		return surface + FloatingOffset
	case AltitudeHovering:
		return surface + random.Between(rng, HoverMin, HoverMax)
	default:
		return surface
	}
}
