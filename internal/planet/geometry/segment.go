// Package geometry maps normalized segment coordinates onto the planet
// sphere.
//
// The sphere is split into eight octants. Segments 0-3 cover the upper
// hemisphere (phi in [0, π/2]) and 4-7 the lower one (phi in [π/2, π]).
// Within a hemisphere, segment%4 selects a 90° longitude band starting at
// 0°, 90°, 180° and 270°. Every range is inset by Padding so placed assets
// never straddle a seam.
//
// Cartesian conversion uses the same vertex formula as the renderer's
// sphere primitive:
//
//	x = -r·cos(theta)·sin(phi)
//	y =  r·cos(phi)
//	z =  r·sin(theta)·sin(phi)
//
// Dropping the sign on x mirrors every placement across the YZ plane, so
// assets would land in the wrong octant on screen.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// SegmentCount is the number of octants on a planet.
const SegmentCount = 8

// Padding is the angular inset, in radians, applied to every segment edge.
const Padding = 0.15

var (
	// ErrInvalidSegment indicates a segment index outside [0, 7].
	ErrInvalidSegment = errors.New("segment index must be between 0 and 7")

	// ErrInvalidRadius indicates a non-positive radius.
	ErrInvalidRadius = errors.New("radius must be positive")
)

// SegmentBounds is the padded angular window of one segment.
type SegmentBounds struct {
	PhiMin, PhiMax     float64
	ThetaMin, ThetaMax float64
}

// Contains reports whether (phi, theta) lies inside the bounds, allowing
// eps of floating point slack.
func (b SegmentBounds) Contains(phi, theta, eps float64) bool {
	return phi >= b.PhiMin-eps && phi <= b.PhiMax+eps &&
		theta >= b.ThetaMin-eps && theta <= b.ThetaMax+eps
}

// ValidateSegment returns ErrInvalidSegment unless segment is in [0, 7].
func ValidateSegment(segment int) error {
	if segment < 0 || segment >= SegmentCount {
		return fmt.Errorf("%w: got %d", ErrInvalidSegment, segment)
	}
	return nil
}

// Bounds returns the padded angular bounds of segment.
func Bounds(segment int) (SegmentBounds, error) {
	if err := ValidateSegment(segment); err != nil {
		return SegmentBounds{}, err
	}

	upper := segment < 4
	quadrant := float64(segment % 4)

	b := SegmentBounds{
		ThetaMin: quadrant*(math.Pi/2) + Padding,
		ThetaMax: (quadrant+1)*(math.Pi/2) - Padding,
	}
	if upper {
		b.PhiMin = Padding
		b.PhiMax = math.Pi/2 - Padding
	} else {
		b.PhiMin = math.Pi/2 + Padding
		b.PhiMax = math.Pi - Padding
	}
	return b, nil
}

// Map converts ratio coordinates inside segment into a point at radius.
// Ratios are clamped to [0, 1]; radius must be positive.
func Map(radius, phiRatio, thetaRatio float64, segment int) (r3.Vector, error) {
	b, err := Bounds(segment)
	if err != nil {
		return r3.Vector{}, err
	}
	if !(radius > 0) {
		return r3.Vector{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}

	phi := lerp(b.PhiMin, b.PhiMax, clamp01(phiRatio))
	theta := lerp(b.ThetaMin, b.ThetaMax, clamp01(thetaRatio))
	return ToCartesian(radius, phi, theta), nil
}

// ToCartesian converts spherical coordinates using the renderer's vertex
// convention. phi is the colatitude measured from +Y; theta is longitude.
func ToCartesian(radius, phi, theta float64) r3.Vector {
	sinPhi := math.Sin(phi)
	return r3.Vector{
		X: -radius * math.Cos(theta) * sinPhi,
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(theta) * sinPhi,
	}
}

// Angles inverts ToCartesian. theta is normalized into [0, 2π).
// The zero vector yields (0, 0).
func Angles(v r3.Vector) (phi, theta float64) {
	r := v.Norm()
	if r == 0 {
		return 0, 0
	}
	phi = math.Acos(clamp(v.Y/r, -1, 1))
	theta = math.Atan2(v.Z, -v.X)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return phi, theta
}

func lerp(min, max, t float64) float64 {
	return min + t*(max-min)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
