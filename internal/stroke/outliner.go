package stroke

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Add returns the point displaced by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the difference between two points as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared length of the vector.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length < 1e-10 {
		return Vec2{X: 0, Y: 0}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Perp returns the perpendicular vector (rotated 90 degrees counter-clockwise).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// DefaultDotSegments is the number of polygon vertices used for a dot.
const DefaultDotSegments = 16

// MinDotSegments is the smallest polygon that still encloses an area.
const MinDotSegments = 3

// degenerateLengthSq is the squared segment length below which a sample pair
// is treated as zero-length.
const degenerateLengthSq = 1e-10

// Taper describes the thickness profile of a pen stroke.
//
// The full width at parametric position t in [0, 1] is
// Base + Amplitude*sin(pi*t): Base at both ends, Base+Amplitude in the middle.
type Taper struct {
	Base      float64
	Amplitude float64
}

// DefaultTaper returns the taper used for hand-drawn strokes on a 600px canvas.
func DefaultTaper() Taper {
	return Taper{Base: 2, Amplitude: 12}
}

// HalfWidth returns the offset distance from the centerline at position t.
func (tp Taper) HalfWidth(t float64) float64 {
	return (tp.Base + tp.Amplitude*math.Sin(math.Pi*t)) / 2
}

// Outliner converts centerline samples and dots into closed contours.
// The zero value is not useful; use NewOutliner.
//
// Outliner is a value type with no mutable state and is safe to copy.
type Outliner struct {
	taper       Taper
	dotSegments int
}

// NewOutliner creates an outliner with the given taper profile and dot
// polygon resolution. A dotSegments value below MinDotSegments falls back
// to DefaultDotSegments.
func NewOutliner(taper Taper, dotSegments int) Outliner {
	if dotSegments < MinDotSegments {
		dotSegments = DefaultDotSegments
	}
	return Outliner{taper: taper, dotSegments: dotSegments}
}

// Taper returns the thickness profile.
func (o Outliner) Taper() Taper {
	return o.taper
}

// DotSegments returns the number of vertices emitted for a dot.
func (o Outliner) DotSegments() int {
	return o.dotSegments
}

// OutlineSamples builds a closed contour around a sampled centerline.
//
// Every consecutive sample pair with non-zero length contributes one point
// to the forward side and one to the backward side, offset from the pair's
// midpoint along the pair's unit normal by the taper half-width at the
// pair's position. The returned contour is forward followed by the reversed
// backward side, so its length is twice the number of usable pairs.
//
// OutlineSamples returns nil when fewer than two usable pairs exist.
func (o Outliner) OutlineSamples(samples []Point) []Point {
	n := len(samples)
	if n < 3 {
		return nil
	}

	forward := make([]Point, 0, n-1)
	backward := make([]Point, 0, n-1)
	span := float64(n - 1)

	for i := 0; i+1 < n; i++ {
		tangent := samples[i+1].Sub(samples[i])
		if tangent.LengthSquared() < degenerateLengthSq {
			continue
		}
		pos := (float64(i) + 0.5) / span
		norm := tangent.Normalize().Perp().Scale(o.taper.HalfWidth(pos))
		mid := samples[i].Lerp(samples[i+1], 0.5)

		forward = append(forward, mid.Add(norm))
		backward = append(backward, mid.Add(norm.Neg()))
	}

	if len(forward) < 2 {
		return nil
	}

	contour := make([]Point, 0, 2*len(forward))
	contour = append(contour, forward...)
	for i := len(backward) - 1; i >= 0; i-- {
		contour = append(contour, backward[i])
	}
	return contour
}

// OutlineDot returns a regular polygon approximating a circle.
// Vertices are emitted with increasing angle, which winds clockwise on a
// Y-down canvas. A non-positive radius yields nil.
func (o Outliner) OutlineDot(center Point, radius float64) []Point {
	if radius <= 0 {
		return nil
	}

	contour := make([]Point, o.dotSegments)
	step := 2 * math.Pi / float64(o.dotSegments)
	for k := range contour {
		angle := step * float64(k)
		contour[k] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return contour
}
