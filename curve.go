package strokefont

import (
	"iter"
	"math"
	"sort"
)

// Rect represents an axis-aligned rectangle.
// Min holds the minimum coordinates, Max the maximum.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// MinSamples is the smallest number of points a curve is sampled into.
const MinSamples = 2

// ControlCurve is a quadratic Bezier stroke with endpoints P1 and P2 and
// control point CP, in canvas pixels.
type ControlCurve struct {
	P1, CP, P2 Point
}

// NewControlCurve creates a new control curve.
func NewControlCurve(p1, cp, p2 Point) ControlCurve {
	return ControlCurve{P1: p1, CP: cp, P2: p2}
}

// Eval evaluates the curve at parameter t (0 to 1):
// (1-t)^2*P1 + 2(1-t)t*CP + t^2*P2.
func (c ControlCurve) Eval(t float64) Point {
	a := c.P1.Lerp(c.CP, t)
	b := c.CP.Lerp(c.P2, t)
	return a.Lerp(b, t)
}

// Samples returns n evenly parameterized points along the curve at
// t = i/(n-1). The first and last points are P1 and P2 exactly. Values of n
// below MinSamples are clamped to MinSamples.
//
// The sequence is lazy and may be ranged over any number of times.
func (c ControlCurve) Samples(n int) iter.Seq[Point] {
	n = max(n, MinSamples)
	return func(yield func(Point) bool) {
		last := n - 1
		for i := range n {
			var p Point
			switch i {
			case 0:
				p = c.P1
			case last:
				p = c.P2
			default:
				p = c.Eval(float64(i) / float64(last))
			}
			if !yield(p) {
				return
			}
		}
	}
}

// IsDegenerate reports whether the endpoints coincide. Such a curve traces
// a path out and back over itself and encloses no area.
func (c ControlCurve) IsDegenerate() bool {
	return c.P1 == c.P2
}

// Bounds returns the bounding box of the control polygon, which always
// contains the curve.
func (c ControlCurve) Bounds() Rect {
	return NewRect(c.P1, c.P2).Extend(c.CP)
}

// Extrema returns parameter values in (0, 1) where the derivative of X or Y
// is zero, in ascending order.
func (c ControlCurve) Extrema() []float64 {
	var result []float64

	// B'(t) = 2[(CP-P1) + t(P2-2CP+P1)]
	d0 := c.CP.Sub(c.P1)
	d1 := c.P2.Sub(c.CP)
	dd := d1.Sub(d0)

	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c ControlCurve) BoundingBox() Rect {
	bbox := NewRect(c.P1, c.P2)
	for _, t := range c.Extrema() {
		bbox = bbox.Extend(c.Eval(t))
	}
	return bbox
}

// IsFinite reports whether every control point is finite.
func (c ControlCurve) IsFinite() bool {
	return c.P1.IsFinite() && c.CP.IsFinite() && c.P2.IsFinite()
}
