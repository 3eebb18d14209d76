package strokefont

import (
	"errors"
	"fmt"
	"math"
)

// StrokeKind identifies the shape of a stroke.
type StrokeKind int

const (
	// StrokeCurve is a quadratic curve stroke.
	StrokeCurve StrokeKind = iota

	// StrokeDot is a round dot.
	StrokeDot
)

// String returns the name of the kind.
func (k StrokeKind) String() string {
	switch k {
	case StrokeCurve:
		return "curve"
	case StrokeDot:
		return "dot"
	default:
		return fmt.Sprintf("StrokeKind(%d)", int(k))
	}
}

// DotMark is a filled circle.
type DotMark struct {
	Center Point
	Radius float64
}

// Stroke is a single pen stroke: a curve or a dot, selected by Kind.
// Only the payload matching Kind is meaningful.
type Stroke struct {
	Kind  StrokeKind
	Curve ControlCurve
	Dot   DotMark
}

// CurveStroke creates a curve stroke from endpoint p1 through control point
// cp to endpoint p2.
func CurveStroke(p1, cp, p2 Point) Stroke {
	return Stroke{Kind: StrokeCurve, Curve: ControlCurve{P1: p1, CP: cp, P2: p2}}
}

// DotStroke creates a dot stroke.
func DotStroke(center Point, radius float64) Stroke {
	return Stroke{Kind: StrokeDot, Dot: DotMark{Center: center, Radius: radius}}
}

// Validate reports malformed input: non-finite coordinates, a negative or
// non-finite radius, or an unknown kind. Degenerate but well-formed strokes
// are valid; they simply produce no outline.
func (s Stroke) Validate() error {
	switch s.Kind {
	case StrokeCurve:
		if !s.Curve.IsFinite() {
			return &InputError{Reason: "curve has non-finite coordinates"}
		}
	case StrokeDot:
		if !s.Dot.Center.IsFinite() {
			return &InputError{Reason: "dot center is not finite"}
		}
		if math.IsNaN(s.Dot.Radius) || math.IsInf(s.Dot.Radius, 0) || s.Dot.Radius < 0 {
			return &InputError{Reason: fmt.Sprintf("dot radius %v is invalid", s.Dot.Radius)}
		}
	default:
		return &InputError{Reason: "unknown stroke kind " + s.Kind.String()}
	}
	return nil
}

// Bounds returns the area the stroke's control geometry covers.
func (s Stroke) Bounds() Rect {
	if s.Kind == StrokeDot {
		r := Pt(s.Dot.Radius, s.Dot.Radius)
		return Rect{Min: s.Dot.Center.Sub(r), Max: s.Dot.Center.Add(r)}
	}
	return s.Curve.Bounds()
}

// GlyphSpec is the authored description of one glyph: the code point it is
// mapped to and its strokes in drawing order.
type GlyphSpec struct {
	CodePoint rune

	// Name is an optional glyph name. When empty the font assembler derives
	// uniXXXX from the code point.
	Name string

	Strokes []Stroke
}

// Append adds a stroke to the end of the glyph.
func (g *GlyphSpec) Append(s Stroke) {
	g.Strokes = append(g.Strokes, s)
}

// RemoveLast removes the most recently added stroke and reports whether
// there was one.
func (g *GlyphSpec) RemoveLast() bool {
	if len(g.Strokes) == 0 {
		return false
	}
	g.Strokes = g.Strokes[:len(g.Strokes)-1]
	return true
}

// Clone returns a deep copy of the spec.
func (g *GlyphSpec) Clone() GlyphSpec {
	out := *g
	if g.Strokes != nil {
		out.Strokes = make([]Stroke, len(g.Strokes))
		copy(out.Strokes, g.Strokes)
	}
	return out
}

// Validate checks every stroke and annotates errors with the code point and
// stroke index.
func (g *GlyphSpec) Validate() error {
	for i, s := range g.Strokes {
		if err := s.Validate(); err != nil {
			var ie *InputError
			if errors.As(err, &ie) {
				ie.CodePoint = g.CodePoint
				ie.Stroke = i
			}
			return err
		}
	}
	return nil
}
