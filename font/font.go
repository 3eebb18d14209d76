// Package font holds the assembled outline-font model and the assembler that
// builds it from finalized glyphs.
//
// Coordinates are kept as real numbers in design units; rounding to the
// integer grid is left to the serializer (see package ttf).
package font

import (
	"fmt"
	"math"
)

// NotdefName is the reserved name of glyph index 0.
const NotdefName = ".notdef"

// Point is a position in design units. Y grows upward from the baseline.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box in design units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// Contour is a closed polygon. The closing edge from the last point back to
// the first is implicit; the first point is not repeated.
type Contour []Point

// Bounds returns the bounding box of the contour.
// The result is the zero Rect for an empty contour.
func (c Contour) Bounds() Rect {
	if len(c) == 0 {
		return Rect{}
	}
	r := Rect{MinX: c[0].X, MinY: c[0].Y, MaxX: c[0].X, MaxY: c[0].Y}
	for _, p := range c[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Clone returns a copy of the contour.
func (c Contour) Clone() Contour {
	if c == nil {
		return nil
	}
	out := make(Contour, len(c))
	copy(out, c)
	return out
}

// Glyph is one glyph of the font: zero or more contours plus an advance.
type Glyph struct {
	// Name is the glyph name. When empty the assembler derives one from
	// CodePoint (see GlyphName).
	Name string

	// CodePoint is the character the glyph is mapped to.
	// It is zero only for .notdef.
	CodePoint rune

	// Contours are the glyph outlines in design units.
	Contours []Contour

	// Advance is the horizontal advance width in design units.
	// Set by the assembler.
	Advance float64
}

// IsEmpty reports whether the glyph has no contours.
func (g *Glyph) IsEmpty() bool {
	return len(g.Contours) == 0
}

// NumPoints returns the total number of points over all contours.
func (g *Glyph) NumPoints() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// Bounds returns the union bounding box of all contours.
// ok is false when the glyph has no points.
func (g *Glyph) Bounds() (r Rect, ok bool) {
	for _, c := range g.Contours {
		if len(c) == 0 {
			continue
		}
		if !ok {
			r, ok = c.Bounds(), true
			continue
		}
		r = r.Union(c.Bounds())
	}
	return r, ok
}

// Clone returns a deep copy of the glyph.
func (g *Glyph) Clone() Glyph {
	out := *g
	if g.Contours != nil {
		out.Contours = make([]Contour, len(g.Contours))
		for i, c := range g.Contours {
			out.Contours[i] = c.Clone()
		}
	}
	return out
}

// GlyphName returns the conventional glyph name for a code point:
// uniXXXX inside the Basic Multilingual Plane, uXXXXX above it.
func GlyphName(cp rune) string {
	if cp <= 0xFFFF {
		return fmt.Sprintf("uni%04X", cp)
	}
	return fmt.Sprintf("u%05X", cp)
}

// Font is an assembled outline font.
//
// Glyphs[0] is always .notdef; the remaining glyphs are ordered by ascending
// code point. CharMap maps every code point to its index in Glyphs and never
// contains .notdef.
type Font struct {
	UnitsPerEm int

	// Ascent is the distance from the baseline to the top of the em box.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the em box.
	// It is negative.
	Descent float64

	Glyphs  []Glyph
	CharMap map[rune]int

	Metadata
}

// NumGlyphs returns the number of glyphs including .notdef.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// Lookup returns the glyph mapped to r.
func (f *Font) Lookup(r rune) (*Glyph, bool) {
	idx, ok := f.CharMap[r]
	if !ok {
		return nil, false
	}
	return &f.Glyphs[idx], true
}

// CodePoints returns the mapped code points in ascending order.
// Because glyphs are sorted by code point this is also glyph order.
func (f *Font) CodePoints() []rune {
	out := make([]rune, 0, len(f.CharMap))
	for _, g := range f.Glyphs[1:] {
		out = append(out, g.CodePoint)
	}
	return out
}

// Bounds returns the union bounding box over every glyph.
// ok is false when no glyph has contours.
func (f *Font) Bounds() (r Rect, ok bool) {
	for i := range f.Glyphs {
		gr, gok := f.Glyphs[i].Bounds()
		if !gok {
			continue
		}
		if !ok {
			r, ok = gr, true
			continue
		}
		r = r.Union(gr)
	}
	return r, ok
}
