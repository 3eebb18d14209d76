package strokefont

import (
	"math"

	"github.com/gogpu/strokefont/font"
)

// Normalizer maps glyph contours from canvas pixels into font design units.
//
// The union bounding box of all contours is scaled uniformly so its larger
// dimension spans UnitsPerEm*FillRatio, shifted so its left edge lands on
// LeftMargin, and flipped so canvas Y-down becomes font Y-up with the
// bottom edge at BaselineOffset. Coordinates stay real-valued.
type Normalizer struct {
	UnitsPerEm     int
	FillRatio      float64
	LeftMargin     float64
	BaselineOffset float64
}

// NewNormalizer returns the normalizer described by cfg.
func NewNormalizer(cfg Config) Normalizer {
	return Normalizer{
		UnitsPerEm:     cfg.Font.UnitsPerEm,
		FillRatio:      cfg.FillRatio,
		LeftMargin:     cfg.LeftMargin,
		BaselineOffset: cfg.BaselineOffset,
	}
}

// Scale returns the uniform scale factor for a box of the given size.
// A zero width or height is treated as 1 so single-axis glyphs still scale.
func (n Normalizer) Scale(width, height float64) float64 {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}
	return float64(n.UnitsPerEm) * n.FillRatio / math.Max(width, height)
}

// Normalize transforms contours into design units:
//
//	x' = (x - minX)*scale + LeftMargin
//	y' = (maxY - y)*scale + BaselineOffset
//
// Empty contours are dropped. Empty input yields nil.
func (n Normalizer) Normalize(contours [][]Point) []font.Contour {
	bbox, ok := unionBounds(contours)
	if !ok {
		return nil
	}
	scale := n.Scale(bbox.Width(), bbox.Height())

	out := make([]font.Contour, 0, len(contours))
	for _, c := range contours {
		if len(c) == 0 {
			continue
		}
		fc := make(font.Contour, len(c))
		for i, p := range c {
			fc[i] = font.Point{
				X: (p.X-bbox.Min.X)*scale + n.LeftMargin,
				Y: (bbox.Max.Y-p.Y)*scale + n.BaselineOffset,
			}
		}
		out = append(out, fc)
	}
	return out
}

// unionBounds returns the bounding box of every point in contours.
func unionBounds(contours [][]Point) (Rect, bool) {
	var r Rect
	found := false
	for _, c := range contours {
		for _, p := range c {
			if !found {
				r = Rect{Min: p, Max: p}
				found = true
				continue
			}
			r = r.Extend(p)
		}
	}
	return r, found
}
