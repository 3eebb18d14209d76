package ttf

import (
	"fmt"
	"math"

	"github.com/gogpu/strokefont/font"
)

// Simple glyph flag bits.
const (
	flagOnCurve      = 0x01
	flagXShort       = 0x02
	flagYShort       = 0x04
	flagXSameOrPlus  = 0x10
	flagYSameOrPlus  = 0x20
	maxInt16         = math.MaxInt16
	minInt16         = math.MinInt16
	maxShortVecDelta = 255
)

// ipoint is a point on the integer design grid.
type ipoint struct {
	x, y int
}

// gridGlyph is a glyph after the single rounding pass.
type gridGlyph struct {
	contours [][]ipoint
	advance  int
	xMin     int
	yMin     int
	xMax     int
	yMax     int
}

func (g *gridGlyph) empty() bool {
	return len(g.contours) == 0
}

func (g *gridGlyph) numPoints() int {
	n := 0
	for _, c := range g.contours {
		n += len(c)
	}
	return n
}

// round converts a design-unit value to the integer grid.
// This is the only place real coordinates become integers.
func round(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrCoordinateRange, v)
	}
	r := math.Round(v)
	if r < minInt16 || r > maxInt16 {
		return 0, fmt.Errorf("%w: %v", ErrCoordinateRange, v)
	}
	return int(r), nil
}

// toGrid rounds every glyph of f once.
func toGrid(f *font.Font) ([]gridGlyph, error) {
	out := make([]gridGlyph, len(f.Glyphs))
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		grid := &out[i]

		adv, err := round(g.Advance)
		if err != nil {
			return nil, fmt.Errorf("glyph %d (%s) advance: %w", i, g.Name, err)
		}
		if adv < 0 {
			return nil, fmt.Errorf("glyph %d (%s) advance: %w: negative", i, g.Name, ErrCoordinateRange)
		}
		grid.advance = adv

		for _, c := range g.Contours {
			if len(c) == 0 {
				continue
			}
			pts := make([]ipoint, len(c))
			for j, p := range c {
				x, err := round(p.X)
				if err != nil {
					return nil, fmt.Errorf("glyph %d (%s): %w", i, g.Name, err)
				}
				y, err := round(p.Y)
				if err != nil {
					return nil, fmt.Errorf("glyph %d (%s): %w", i, g.Name, err)
				}
				pts[j] = ipoint{x: x, y: y}
			}
			grid.contours = append(grid.contours, pts)
		}
		grid.computeBounds()
	}
	return out, nil
}

func (g *gridGlyph) computeBounds() {
	first := true
	for _, c := range g.contours {
		for _, p := range c {
			if first {
				g.xMin, g.xMax, g.yMin, g.yMax = p.x, p.x, p.y, p.y
				first = false
				continue
			}
			g.xMin = min(g.xMin, p.x)
			g.xMax = max(g.xMax, p.x)
			g.yMin = min(g.yMin, p.y)
			g.yMax = max(g.yMax, p.y)
		}
	}
}

// encodeGlyph appends the simple-glyph record of g to data.
// Empty glyphs produce no bytes. Every point is on-curve.
func encodeGlyph(data []byte, g *gridGlyph) ([]byte, error) {
	if g.empty() {
		return data, nil
	}
	n := g.numPoints()
	if n > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d points", ErrCoordinateRange, n)
	}

	data = appendI16(data, len(g.contours))
	data = appendI16(data, g.xMin)
	data = appendI16(data, g.yMin)
	data = appendI16(data, g.xMax)
	data = appendI16(data, g.yMax)

	end := -1
	for _, c := range g.contours {
		end += len(c)
		data = appendU16(data, end)
	}
	data = appendU16(data, 0) // instructionLength

	flags := make([]byte, 0, n)
	xs := make([]byte, 0, 2*n)
	ys := make([]byte, 0, 2*n)

	var prev ipoint
	for _, c := range g.contours {
		for _, p := range c {
			dx, dy := p.x-prev.x, p.y-prev.y
			prev = p

			flag := byte(flagOnCurve)
			var err error
			flag, xs, err = appendDelta(flag, xs, dx, flagXShort, flagXSameOrPlus)
			if err != nil {
				return nil, err
			}
			flag, ys, err = appendDelta(flag, ys, dy, flagYShort, flagYSameOrPlus)
			if err != nil {
				return nil, err
			}
			flags = append(flags, flag)
		}
	}

	data = append(data, flags...)
	data = append(data, xs...)
	data = append(data, ys...)
	return data, nil
}

// appendDelta encodes one coordinate delta using the short or same forms
// when possible.
func appendDelta(flag byte, buf []byte, d int, shortBit, sameBit byte) (byte, []byte, error) {
	switch {
	case d == 0:
		return flag | sameBit, buf, nil
	case d > 0 && d <= maxShortVecDelta:
		return flag | shortBit | sameBit, append(buf, byte(d)), nil
	case d < 0 && -d <= maxShortVecDelta:
		return flag | shortBit, append(buf, byte(-d)), nil
	case d < minInt16 || d > maxInt16:
		return flag, buf, fmt.Errorf("%w: delta %d", ErrCoordinateRange, d)
	default:
		return flag, appendI16(buf, d), nil
	}
}

// glyfStats carries the per-font maxima needed by maxp and hhea.
type glyfStats struct {
	maxPoints   int
	maxContours int
}

// buildGlyf encodes the glyf and long-format loca tables.
func buildGlyf(glyphs []gridGlyph) (glyf, loca []byte, stats glyfStats, err error) {
	loca = make([]byte, 0, 4*(len(glyphs)+1))
	for i := range glyphs {
		loca = appendU32(loca, uint32(len(glyf)))
		glyf, err = encodeGlyph(glyf, &glyphs[i])
		if err != nil {
			return nil, nil, glyfStats{}, fmt.Errorf("glyph %d: %w", i, err)
		}
		if len(glyf)%2 != 0 {
			glyf = append(glyf, 0)
		}
		stats.maxPoints = max(stats.maxPoints, glyphs[i].numPoints())
		stats.maxContours = max(stats.maxContours, len(glyphs[i].contours))
	}
	loca = appendU32(loca, uint32(len(glyf)))
	return glyf, loca, stats, nil
}
