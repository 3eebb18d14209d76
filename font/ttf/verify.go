package ttf

import (
	"errors"
	"fmt"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/strokefont/font"
)

// Report summarizes a parsed font file.
type Report struct {
	Family     string
	UnitsPerEm int
	NumGlyphs  int
	Glyphs     []GlyphReport
}

// GlyphReport describes one mapped glyph as read back from the file.
type GlyphReport struct {
	CodePoint rune
	Index     int
	Contours  int
	Advance   int
}

// Verify parses data with an independent sfnt reader and reports what it
// found. When want is non-nil every code point of want is checked to resolve
// to the same glyph index with the same contour count and rounded advance;
// the first mismatch is returned as *VerifyError.
func Verify(data []byte, want *font.Font) (*Report, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ttf: verify: %w", err)
	}

	var buf sfnt.Buffer
	r := &Report{
		UnitsPerEm: int(f.UnitsPerEm()),
		NumGlyphs:  f.NumGlyphs(),
	}
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		return nil, fmt.Errorf("ttf: verify name: %w", err)
	}
	r.Family = family

	// One pixel per design unit keeps segment coordinates in font units.
	ppem := fixed.I(r.UnitsPerEm)

	if want == nil {
		return r, nil
	}

	if r.NumGlyphs != len(want.Glyphs) {
		return r, &VerifyError{Glyph: -1, Reason: fmt.Sprintf("glyph count %d, want %d", r.NumGlyphs, len(want.Glyphs))}
	}
	if r.UnitsPerEm != want.UnitsPerEm {
		return r, &VerifyError{Glyph: -1, Reason: fmt.Sprintf("unitsPerEm %d, want %d", r.UnitsPerEm, want.UnitsPerEm)}
	}
	if r.Family != want.Family {
		return r, &VerifyError{Glyph: -1, Reason: fmt.Sprintf("family %q, want %q", r.Family, want.Family)}
	}

	for _, cp := range want.CodePoints() {
		idx := want.CharMap[cp]
		gi, err := f.GlyphIndex(&buf, cp)
		if err != nil {
			return r, fmt.Errorf("ttf: verify U+%04X: %w", cp, err)
		}
		if int(gi) != idx {
			return r, &VerifyError{Glyph: idx, Reason: fmt.Sprintf("U+%04X resolves to glyph %d", cp, gi)}
		}

		segs, err := f.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			return r, fmt.Errorf("ttf: verify glyph %d: %w", idx, err)
		}
		contours := 0
		for _, s := range segs {
			if s.Op == sfnt.SegmentOpMoveTo {
				contours++
			}
		}

		adv, err := f.GlyphAdvance(&buf, gi, ppem, xfont.HintingNone)
		if err != nil {
			return r, fmt.Errorf("ttf: verify glyph %d advance: %w", idx, err)
		}

		gr := GlyphReport{CodePoint: cp, Index: idx, Contours: contours, Advance: adv.Round()}
		r.Glyphs = append(r.Glyphs, gr)

		g := &want.Glyphs[idx]
		if wc := nonEmptyContours(g); wc != contours {
			return r, &VerifyError{Glyph: idx, Reason: fmt.Sprintf("%d contours, want %d", contours, wc)}
		}
		if wa := int(math.Round(g.Advance)); wa != gr.Advance {
			return r, &VerifyError{Glyph: idx, Reason: fmt.Sprintf("advance %d, want %d", gr.Advance, wa)}
		}
	}

	Logger().Debug("ttf: verified", "family", r.Family, "glyphs", r.NumGlyphs)
	return r, nil
}

func nonEmptyContours(g *font.Glyph) int {
	n := 0
	for _, c := range g.Contours {
		if len(c) > 0 {
			n++
		}
	}
	return n
}
