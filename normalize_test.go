package strokefont

import (
	"math"
	"testing"

	"github.com/gogpu/strokefont/font"
)

func defaultNormalizer() Normalizer {
	return NewNormalizer(DefaultConfig())
}

func contourBounds(cs []font.Contour) font.Rect {
	r := cs[0].Bounds()
	for _, c := range cs[1:] {
		r = r.Union(c.Bounds())
	}
	return r
}

func TestNormalize_TallGlyph(t *testing.T) {
	n := defaultNormalizer()
	// 200 wide, 400 tall; Y grows down on the canvas.
	in := [][]Point{
		{Pt(100, 100), Pt(300, 100), Pt(300, 500), Pt(100, 500)},
	}
	out := n.Normalize(in)
	if len(out) != 1 {
		t.Fatalf("got %d contours, want 1", len(out))
	}

	r := contourBounds(out)
	wantTop := n.BaselineOffset + float64(n.UnitsPerEm)*n.FillRatio
	if math.Abs(r.MinX-n.LeftMargin) > epsilon {
		t.Errorf("min x = %v, want %v", r.MinX, n.LeftMargin)
	}
	if math.Abs(r.MaxY-wantTop) > epsilon {
		t.Errorf("max y = %v, want %v", r.MaxY, wantTop)
	}
	if math.Abs(r.MinY-n.BaselineOffset) > epsilon {
		t.Errorf("min y = %v, want %v", r.MinY, n.BaselineOffset)
	}
	// Scale is uniform: width is half the height.
	if math.Abs(r.Width()*2-r.Height()) > 1e-9 {
		t.Errorf("aspect changed: %v x %v", r.Width(), r.Height())
	}
}

func TestNormalize_FlipsY(t *testing.T) {
	n := defaultNormalizer()
	out := n.Normalize([][]Point{{Pt(0, 0), Pt(10, 100), Pt(0, 100)}})

	// The canvas top (y=0) becomes the highest point.
	if out[0][0].Y <= out[0][1].Y {
		t.Errorf("canvas top mapped to %v, below canvas bottom %v", out[0][0].Y, out[0][1].Y)
	}
}

func TestNormalize_WideGlyphFillsWidth(t *testing.T) {
	n := defaultNormalizer()
	out := n.Normalize([][]Point{{Pt(0, 0), Pt(400, 0), Pt(400, 100)}})

	r := contourBounds(out)
	want := float64(n.UnitsPerEm) * n.FillRatio
	if math.Abs(r.Width()-want) > 1e-9 {
		t.Errorf("width = %v, want %v", r.Width(), want)
	}
	if r.Height() >= want {
		t.Errorf("height = %v, want below %v", r.Height(), want)
	}
}

func TestNormalize_Margins(t *testing.T) {
	n := Normalizer{UnitsPerEm: 1000, FillRatio: 1, LeftMargin: 10, BaselineOffset: -200}
	out := n.Normalize([][]Point{{Pt(50, 50), Pt(60, 50), Pt(60, 60)}})

	r := contourBounds(out)
	if r.MinX != 10 {
		t.Errorf("min x = %v, want 10", r.MinX)
	}
	if r.MinY != -200 {
		t.Errorf("min y = %v, want -200", r.MinY)
	}
	if r.MaxY != 800 {
		t.Errorf("max y = %v, want 800", r.MaxY)
	}
}

func TestNormalize_ZeroExtent(t *testing.T) {
	n := Normalizer{UnitsPerEm: 1000, FillRatio: 1}

	// A horizontal run has zero height; the height is treated as 1.
	out := n.Normalize([][]Point{{Pt(0, 5), Pt(0.5, 5), Pt(0.25, 5)}})
	if got := n.Scale(0.5, 0); got != 1000 {
		t.Errorf("Scale(0.5, 0) = %v, want 1000", got)
	}
	for _, p := range out[0] {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Fatalf("non-finite point %v", p)
		}
	}

	// A single point has zero width and height.
	out = n.Normalize([][]Point{{Pt(3, 3)}})
	if out[0][0] != (font.Point{X: 0, Y: 0}) {
		t.Errorf("single point = %v, want origin", out[0][0])
	}
}

func TestNormalize_Empty(t *testing.T) {
	n := defaultNormalizer()
	if out := n.Normalize(nil); out != nil {
		t.Errorf("Normalize(nil) = %v, want nil", out)
	}
	if out := n.Normalize([][]Point{{}, {}}); out != nil {
		t.Errorf("Normalize(empty contours) = %v, want nil", out)
	}
}

func TestNormalize_UnionAcrossContours(t *testing.T) {
	n := Normalizer{UnitsPerEm: 100, FillRatio: 1}
	out := n.Normalize([][]Point{
		{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
		{Pt(90, 90), Pt(100, 90), Pt(100, 100)},
	})
	if len(out) != 2 {
		t.Fatalf("got %d contours, want 2", len(out))
	}
	r := contourBounds(out)
	if r.MinX != 0 || r.MaxX != 100 || r.MinY != 0 || r.MaxY != 100 {
		t.Errorf("bounds = %+v, want 0..100 square", r)
	}
}
