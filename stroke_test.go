package strokefont

import (
	"errors"
	"math"
	"testing"
)

func TestStroke_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       Stroke
		wantErr bool
	}{
		{"curve", CurveStroke(Pt(0, 0), Pt(1, 1), Pt(2, 0)), false},
		{"degenerate curve", CurveStroke(Pt(1, 1), Pt(5, 5), Pt(1, 1)), false},
		{"dot", DotStroke(Pt(3, 3), 12), false},
		{"zero dot", DotStroke(Pt(3, 3), 0), false},
		{"nan curve", CurveStroke(Pt(math.NaN(), 0), Pt(1, 1), Pt(2, 0)), true},
		{"inf control", CurveStroke(Pt(0, 0), Pt(math.Inf(1), 1), Pt(2, 0)), true},
		{"negative radius", DotStroke(Pt(3, 3), -1), true},
		{"nan radius", DotStroke(Pt(3, 3), math.NaN()), true},
		{"unknown kind", Stroke{Kind: StrokeKind(7)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ie *InputError
				if !errors.As(err, &ie) {
					t.Errorf("error %T is not *InputError", err)
				}
			}
		})
	}
}

func TestGlyphSpec_AppendRemoveLast(t *testing.T) {
	var g GlyphSpec
	if g.RemoveLast() {
		t.Error("RemoveLast on empty spec reported a removal")
	}

	g.Append(DotStroke(Pt(0, 0), 1))
	g.Append(CurveStroke(Pt(0, 0), Pt(1, 1), Pt(2, 0)))
	if len(g.Strokes) != 2 {
		t.Fatalf("len = %d, want 2", len(g.Strokes))
	}
	if !g.RemoveLast() {
		t.Error("RemoveLast reported nothing removed")
	}
	if len(g.Strokes) != 1 || g.Strokes[0].Kind != StrokeDot {
		t.Errorf("after RemoveLast strokes = %v", g.Strokes)
	}
}

func TestGlyphSpec_CloneIsDeep(t *testing.T) {
	g := GlyphSpec{CodePoint: 0xE000}
	g.Append(DotStroke(Pt(1, 1), 2))

	c := g.Clone()
	g.Strokes[0].Dot.Radius = 99
	g.Append(DotStroke(Pt(5, 5), 5))

	if c.Strokes[0].Dot.Radius != 2 {
		t.Errorf("clone shares stroke storage: radius = %v", c.Strokes[0].Dot.Radius)
	}
	if len(c.Strokes) != 1 {
		t.Errorf("clone grew to %d strokes", len(c.Strokes))
	}
}

func TestGlyphSpec_ValidateAnnotates(t *testing.T) {
	g := GlyphSpec{CodePoint: 0xE003}
	g.Append(DotStroke(Pt(1, 1), 2))
	g.Append(DotStroke(Pt(1, 1), -2))

	err := g.Validate()
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("Validate() = %v, want *InputError", err)
	}
	if ie.CodePoint != 0xE003 || ie.Stroke != 1 {
		t.Errorf("InputError = %+v, want code point U+E003 stroke 1", ie)
	}
}

func TestStrokeKind_String(t *testing.T) {
	if StrokeCurve.String() != "curve" || StrokeDot.String() != "dot" {
		t.Errorf("unexpected names %q, %q", StrokeCurve, StrokeDot)
	}
	if got := StrokeKind(9).String(); got != "StrokeKind(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestStroke_Bounds(t *testing.T) {
	dot := DotStroke(Pt(10, 20), 5).Bounds()
	if dot.Min != Pt(5, 15) || dot.Max != Pt(15, 25) {
		t.Errorf("dot Bounds() = %v", dot)
	}
	c := CurveStroke(Pt(0, 0), Pt(50, 100), Pt(100, 0)).Bounds()
	if c.Min != Pt(0, 0) || c.Max != Pt(100, 100) {
		t.Errorf("curve Bounds() = %v", c)
	}
}

func TestPoint_Lerp(t *testing.T) {
	p, q := Pt(0, 10), Pt(100, 30)
	if got := p.Lerp(q, 0); got != p {
		t.Errorf("Lerp(0) = %v, want %v", got, p)
	}
	if got := p.Lerp(q, 0.25); got != Pt(25, 15) {
		t.Errorf("Lerp(0.25) = %v, want (25, 15)", got)
	}
}
