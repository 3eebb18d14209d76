package strokefont

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/strokefont/font"
	"github.com/gogpu/strokefont/font/ttf"
)

func curve() Stroke {
	return CurveStroke(Pt(100, 500), Pt(300, 100), Pt(500, 500))
}

func TestSession_CommitOrderDoesNotMatter(t *testing.T) {
	s := NewSession([]rune{0xE001, 0xE000}, newTestBuilder(t))

	for _, cmd := range []Command{
		AddStroke{curve()},
		CommitGlyph{0xE001},
		AddStroke{DotStroke(Pt(10, 10), 4)},
		CommitGlyph{0xE000},
	} {
		require.NoError(t, s.Apply(cmd))
	}
	assert.Equal(t, StateAllCommitted, s.State())

	path := filepath.Join(t.TempDir(), "font.ttf")
	f, err := s.Export(path)
	require.NoError(t, err)
	assert.Equal(t, StateExported, s.State())

	require.Equal(t, 3, f.NumGlyphs())
	assert.Equal(t, font.NotdefName, f.Glyphs[0].Name)
	assert.Equal(t, "uniE000", f.Glyphs[1].Name)
	assert.Equal(t, "uniE001", f.Glyphs[2].Name)

	specs := s.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, rune(0xE001), specs[0].CodePoint, "Specs keeps commit order")
}

func TestSession_ZeroLengthStroke(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(CurveStroke(Pt(20, 20), Pt(60, 0), Pt(20, 20))))
	require.NoError(t, s.CommitGlyph(0xE000))

	f, err := s.Export(filepath.Join(t.TempDir(), "d.ttf"))
	require.NoError(t, err)
	g, ok := f.Lookup(0xE000)
	require.True(t, ok)
	assert.Empty(t, g.Contours)
	assert.Equal(t, font.DefaultConfig().MinimumAdvance, g.Advance)
}

func TestSession_UndoOnlyWhileEditing(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))

	require.NoError(t, s.Undo(), "undo on an empty glyph is a no-op")
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.AddStroke(DotStroke(Pt(1, 1), 1)))
	require.NoError(t, s.Apply(Undo{}))
	assert.Len(t, s.Strokes(), 1)
	assert.Equal(t, StrokeCurve, s.Strokes()[0].Kind)

	require.NoError(t, s.CommitGlyph(0xE000))
	assert.ErrorIs(t, s.Undo(), ErrInvalidState)
	assert.ErrorIs(t, s.AddStroke(curve()), ErrInvalidState)
	assert.ErrorIs(t, s.CommitGlyph(0xE001), ErrInvalidState)
}

func TestSession_UndoDoesNotTouchCommitted(t *testing.T) {
	s := NewSession([]rune{0xE000, 0xE001}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.CommitGlyph(0xE000))

	require.NoError(t, s.AddStroke(DotStroke(Pt(1, 1), 1)))
	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())

	specs := s.Specs()
	require.Len(t, specs, 1)
	assert.Len(t, specs[0].Strokes, 1)
}

func TestSession_UndoClearsDanglingSelection(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.AddStroke(DotStroke(Pt(5, 5), 3)))

	require.NoError(t, s.Select(0, HandleControl))
	require.NoError(t, s.Undo())
	sel, ok := s.Selected()
	require.True(t, ok, "selection on a surviving stroke is kept")
	assert.Equal(t, Selection{Stroke: 0, Handle: HandleControl}, sel)

	require.NoError(t, s.Undo())
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.ErrorIs(t, s.MoveSelection(Pt(1, 1)), ErrInvalidState)
}

func TestSession_MoveSelection(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.AddStroke(DotStroke(Pt(5, 5), 3)))

	require.NoError(t, s.Select(0, HandleP2))
	require.NoError(t, s.MoveSelection(Pt(450, 480)))
	require.NoError(t, s.Select(1, HandleCenter))
	require.NoError(t, s.MoveSelection(Pt(7, 8)))

	strokes := s.Strokes()
	assert.Equal(t, Pt(450, 480), strokes[0].Curve.P2)
	assert.Equal(t, Pt(7, 8), strokes[1].Dot.Center)

	var ie *InputError
	assert.True(t, errors.As(s.MoveSelection(Pt(math.NaN(), 0)), &ie))
	assert.True(t, errors.As(s.Select(1, HandleP1), &ie), "curve handle on a dot")
	assert.True(t, errors.As(s.Select(0, HandleCenter), &ie), "dot handle on a curve")
	assert.True(t, errors.As(s.Select(5, HandleP1), &ie))

	s.ClearSelection()
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSession_StrokeAt(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	_, ok := s.StrokeAt(Pt(300, 300))
	assert.False(t, ok, "empty glyph has no strokes")

	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.AddStroke(DotStroke(Pt(300, 300), 20)))

	// The dot lies inside the curve's control box and was drawn last.
	i, ok := s.StrokeAt(Pt(310, 290))
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = s.StrokeAt(Pt(120, 480))
	require.True(t, ok)
	assert.Equal(t, 0, i)
	require.NoError(t, s.Select(i, HandleP1))

	_, ok = s.StrokeAt(Pt(600, 600))
	assert.False(t, ok)
}

func TestSession_InvalidStrokeLeavesStateUnchanged(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(curve()))

	err := s.AddStroke(DotStroke(Pt(1, 1), -3))
	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, rune(0xE000), ie.CodePoint)
	assert.Equal(t, 1, ie.Stroke)
	assert.Len(t, s.Strokes(), 1)
	assert.Equal(t, StateEditing, s.State())
}

func TestSession_CommitWrongCodePoint(t *testing.T) {
	s := NewSession([]rune{0xE000, 0xE001}, newTestBuilder(t))
	assert.ErrorIs(t, s.CommitGlyph(0xE001), ErrInvalidState)

	cp, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, rune(0xE000), cp)
	assert.Equal(t, 2, s.Remaining())
}

func TestSession_ExportRequiresCommit(t *testing.T) {
	s := NewSession([]rune{0xE000, 0xE001}, newTestBuilder(t))
	_, err := s.Export(filepath.Join(t.TempDir(), "x.ttf"))
	assert.ErrorIs(t, err, ErrInvalidState)

	// Partial export keeps the session editing.
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.CommitGlyph(0xE000))
	_, err = s.Export(filepath.Join(t.TempDir(), "x.ttf"))
	require.NoError(t, err)
	assert.Equal(t, StateEditing, s.State())
	cp, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, rune(0xE001), cp)
}

func TestSession_ExportFailureKeepsState(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.CommitGlyph(0xE000))

	bad := filepath.Join(t.TempDir(), "missing", "x.ttf")
	err := s.Apply(Export{Path: bad})
	var ioErr *ttf.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, StateAllCommitted, s.State())

	// Retrying to a good path succeeds, and re-export is allowed.
	good := filepath.Join(t.TempDir(), "x.ttf")
	require.NoError(t, s.Apply(Export{Path: good}))
	assert.Equal(t, StateExported, s.State())
	require.NoError(t, s.Apply(Export{Path: good}))

	_, err = os.Stat(good)
	assert.NoError(t, err)
}

func TestSession_DuplicatePlanFailsExport(t *testing.T) {
	s := NewSession([]rune{0xE000, 0xE000}, newTestBuilder(t))
	require.NoError(t, s.CommitGlyph(0xE000))
	require.NoError(t, s.CommitGlyph(0xE000))

	_, err := s.Export(filepath.Join(t.TempDir(), "x.ttf"))
	var dup *font.DuplicateCodePointError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, StateAllCommitted, s.State())
}

func TestSession_EmptyPlan(t *testing.T) {
	s := NewSession(nil, newTestBuilder(t))
	assert.Equal(t, StateAllCommitted, s.State())
	_, ok := s.Current()
	assert.False(t, ok)
	_, err := s.Export(filepath.Join(t.TempDir(), "x.ttf"))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSession_CommittedSpecsAreCopies(t *testing.T) {
	s := NewSession([]rune{0xE000}, newTestBuilder(t))
	require.NoError(t, s.AddStroke(curve()))
	require.NoError(t, s.CommitGlyph(0xE000))

	specs := s.Specs()
	specs[0].Strokes[0].Curve.P1 = Pt(-1, -1)
	assert.Equal(t, Pt(100, 500), s.Specs()[0].Strokes[0].Curve.P1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Editing", StateEditing.String())
	assert.Equal(t, "AllCommitted", StateAllCommitted.String())
	assert.Equal(t, "Exported", StateExported.String())
	assert.Equal(t, "State(9)", State(9).String())
}
