package font

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) Contour {
	return Contour{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func TestAssemble_OrdersByCodePoint(t *testing.T) {
	glyphs := []Glyph{
		{CodePoint: 0xE001, Contours: []Contour{square(50, 0, 100)}},
		{CodePoint: 0xE000, Contours: []Contour{square(50, 0, 200)}},
	}

	f, err := Assemble(glyphs, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, f.Glyphs, 3)

	assert.Equal(t, NotdefName, f.Glyphs[0].Name)
	assert.Equal(t, "uniE000", f.Glyphs[1].Name)
	assert.Equal(t, "uniE001", f.Glyphs[2].Name)
	assert.Equal(t, 1, f.CharMap[0xE000])
	assert.Equal(t, 2, f.CharMap[0xE001])
	assert.Equal(t, []rune{0xE000, 0xE001}, f.CodePoints())
}

func TestAssemble_NotdefAlwaysFirst(t *testing.T) {
	f, err := Assemble([]Glyph{{CodePoint: 'A'}}, DefaultConfig())
	require.NoError(t, err)

	notdef := f.Glyphs[0]
	assert.Equal(t, NotdefName, notdef.Name)
	assert.True(t, notdef.IsEmpty())
	assert.Equal(t, DefaultConfig().NotdefAdvance, notdef.Advance)
	for cp, idx := range f.CharMap {
		assert.NotZero(t, idx, "code point U+%04X maps to .notdef", cp)
	}
}

func TestAssemble_CharMapBijective(t *testing.T) {
	glyphs := []Glyph{
		{CodePoint: 0xE010, Contours: []Contour{square(0, 0, 10)}},
		{CodePoint: 0xE002},
		{CodePoint: 0x1F600, Contours: []Contour{square(0, 0, 10)}},
	}
	f, err := Assemble(glyphs, DefaultConfig())
	require.NoError(t, err)

	assert.Len(t, f.CharMap, f.NumGlyphs()-1)
	seen := map[int]bool{}
	for cp, idx := range f.CharMap {
		require.Less(t, idx, f.NumGlyphs())
		assert.Equal(t, cp, f.Glyphs[idx].CodePoint)
		assert.False(t, seen[idx], "glyph %d mapped twice", idx)
		seen[idx] = true
	}
	assert.Equal(t, "u1F600", f.Glyphs[3].Name)
}

func TestAssemble_DuplicateCodePoint(t *testing.T) {
	glyphs := []Glyph{
		{CodePoint: 0xE000},
		{CodePoint: 0xE001},
		{CodePoint: 0xE000},
	}
	_, err := Assemble(glyphs, DefaultConfig())

	var dup *DuplicateCodePointError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, rune(0xE000), dup.CodePoint)
	assert.Equal(t, 0, dup.First)
	assert.Equal(t, 2, dup.Second)
}

func TestAssemble_Empty(t *testing.T) {
	_, err := Assemble(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrEmptyFont)
}

func TestAssemble_InvalidCodePoint(t *testing.T) {
	for _, cp := range []rune{0, -1, 0xD800, 0x110000} {
		_, err := Assemble([]Glyph{{CodePoint: cp}}, DefaultConfig())
		assert.ErrorIs(t, err, ErrInvalidCodePoint, "U+%04X", cp)
	}
}

func TestAssemble_Advance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdvancePadding = 150
	cfg.MinimumAdvance = 420

	glyphs := []Glyph{
		{CodePoint: 0xE000, Contours: []Contour{square(50, 0, 300.4)}},
		{CodePoint: 0xE001},
	}
	f, err := Assemble(glyphs, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 500.4, f.Glyphs[1].Advance, 1e-9)
	assert.Equal(t, 420.0, f.Glyphs[2].Advance)
}

func TestAssemble_Metadata(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metadata = Metadata{Family: "Conlang", Style: "Bold", UniqueID: "conlang-bold-1", Version: "Version 2.000"}
	cfg.UnitsPerEm = 2048

	f, err := Assemble([]Glyph{{CodePoint: 0xE000}}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "Conlang", f.Family)
	assert.Equal(t, "Bold", f.Style)
	assert.Equal(t, "conlang-bold-1", f.UniqueID)
	assert.Equal(t, "Conlang Bold", f.FullName())
	assert.Equal(t, 2048, f.UnitsPerEm)
	assert.InDelta(t, 0.9*2048, f.Ascent, 1e-9)
	assert.InDelta(t, -0.1*2048, f.Descent, 1e-9)
}

func TestAssemble_DerivesUniqueID(t *testing.T) {
	f, err := Assemble([]Glyph{{CodePoint: 0xE000}}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Version 1.000;WedgeLinear-Regular", f.UniqueID)
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	glyphs := []Glyph{
		{CodePoint: 0xE001, Contours: []Contour{square(0, 0, 10)}},
		{CodePoint: 0xE000, Contours: []Contour{square(0, 0, 20)}},
	}
	f, err := Assemble(glyphs, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, rune(0xE001), glyphs[0].CodePoint)
	assert.Empty(t, glyphs[0].Name)
	assert.Zero(t, glyphs[0].Advance)

	// The font owns its contours.
	f.Glyphs[1].Contours[0][0].X = 999
	assert.Equal(t, 0.0, glyphs[1].Contours[0][0].X)
}

func TestAssemble_Deterministic(t *testing.T) {
	glyphs := []Glyph{
		{CodePoint: 0xE003, Contours: []Contour{square(1, 2, 3)}},
		{CodePoint: 0xE001, Contours: []Contour{square(4, 5, 6)}},
		{CodePoint: 0xE002},
	}
	a, err := Assemble(glyphs, DefaultConfig())
	require.NoError(t, err)
	b, err := Assemble(glyphs, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"upem too small", func(c *Config) { c.UnitsPerEm = 8 }, "UnitsPerEm"},
		{"zero ascent", func(c *Config) { c.AscentRatio = 0 }, "AscentRatio"},
		{"negative descent", func(c *Config) { c.DescentRatio = -0.1 }, "DescentRatio"},
		{"negative padding", func(c *Config) { c.AdvancePadding = -1 }, "AdvancePadding"},
		{"negative minimum", func(c *Config) { c.MinimumAdvance = -1 }, "MinimumAdvance"},
		{"negative notdef", func(c *Config) { c.NotdefAdvance = -1 }, "NotdefAdvance"},
		{"nan ascent", func(c *Config) { c.AscentRatio = math.NaN() }, "AscentRatio"},
		{"inf ascent", func(c *Config) { c.AscentRatio = math.Inf(1) }, "AscentRatio"},
		{"nan descent", func(c *Config) { c.DescentRatio = math.NaN() }, "DescentRatio"},
		{"inf padding", func(c *Config) { c.AdvancePadding = math.Inf(1) }, "AdvancePadding"},
		{"nan minimum", func(c *Config) { c.MinimumAdvance = math.NaN() }, "MinimumAdvance"},
		{"inf notdef", func(c *Config) { c.NotdefAdvance = math.Inf(1) }, "NotdefAdvance"},
		{"no family", func(c *Config) { c.Metadata.Family = "" }, "Metadata.Family"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "Validate() = %v", err)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}

	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestGlyph_Bounds(t *testing.T) {
	g := Glyph{Contours: []Contour{square(0, 0, 10), square(20, -5, 10)}}
	r, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: 0, MinY: -5, MaxX: 30, MaxY: 10}, r)
	assert.Equal(t, 8, g.NumPoints())

	empty := Glyph{}
	_, ok = empty.Bounds()
	assert.False(t, ok)
}
