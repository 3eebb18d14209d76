package font

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

// Metadata holds the naming strings copied into the font verbatim.
type Metadata struct {
	Family   string
	Style    string
	UniqueID string
	Version  string
}

// FullName returns "Family Style", or just the family for a Regular style.
func (m Metadata) FullName() string {
	if m.Style == "" || m.Style == "Regular" {
		return m.Family
	}
	return m.Family + " " + m.Style
}

// Config holds the global metrics used during assembly.
type Config struct {
	// UnitsPerEm is the size of the design square.
	// Default: 1024
	UnitsPerEm int

	// AscentRatio and DescentRatio are fractions of UnitsPerEm above and
	// below the baseline. Both are positive; the stored descent is negated.
	// Default: 0.9 and 0.1
	AscentRatio  float64
	DescentRatio float64

	// AdvancePadding is added to the rightmost contour X to get the advance.
	// Default: 150
	AdvancePadding float64

	// MinimumAdvance is the advance of glyphs that have no contours.
	// Default: 500
	MinimumAdvance float64

	// NotdefAdvance is the advance of the .notdef glyph.
	// Default: 500
	NotdefAdvance float64

	Metadata Metadata
}

// DefaultConfig returns the default assembly configuration.
func DefaultConfig() Config {
	return Config{
		UnitsPerEm:     1024,
		AscentRatio:    0.9,
		DescentRatio:   0.1,
		AdvancePadding: 150,
		MinimumAdvance: 500,
		NotdefAdvance:  500,
		Metadata: Metadata{
			Family:  "WedgeLinear",
			Style:   "Regular",
			Version: "Version 1.000",
		},
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.UnitsPerEm < 16 || c.UnitsPerEm > 16384 {
		return &ConfigError{Field: "UnitsPerEm", Reason: "must be in [16, 16384]"}
	}
	if !finite(c.AscentRatio) || c.AscentRatio <= 0 {
		return &ConfigError{Field: "AscentRatio", Reason: "must be finite and positive"}
	}
	if !finite(c.DescentRatio) || c.DescentRatio < 0 {
		return &ConfigError{Field: "DescentRatio", Reason: "must be finite and not negative"}
	}
	if !finite(c.AdvancePadding) || c.AdvancePadding < 0 {
		return &ConfigError{Field: "AdvancePadding", Reason: "must be finite and not negative"}
	}
	if !finite(c.MinimumAdvance) || c.MinimumAdvance < 0 {
		return &ConfigError{Field: "MinimumAdvance", Reason: "must be finite and not negative"}
	}
	if !finite(c.NotdefAdvance) || c.NotdefAdvance < 0 {
		return &ConfigError{Field: "NotdefAdvance", Reason: "must be finite and not negative"}
	}
	if c.Metadata.Family == "" {
		return &ConfigError{Field: "Metadata.Family", Reason: "must not be empty"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Assemble builds a Font from normalized glyphs.
//
// The input slice is not modified; the returned font owns deep copies of
// every contour. Glyph index 0 is .notdef and the remaining glyphs follow in
// ascending code point order regardless of input order, so assembling the
// same set twice yields the same font.
//
// Each glyph's advance is its rightmost X plus AdvancePadding, or
// MinimumAdvance when it has no contours.
func Assemble(glyphs []Glyph, cfg Config) (*Font, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, ErrEmptyFont
	}

	seen := make(map[rune]int, len(glyphs))
	for i := range glyphs {
		cp := glyphs[i].CodePoint
		if cp <= 0 || !utf8.ValidRune(cp) {
			return nil, fmt.Errorf("%w: glyph %d has U+%04X", ErrInvalidCodePoint, i, cp)
		}
		if first, ok := seen[cp]; ok {
			return nil, &DuplicateCodePointError{CodePoint: cp, First: first, Second: i}
		}
		seen[cp] = i
	}

	order := make([]int, len(glyphs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return int(glyphs[a].CodePoint - glyphs[b].CodePoint)
	})

	f := &Font{
		UnitsPerEm: cfg.UnitsPerEm,
		Ascent:     cfg.AscentRatio * float64(cfg.UnitsPerEm),
		Descent:    -cfg.DescentRatio * float64(cfg.UnitsPerEm),
		Glyphs:     make([]Glyph, 0, len(glyphs)+1),
		CharMap:    make(map[rune]int, len(glyphs)),
		Metadata:   cfg.Metadata,
	}
	if f.UniqueID == "" {
		f.UniqueID = f.Version + ";" + f.Family + "-" + f.Style
	}

	f.Glyphs = append(f.Glyphs, Glyph{Name: NotdefName, Advance: cfg.NotdefAdvance})

	for _, idx := range order {
		g := glyphs[idx].Clone()
		if g.Name == "" {
			g.Name = GlyphName(g.CodePoint)
		}
		g.Advance = advanceOf(&g, cfg)
		f.CharMap[g.CodePoint] = len(f.Glyphs)
		f.Glyphs = append(f.Glyphs, g)
	}

	Logger().Debug("font: assembled",
		"family", f.Family,
		"glyphs", len(f.Glyphs),
		"unitsPerEm", f.UnitsPerEm)

	return f, nil
}

// advanceOf computes the advance width of an assembled glyph.
func advanceOf(g *Glyph, cfg Config) float64 {
	r, ok := g.Bounds()
	if !ok {
		return cfg.MinimumAdvance
	}
	return r.MaxX + cfg.AdvancePadding
}
