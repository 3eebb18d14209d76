package strokefont

import (
	"fmt"
	"slices"

	"github.com/gogpu/strokefont/font"
	"github.com/gogpu/strokefont/font/ttf"
	"github.com/gogpu/strokefont/internal/parallel"
	"github.com/gogpu/strokefont/internal/stroke"
)

// Builder runs the stroke-to-font pipeline with a fixed configuration.
//
// A Builder holds no mutable state after construction and may be shared
// between goroutines.
type Builder struct {
	cfg        Config
	outliner   stroke.Outliner
	normalizer Normalizer
	encodeOpts []ttf.Option
}

// NewBuilder creates a builder from DefaultConfig with opts applied.
// Invalid configurations are reported as *ConfigError or *font.ConfigError.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		cfg:        cfg,
		outliner:   stroke.NewOutliner(cfg.Taper, cfg.DotSegments),
		normalizer: NewNormalizer(cfg),
	}, nil
}

// Config returns a copy of the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Outline returns the closed contours of every stroke of spec in canvas
// pixels, in stroke order. Degenerate strokes contribute nothing: curves
// whose endpoints coincide or whose samples collapse to a point, and dots
// with zero radius.
func (b *Builder) Outline(spec GlyphSpec) ([][]Point, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var contours [][]Point
	for i, s := range spec.Strokes {
		c := b.outlineStroke(s)
		if c == nil {
			Logger().Debug("strokefont: degenerate stroke skipped",
				"codepoint", fmt.Sprintf("U+%04X", spec.CodePoint),
				"stroke", i,
				"kind", s.Kind.String())
			continue
		}
		contours = append(contours, c)
	}
	return contours, nil
}

func (b *Builder) outlineStroke(s Stroke) []Point {
	switch s.Kind {
	case StrokeDot:
		return fromInternal(b.outliner.OutlineDot(s.Dot.Center.internal(), s.Dot.Radius))
	default:
		if s.Curve.IsDegenerate() {
			return nil
		}
		samples := make([]stroke.Point, 0, b.cfg.Samples)
		for p := range s.Curve.Samples(b.cfg.Samples) {
			samples = append(samples, p.internal())
		}
		return fromInternal(b.outliner.OutlineSamples(samples))
	}
}

// Glyph outlines and normalizes spec into a font glyph. The advance is left
// for the assembler.
func (b *Builder) Glyph(spec GlyphSpec) (font.Glyph, error) {
	contours, err := b.Outline(spec)
	if err != nil {
		return font.Glyph{}, err
	}
	g := font.Glyph{
		Name:      spec.Name,
		CodePoint: spec.CodePoint,
		Contours:  b.normalizer.Normalize(contours),
	}
	Logger().Debug("strokefont: glyph normalized",
		"codepoint", fmt.Sprintf("U+%04X", spec.CodePoint),
		"strokes", len(spec.Strokes),
		"contours", len(g.Contours),
		"points", g.NumPoints())
	return g, nil
}

// Build turns specs into an assembled font. The result does not depend on
// the order of specs.
func (b *Builder) Build(specs []GlyphSpec) (*font.Font, error) {
	var (
		glyphs []font.Glyph
		err    error
	)
	if b.cfg.Workers == 1 || len(specs) < 2 {
		glyphs = make([]font.Glyph, 0, len(specs))
		for _, spec := range specs {
			g, gerr := b.Glyph(spec)
			if gerr != nil {
				return nil, gerr
			}
			glyphs = append(glyphs, g)
		}
	} else {
		pool := parallel.NewPool(min(b.cfg.Workers, len(specs)))
		glyphs, err = parallel.Map(pool, specs, b.Glyph)
		pool.Close()
		if err != nil {
			return nil, err
		}
	}
	return font.Assemble(glyphs, b.cfg.Font)
}

// Encode builds specs and serializes the font to TrueType bytes.
func (b *Builder) Encode(specs []GlyphSpec) ([]byte, error) {
	f, err := b.Build(specs)
	if err != nil {
		return nil, err
	}
	return ttf.Encode(f, b.encodeOpts...)
}

// Export builds specs and writes the font to path atomically. The
// assembled font is returned so callers can inspect or verify it.
func (b *Builder) Export(path string, specs []GlyphSpec) (*font.Font, error) {
	f, err := b.Build(specs)
	if err != nil {
		return nil, err
	}
	if err := ttf.WriteFile(path, f, b.encodeOpts...); err != nil {
		return nil, err
	}
	Logger().Info("strokefont: font exported",
		"path", path,
		"family", f.Family,
		"glyphs", f.NumGlyphs())
	return f, nil
}

// WithEncodeOptions returns a copy of b that passes opts to the serializer.
func (b *Builder) WithEncodeOptions(opts ...ttf.Option) *Builder {
	nb := *b
	nb.encodeOpts = append(slices.Clone(b.encodeOpts), opts...)
	return &nb
}
