package strokefont

import (
	"math"

	"github.com/gogpu/strokefont/font"
	"github.com/gogpu/strokefont/internal/stroke"
)

// Taper describes how stroke thickness varies along a curve: the full width
// at position t is Base + Amplitude*sin(pi*t).
type Taper = stroke.Taper

// Config holds the parameters of the stroke-to-font pipeline.
type Config struct {
	// Samples is the number of points each curve is sampled into.
	// Default: 24
	Samples int

	// Taper is the stroke thickness profile in canvas pixels.
	// Default: Base 2, Amplitude 12
	Taper Taper

	// DotSegments is the number of vertices of a dot polygon.
	// Default: 16
	DotSegments int

	// FillRatio is the fraction of the em square the larger glyph dimension
	// is scaled to.
	// Default: 0.85
	FillRatio float64

	// LeftMargin is added to every normalized X coordinate, in design units.
	// Default: 50
	LeftMargin float64

	// BaselineOffset is added to every normalized Y coordinate, in design
	// units.
	// Default: 0
	BaselineOffset float64

	// Workers is the number of goroutines Build outlines glyphs on.
	// Zero means GOMAXPROCS; one outlines on the calling goroutine.
	// Default: 0
	Workers int

	// Font holds the assembly parameters: em size, vertical metrics,
	// advance rules and naming.
	Font font.Config
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Samples:        24,
		Taper:          stroke.DefaultTaper(),
		DotSegments:    stroke.DefaultDotSegments,
		FillRatio:      0.85,
		LeftMargin:     50,
		BaselineOffset: 0,
		Font:           font.DefaultConfig(),
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Samples < MinSamples {
		return &ConfigError{Field: "Samples", Reason: "must be at least 2"}
	}
	if !finite(c.Taper.Base) || !finite(c.Taper.Amplitude) || c.Taper.Base < 0 {
		return &ConfigError{Field: "Taper", Reason: "base must be finite and not negative"}
	}
	if c.DotSegments < stroke.MinDotSegments {
		return &ConfigError{Field: "DotSegments", Reason: "must be at least 3"}
	}
	if !finite(c.FillRatio) || c.FillRatio <= 0 {
		return &ConfigError{Field: "FillRatio", Reason: "must be positive"}
	}
	if !finite(c.LeftMargin) {
		return &ConfigError{Field: "LeftMargin", Reason: "must be finite"}
	}
	if !finite(c.BaselineOffset) {
		return &ConfigError{Field: "BaselineOffset", Reason: "must be finite"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must not be negative"}
	}
	return c.Font.Validate()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Option configures a Builder during creation.
//
// Example:
//
//	b, err := strokefont.NewBuilder(
//		strokefont.WithSamples(32),
//		strokefont.WithMetadata("WedgeLinear", "Regular"),
//	)
type Option func(*Config)

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithSamples sets the number of points each curve is sampled into.
func WithSamples(n int) Option {
	return func(c *Config) {
		c.Samples = n
	}
}

// WithTaper sets the stroke thickness profile.
func WithTaper(base, amplitude float64) Option {
	return func(c *Config) {
		c.Taper = Taper{Base: base, Amplitude: amplitude}
	}
}

// WithDotSegments sets the number of vertices of a dot polygon.
func WithDotSegments(n int) Option {
	return func(c *Config) {
		c.DotSegments = n
	}
}

// WithFillRatio sets the fraction of the em square a glyph fills.
func WithFillRatio(r float64) Option {
	return func(c *Config) {
		c.FillRatio = r
	}
}

// WithMargins sets the left margin and baseline offset in design units.
func WithMargins(left, baseline float64) Option {
	return func(c *Config) {
		c.LeftMargin = left
		c.BaselineOffset = baseline
	}
}

// WithWorkers sets how many goroutines Build outlines glyphs on.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithUnitsPerEm sets the size of the design square.
func WithUnitsPerEm(upem int) Option {
	return func(c *Config) {
		c.Font.UnitsPerEm = upem
	}
}

// WithVerticalMetrics sets ascent and descent as fractions of the em.
func WithVerticalMetrics(ascent, descent float64) Option {
	return func(c *Config) {
		c.Font.AscentRatio = ascent
		c.Font.DescentRatio = descent
	}
}

// WithAdvance sets the padding added after the rightmost contour point and
// the advance used for glyphs without contours.
func WithAdvance(padding, minimum float64) Option {
	return func(c *Config) {
		c.Font.AdvancePadding = padding
		c.Font.MinimumAdvance = minimum
	}
}

// WithMetadata sets the family and style names.
func WithMetadata(family, style string) Option {
	return func(c *Config) {
		c.Font.Metadata.Family = family
		c.Font.Metadata.Style = style
	}
}

// WithUniqueID sets the unique font identifier. When empty one is derived
// from version, family and style.
func WithUniqueID(id string) Option {
	return func(c *Config) {
		c.Font.Metadata.UniqueID = id
	}
}

// WithVersion sets the version string, e.g. "Version 1.000".
func WithVersion(v string) Option {
	return func(c *Config) {
		c.Font.Metadata.Version = v
	}
}
