package strokefont

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Sheet is a glyph sheet: font naming plus the strokes of every glyph, as
// stored in a YAML document.
//
//	family: WedgeLinear
//	style: Regular
//	glyphs:
//	  - codepoint: U+E000
//	    strokes:
//	      - curve: [[100, 500], [300, 100], [500, 500]]
//	      - dot: {center: [300, 550], radius: 12}
type Sheet struct {
	Family     string       `yaml:"family,omitempty"`
	Style      string       `yaml:"style,omitempty"`
	UniqueID   string       `yaml:"unique_id,omitempty"`
	Version    string       `yaml:"version,omitempty"`
	UnitsPerEm int          `yaml:"units_per_em,omitempty"`
	Glyphs     []SheetGlyph `yaml:"glyphs"`
}

// SheetGlyph is one glyph entry of a sheet.
type SheetGlyph struct {
	CodePoint CodePoint     `yaml:"codepoint"`
	Name      string        `yaml:"name,omitempty"`
	Strokes   []SheetStroke `yaml:"strokes"`
}

// SheetStroke holds exactly one of Curve or Dot.
type SheetStroke struct {
	// Curve is [P1, CP, P2], each an [x, y] pair.
	Curve [][]float64 `yaml:"curve,omitempty,flow"`
	Dot   *SheetDot   `yaml:"dot,omitempty"`
}

// SheetDot is a dot entry.
type SheetDot struct {
	Center []float64 `yaml:"center,flow"`
	Radius float64   `yaml:"radius"`
}

// CodePoint is a rune that reads from YAML as an integer, a "U+XXXX"
// string or a single-character string, and writes as "U+XXXX".
type CodePoint rune

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CodePoint) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: codepoint must be a scalar", n.Line)
	}
	if n.ShortTag() == "!!int" {
		v, err := strconv.ParseInt(n.Value, 0, 32)
		if err != nil {
			return fmt.Errorf("line %d: codepoint: %w", n.Line, err)
		}
		*c = CodePoint(v)
		return nil
	}
	s := n.Value
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		v, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return fmt.Errorf("line %d: codepoint %q: %w", n.Line, s, err)
		}
		*c = CodePoint(v)
		return nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		*c = CodePoint(r)
		return nil
	}
	return fmt.Errorf("line %d: codepoint %q is not an integer, U+XXXX or a single character", n.Line, s)
}

// MarshalYAML implements yaml.Marshaler.
func (c CodePoint) MarshalYAML() (any, error) {
	return fmt.Sprintf("U+%04X", rune(c)), nil
}

// LoadSheet decodes a sheet from r. Unknown fields are rejected.
func LoadSheet(r io.Reader) (*Sheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Sheet
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("strokefont: load sheet: %w", err)
	}
	return &s, nil
}

// SaveSheet encodes s to w as YAML.
func SaveSheet(w io.Writer, s *Sheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("strokefont: save sheet: %w", err)
	}
	return enc.Close()
}

// Specs converts the sheet glyphs into glyph specs. Malformed entries are
// reported as *InputError.
func (s *Sheet) Specs() ([]GlyphSpec, error) {
	specs := make([]GlyphSpec, 0, len(s.Glyphs))
	for _, g := range s.Glyphs {
		cp := rune(g.CodePoint)
		spec := GlyphSpec{CodePoint: cp, Name: g.Name}
		for i, st := range g.Strokes {
			stroke, err := st.stroke()
			if err != nil {
				return nil, &InputError{CodePoint: cp, Stroke: i, Reason: err.Error()}
			}
			spec.Append(stroke)
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (st SheetStroke) stroke() (Stroke, error) {
	switch {
	case st.Curve != nil && st.Dot != nil:
		return Stroke{}, errors.New("stroke has both curve and dot")
	case st.Curve != nil:
		if len(st.Curve) != 3 {
			return Stroke{}, fmt.Errorf("curve needs 3 points, got %d", len(st.Curve))
		}
		var pts [3]Point
		for i, xy := range st.Curve {
			p, err := pair(xy)
			if err != nil {
				return Stroke{}, fmt.Errorf("curve point %d: %w", i, err)
			}
			pts[i] = p
		}
		return CurveStroke(pts[0], pts[1], pts[2]), nil
	case st.Dot != nil:
		c, err := pair(st.Dot.Center)
		if err != nil {
			return Stroke{}, fmt.Errorf("dot center: %w", err)
		}
		return DotStroke(c, st.Dot.Radius), nil
	default:
		return Stroke{}, errors.New("stroke has neither curve nor dot")
	}
}

func pair(xy []float64) (Point, error) {
	if len(xy) != 2 {
		return Point{}, fmt.Errorf("need [x, y], got %d values", len(xy))
	}
	return Pt(xy[0], xy[1]), nil
}

// Options returns builder options for the sheet's naming and em size.
// Empty fields leave the defaults alone.
func (s *Sheet) Options() []Option {
	var opts []Option
	if s.Family != "" || s.Style != "" {
		family, style := s.Family, s.Style
		opts = append(opts, func(c *Config) {
			if family != "" {
				c.Font.Metadata.Family = family
			}
			if style != "" {
				c.Font.Metadata.Style = style
			}
		})
	}
	if s.UniqueID != "" {
		opts = append(opts, WithUniqueID(s.UniqueID))
	}
	if s.Version != "" {
		opts = append(opts, WithVersion(s.Version))
	}
	if s.UnitsPerEm != 0 {
		opts = append(opts, WithUnitsPerEm(s.UnitsPerEm))
	}
	return opts
}

// NewSheet builds a sheet from specs and the naming of cfg.
func NewSheet(cfg Config, specs []GlyphSpec) *Sheet {
	m := cfg.Font.Metadata
	s := &Sheet{
		Family:     m.Family,
		Style:      m.Style,
		UniqueID:   m.UniqueID,
		Version:    m.Version,
		UnitsPerEm: cfg.Font.UnitsPerEm,
		Glyphs:     make([]SheetGlyph, 0, len(specs)),
	}
	for _, spec := range specs {
		g := SheetGlyph{CodePoint: CodePoint(spec.CodePoint), Name: spec.Name}
		for _, st := range spec.Strokes {
			switch st.Kind {
			case StrokeDot:
				g.Strokes = append(g.Strokes, SheetStroke{Dot: &SheetDot{
					Center: []float64{st.Dot.Center.X, st.Dot.Center.Y},
					Radius: st.Dot.Radius,
				}})
			default:
				c := st.Curve
				g.Strokes = append(g.Strokes, SheetStroke{Curve: [][]float64{
					{c.P1.X, c.P1.Y}, {c.CP.X, c.CP.Y}, {c.P2.X, c.P2.Y},
				}})
			}
		}
		s.Glyphs = append(s.Glyphs, g)
	}
	return s
}
