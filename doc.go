// Package strokefont turns hand-drawn pen strokes into an installable
// TrueType font.
//
// # Overview
//
// A glyph is authored as a list of strokes in a pixel canvas (origin at the
// top-left, Y growing down). Each stroke is either a quadratic curve given
// by two endpoints and a control point, or a round dot. The pipeline turns
// strokes into filled outlines and packs them into a font:
//
//	strokes -> samples -> tapered contours -> normalized contours -> font.Font -> .ttf
//
// Curves are sampled with [ControlCurve.Samples], outlined as a ribbon whose
// thickness swells toward the middle of the stroke, normalized into the em
// square, assembled by package font and serialized by package font/ttf.
//
// # Quick Start
//
//	b, err := strokefont.NewBuilder(strokefont.WithMetadata("WedgeLinear", "Regular"))
//	if err != nil {
//		return err
//	}
//	spec := strokefont.GlyphSpec{CodePoint: 0xE000}
//	spec.Append(strokefont.CurveStroke(strokefont.Pt(100, 500), strokefont.Pt(300, 100), strokefont.Pt(500, 500)))
//	spec.Append(strokefont.DotStroke(strokefont.Pt(300, 550), 12))
//	if _, err := b.Export("wedge.ttf", []strokefont.GlyphSpec{spec}); err != nil {
//		return err
//	}
//
// # Interactive Authoring
//
// [Session] drives the same pipeline one glyph at a time: strokes are added
// and undone for the current code point, committed in plan order, and the
// committed glyphs are exported at any point.
//
// # Coordinate System
//
// Input coordinates are canvas pixels with Y down. Output coordinates are
// font design units with Y up from the baseline. All geometry stays in
// float64 until the serializer rounds once to the integer grid.
package strokefont
