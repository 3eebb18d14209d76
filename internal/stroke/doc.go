// Package stroke turns sampled pen strokes and dot marks into closed polygon
// contours.
//
// # Algorithm Overview
//
// A pen stroke is converted to a fill outline by building two offset paths:
//   - Forward path: offset by +h(t) along the unit normal of each segment
//   - Backward path: offset by -h(t) along the same normal
//
// The final contour is the forward path followed by the reversed backward
// path, closed implicitly. The half-width h(t) follows a [Taper]:
//
//	h(t) = (Base + Amplitude*sin(pi*t)) / 2
//
// so the ribbon is thin at both ends and widest in the middle, like a
// brush-pen stroke. Zero-length segments are skipped and a stroke with fewer
// than two usable segments produces no contour at all.
//
// A dot is a regular polygon of [Outliner.DotSegments] vertices around its
// center.
//
// # Usage
//
//	o := stroke.NewOutliner(stroke.DefaultTaper(), stroke.DefaultDotSegments)
//	contour := o.OutlineSamples(samples)
//	dot := o.OutlineDot(stroke.Point{X: 300, Y: 300}, 12)
package stroke
