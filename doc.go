// Package potrace traces binary rasters into trees of closed outlines made of
// lines and cubic Béziers. It is an implementation of the Potrace algorithm
// described in [Potrace: a polygon-based tracing algorithm] by Peter Selinger.
//
// # Pipeline
//
// Tracing proceeds in two phases. The first phase decomposes the raster into
// closed pixel contours: starting from the first set pixel in raster order, a
// contour is walked along pixel edges, ambiguous diagonal crossings are
// resolved by a configurable [TurnPolicy], the enclosed region is removed from
// a working copy of the raster, and the process repeats until the raster is
// empty. Contours whose enclosed area does not exceed [Options.TurdSize] are
// discarded. The surviving contours are arranged into a tree by insideness
// testing: a contour is a child of the innermost contour that encloses it.
//
// The second phase turns each contour into a smooth curve, independently and
// in parallel. Five stages run per contour:
//
//   - the longest straight subpath starting at every point is found
//   - a polygon with the fewest vertices whose edges are straight subpaths is
//     chosen by dynamic programming
//   - polygon vertices are moved, within a unit square each, to minimize the
//     squared distance to the underlying pixel runs
//   - vertices are classified as corners or smooth joins and a curve of line
//     and Bézier segments is produced, controlled by [Options.AlphaMax]
//   - optionally, runs of compatible Bézier segments are fused into single
//     segments within [Options.OptTolerance]
//
// The entry point is [Trace]; it returns a [Result] holding the root of the
// outline tree. Each [Path] exposes its raw pixel contour, its final [Curve],
// and its position in the tree. [Curve.Tessellate] samples a curve into a
// polyline for consumers that need discrete points.
//
// # Coordinates
//
// Contour points live on the integer grid of pixel corners: pixel (x, y)
// occupies the unit square from (x, y) to (x+1, y+1), and row 0 is the bottom
// row of the raster. Curves produced by tracing wind counter-clockwise around
// foreground regions regardless of the contour's orientation in the raster.
//
// [Potrace: a polygon-based tracing algorithm]: https://potrace.sourceforge.net/potrace.pdf
package potrace
