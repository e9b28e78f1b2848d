// Package geom is the numeric and geometry kernel underlying a 2D
// vector-graphics engine.
//
// # Overview
//
// geom provides the exact and tolerance-bounded primitives that the
// path, pattern and raster layers of a vector engine build on:
//
//   - Wide integer arithmetic: exact 64- and 128-bit multiply, divide
//     and compare, including a specialized 96-by-64 division with a
//     documented overflow sentinel.
//   - Fixed: a 16.16 fixed-point scalar with bit-exact float
//     conversion and overflow-safe multiply/divide built on the wide
//     integer layer.
//   - Arc flattening: tolerance-bounded conversion of circular arcs
//     into cubic curve segments, emitted through the PathSink
//     interface.
//   - Gradient geometry: parameter-range computation, degeneracy
//     classification, interpolation and extend-mode boundary stop
//     synthesis for linear and radial gradients.
//
// # Quick Start
//
//	import "github.com/gogpu/geom"
//
//	// Flatten a half circle of radius 100 into cubic segments.
//	var rec geom.PathRecorder
//	err := geom.FlattenArc(&rec, geom.V2(0, 0), 100, 0, math.Pi,
//	    geom.Forward, geom.Identity(), 0.1)
//
//	// Compute the gradient parameter range covering a box.
//	g := geom.NewLinearGradient(0, 0, 10, 0).
//	    AddColorStop(0, geom.Black).
//	    AddColorStop(1, geom.White)
//	t0, t1 := g.BoxToParameter(geom.NewRect(geom.V2(2, 2), geom.V2(8, 8)), 1e-3)
//
// # Design
//
// Every operation is a pure, re-entrant value computation: no I/O, no
// locks, no allocation beyond small fixed-size scratch. Precondition
// violations (malformed gradients, inverted boxes) are the caller's
// responsibility; representable exceptional outcomes are reported as
// sentinel values, never as panics.
//
// The package produces no log output by default. Call SetLogger to
// enable diagnostics.
package geom
