package geom

import (
	"math"
	"sort"
)

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
	// ExtendNone leaves everything outside [0, 1] unpainted.
	ExtendNone
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Circle is interpolated gradient geometry at a parameter value.
// Linear gradients yield zero-radius circles on the gradient axis.
type Circle struct {
	Center Vec2
	Radius float64
}

// Gradient is the geometry surface shared by linear and radial
// gradients: parameter-range computation over a box, geometry
// interpolation, and degeneracy classification.
type Gradient interface {
	// BoxToParameter returns the minimal parameter interval [t0, t1]
	// whose gradient geometry covers the box at the given tolerance.
	// The gradient must not be degenerate and the box must satisfy
	// Min < Max componentwise.
	BoxToParameter(box Rect, tolerance float64) (t0, t1 float64)

	// Interpolate returns the gradient geometry at parameter t.
	Interpolate(t float64) Circle

	// IsDegenerate classifies gradients that reduce to a single
	// solid or clear color, returning that color and true.
	IsDegenerate(box Rect) (RGBA, bool)
}

// dblEpsilon is the double-precision machine epsilon, the unit used by
// the degeneracy and candidate-validity tests.
const dblEpsilon = 1.0 / (1 << 52)

// colorStopEpsilon decides whether a stop already sits on a domain
// boundary during extend-mode synthesis.
const colorStopEpsilon = 1e-6

// sortStops sorts color stops by offset, keeping the given order for
// equal offsets.
func sortStops(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return stops
	}

	// Create a copy to avoid modifying the original
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	return sorted
}

// applyExtendMode remaps t into [0, 1] for the extend modes that make
// the gradient function total. ExtendNone returns t unchanged; its
// out-of-domain handling is the caller's.
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	case ExtendNone:
	default: // ExtendPad
		t = clamp01(t)
	}
	return t
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ColorAtOffset returns the stop-table color at parameter t under the
// given extend mode. ExtendNone yields Transparent outside [0, 1].
func ColorAtOffset(stops []ColorStop, t float64, mode ExtendMode) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		if mode == ExtendNone && (t < 0 || t > 1) {
			return Transparent
		}
		return stops[0].Color
	}

	// Sort stops if needed (callers should pre-sort).
	sorted := sortStops(stops)

	if mode == ExtendNone && (t < 0 || t > 1) {
		return Transparent
	}
	t = applyExtendMode(t, mode)

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})

	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}

	stop1 := sorted[idx-1]
	stop2 := sorted[idx]

	// Avoid division by zero for coincident stops
	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return stop1.Color.Lerp(stop2.Color, localT)
}

// SynthesizeBoundaryStops returns a stop list whose domain reaches
// offsets 0 and 1 exactly, so the evaluated gradient function is total
// over the closed unit interval.
//
// For Repeat the synthesized boundary color blends the last and first
// stops at the wrap-around offset, so the color at 0 equals the color
// at 1. For Reflect the nearest stop's color is repeated. For Pad (and
// None), stops sharing a single offset become a 4-point stitched table
// (constant, instantaneous step, constant) so the domain never has
// zero width.
func SynthesizeBoundaryStops(stops []ColorStop, mode ExtendMode) []ColorStop {
	if len(stops) == 0 {
		return nil
	}
	sorted := sortStops(stops)
	first := sorted[0]
	last := sorted[len(sorted)-1]

	switch mode {
	case ExtendRepeat, ExtendReflect:
		out := sorted
		if first.Offset > colorStopEpsilon {
			var c RGBA
			if mode == ExtendReflect {
				c = first.Color
			} else {
				// Wrap distance from the previous cycle's last stop.
				w := (1 - last.Offset) / (1 - last.Offset + first.Offset)
				c = last.Color.Lerp(first.Color, w)
			}
			out = append([]ColorStop{{Offset: 0, Color: c}}, out...)
		}
		if last.Offset < 1-colorStopEpsilon {
			var c RGBA
			if mode == ExtendReflect {
				c = last.Color
			} else {
				w := (1 - last.Offset) / (1 - last.Offset + first.Offset)
				c = last.Color.Lerp(first.Color, w)
			}
			out = append(out, ColorStop{Offset: 1, Color: c})
		}
		return out

	default: // ExtendPad, ExtendNone
		if first.Offset == last.Offset {
			// A step function: constant before, instantaneous step,
			// constant after.
			off := clamp01(first.Offset)
			return []ColorStop{
				{Offset: 0, Color: first.Color},
				{Offset: off, Color: first.Color},
				{Offset: off, Color: last.Color},
				{Offset: 1, Color: last.Color},
			}
		}
		return sorted
	}
}

// AverageColor reduces a gradient's stops to their weighted average:
// the color of a fully-extended gradient that turned out uniform.
// Interior stops are weighted by the parameter distance between their
// neighbors; the two boundary stops get mode-specific wrap weights for
// Repeat and Reflect, or unit weight for Pad.
//
// mode must not be ExtendNone (an unpainted exterior has no average).
func AverageColor(stops []ColorStop, mode ExtendMode) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	sorted := sortStops(stops)
	end := len(sorted) - 1

	var delta0, delta1 float64
	switch mode {
	case ExtendRepeat:
		// The first and last stop weights are what repeating the
		// gradient would give them.
		delta0 = 1 + sorted[1].Offset - sorted[end].Offset
		delta1 = 1 + sorted[0].Offset - sorted[end-1].Offset
	case ExtendReflect:
		delta0 = sorted[0].Offset + sorted[1].Offset
		delta1 = 2 - sorted[end-1].Offset - sorted[end].Offset
	default: // ExtendPad
		delta0, delta1 = 1, 1
	}

	var r, g, b, a float64
	sum := delta0 + delta1
	accumulate := func(c RGBA, w float64) {
		r += w * c.R
		g += w * c.G
		b += w * c.B
		a += w * c.A
	}
	accumulate(sorted[0].Color, delta0)
	for i := 1; i < end; i++ {
		d := sorted[i+1].Offset - sorted[i-1].Offset
		accumulate(sorted[i].Color, d)
		sum += d
	}
	accumulate(sorted[end].Color, delta1)

	if sum == 0 {
		return sorted[0].Color
	}
	return RGBA{R: r / sum, G: g / sum, B: b / sum, A: a / sum}
}

// uniformStops reports whether every stop shares one color.
func uniformStops(stops []ColorStop) bool {
	for i := 1; i < len(stops); i++ {
		if stops[i].Color != stops[0].Color {
			return false
		}
	}
	return true
}
