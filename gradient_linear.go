package geom

// LinearGradient describes a linear color transition between two
// points. The gradient parameter t is affine in position along the
// axis P0-P1: t=0 at P0, t=1 at P1.
//
// Example:
//
//	g := geom.NewLinearGradient(0, 0, 100, 0).
//	    AddColorStop(0, geom.Black).
//	    AddColorStop(1, geom.White)
type LinearGradient struct {
	P0, P1 Vec2        // Endpoints of the gradient axis
	Stops  []ColorStop // Color stops defining the gradient
	Extend ExtendMode  // How the gradient extends beyond [0, 1]
}

// NewLinearGradient creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		P0: Vec2{X: x0, Y: y0},
		P1: Vec2{X: x1, Y: y1},
	}
}

// AddColorStop adds a color stop at the specified offset.
// Offset should be in the range [0, 1].
// Returns the gradient for method chaining.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode for the gradient.
// Returns the gradient for method chaining.
func (g *LinearGradient) SetExtend(mode ExtendMode) *LinearGradient {
	g.Extend = mode
	return g
}

// isDegenerateGeometry reports whether the two endpoints coincide
// within epsilon, collapsing the gradient to a single color.
func (g *LinearGradient) isDegenerateGeometry() bool {
	return abs(g.P0.X-g.P1.X) < dblEpsilon && abs(g.P0.Y-g.P1.Y) < dblEpsilon
}

// BoxToParameter returns the minimal parameter interval covering the
// box. Because t is affine in position, the range is one corner's
// parameter extended by the signed deltas each box edge contributes;
// no corner needs to be evaluated independently. The gradient must not
// be degenerate.
func (g *LinearGradient) BoxToParameter(box Rect, tolerance float64) (float64, float64) {
	pdx := g.P1.X - g.P0.X
	pdy := g.P1.Y - g.P0.Y
	invsqnorm := 1.0 / (pdx*pdx + pdy*pdy)
	pdx *= invsqnorm
	pdy *= invsqnorm

	t0 := (box.Min.X-g.P0.X)*pdx + (box.Min.Y-g.P0.Y)*pdy
	tdx := box.Width() * pdx
	tdy := box.Height() * pdy

	tMin, tMax := t0, t0
	if tdx < 0 {
		tMin += tdx
	} else {
		tMax += tdx
	}
	if tdy < 0 {
		tMin += tdy
	} else {
		tMax += tdy
	}
	return tMin, tMax
}

// Interpolate returns the gradient geometry at parameter t: the point
// on the axis, as a zero-radius circle.
func (g *LinearGradient) Interpolate(t float64) Circle {
	return Circle{Center: g.P0.Lerp(g.P1, t)}
}

// IsDegenerate classifies gradients reducible to one color over the
// box: coincident endpoints, uniform stops, or an ExtendNone gradient
// whose domain misses the box entirely. The returned color is the
// mode-weighted stop average for degenerate geometry, or Transparent
// for clear results.
func (g *LinearGradient) IsDegenerate(box Rect) (RGBA, bool) {
	if len(g.Stops) == 0 {
		return Transparent, true
	}
	if g.isDegenerateGeometry() {
		Logger().Debug("degenerate linear gradient", "p0x", g.P0.X, "p0y", g.P0.Y)
		if g.Extend == ExtendNone {
			return Transparent, true
		}
		return AverageColor(g.Stops, g.Extend), true
	}
	if uniformStops(g.Stops) {
		return g.Stops[0].Color, true
	}
	if g.Extend == ExtendNone && !box.IsEmpty() {
		t0, t1 := g.BoxToParameter(box, dblEpsilon)
		if t1 < 0 || t0 > 1 {
			return Transparent, true
		}
	}
	return RGBA{}, false
}
