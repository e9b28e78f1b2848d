package geom

import "math"

// RadialGradient describes a radial color transition between two
// circles: at parameter t the geometry is the circle with center
// lerp(C0, C1, t) and radius lerp(R0, R1, t). Both radii must be
// non-negative.
//
// Example:
//
//	g := geom.NewRadialGradient(50, 50, 0, 50, 50, 50).
//	    AddColorStop(0, geom.White).
//	    AddColorStop(1, geom.Black)
type RadialGradient struct {
	C0     Vec2        // Center of the start circle (t=0)
	R0     float64     // Radius of the start circle
	C1     Vec2        // Center of the end circle (t=1)
	R1     float64     // Radius of the end circle
	Stops  []ColorStop // Color stops defining the gradient
	Extend ExtendMode  // How the gradient extends beyond [0, 1]
}

// NewRadialGradient creates a new radial gradient from the circle
// centered at (x0, y0) with radius r0 to the circle centered at
// (x1, y1) with radius r1.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	return &RadialGradient{
		C0: Vec2{X: x0, Y: y0}, R0: r0,
		C1: Vec2{X: x1, Y: y1}, R1: r1,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Offset should be in the range [0, 1].
// Returns the gradient for method chaining.
func (g *RadialGradient) AddColorStop(offset float64, c RGBA) *RadialGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode for the gradient.
// Returns the gradient for method chaining.
func (g *RadialGradient) SetExtend(mode ExtendMode) *RadialGradient {
	g.Extend = mode
	return g
}

// isDegenerateGeometry distinguishes the two shapes that reduce to a
// single color: a point (both radii near zero) and a cylinder (equal
// radii, nearly coincident centers). Both need the radius difference
// to be near zero; a moving circle of fixed radius still paints a
// gradient.
func (g *RadialGradient) isDegenerateGeometry() bool {
	return abs(g.R0-g.R1) < dblEpsilon &&
		(math.Min(g.R0, g.R1) < dblEpsilon ||
			math.Max(abs(g.C0.X-g.C1.X), abs(g.C0.Y-g.C1.Y)) < 2*dblEpsilon)
}

// Interpolate returns the gradient geometry at parameter t.
func (g *RadialGradient) Interpolate(t float64) Circle {
	return Circle{
		Center: g.C0.Lerp(g.C1, t),
		Radius: g.R0 + t*(g.R1-g.R0),
	}
}

// IsDegenerate classifies gradients reducible to one color: degenerate
// circle geometry or uniform stops. The returned color is the
// mode-weighted stop average for degenerate geometry, or Transparent
// for clear results.
func (g *RadialGradient) IsDegenerate(box Rect) (RGBA, bool) {
	if len(g.Stops) == 0 {
		return Transparent, true
	}
	if g.isDegenerateGeometry() {
		Logger().Debug("degenerate radial gradient", "r0", g.R0, "r1", g.R1)
		if g.Extend == ExtendNone {
			return Transparent, true
		}
		return AverageColor(g.Stops, g.Extend), true
	}
	if uniformStops(g.Stops) {
		return g.Stops[0].Color, true
	}
	return RGBA{}, false
}

// BoxToParameter returns the minimal parameter interval whose circles
// cover the box at the given tolerance.
//
// The computation translates so the start circle is centered at the
// origin; circle(t) then has center t*(dx, dy) and radius r0 + t*dr.
// Candidate parameters are enumerated where a circle of the family
//
//	(a) passes through the zero-radius focus point,
//	(b) is externally tangent to a box edge-line, or
//	(c) passes through a box corner (a quadratic in t).
//
// When the quadratic coefficient vanishes every circle of the family
// is tangent to a single line through the focus; if that line crosses
// the box, the smallest circle that stays within tolerance of it over
// the box is added so the range stays bounded. The result is the
// union of candidates that are geometrically valid: implied radius
// non-negative within epsilon and the touching point on the bounded
// edge or corner.
//
// Preconditions: the gradient is not degenerate and the box satisfies
// Min < Max componentwise. If no circle of the family touches the box
// the empty interval [0, 0] is returned.
func (g *RadialGradient) BoxToParameter(box Rect, tolerance float64) (float64, float64) {
	tolerance = math.Max(tolerance, dblEpsilon)

	cr := g.R0
	dr := g.R1 - g.R0
	dx := g.C1.X - g.C0.X
	dy := g.C1.Y - g.C0.Y

	// Translate by -C0 to simplify the computations, then enlarge the
	// boundaries slightly to absorb rounding in the candidate tests.
	x0 := box.Min.X - g.C0.X - dblEpsilon
	y0 := box.Min.Y - g.C0.Y - dblEpsilon
	x1 := box.Max.X - g.C0.X + dblEpsilon
	y1 := box.Max.Y - g.C0.Y + dblEpsilon

	minX, minY := x0-dblEpsilon, y0-dblEpsilon
	maxX, maxY := x1+dblEpsilon, y1+dblEpsilon

	// Negative radii are not allowed; a candidate is valid only when
	// t*dr >= minDr.
	minDr := -(cr + dblEpsilon)

	var t0, t1 float64
	valid := false
	consider := func(t float64) {
		if !valid {
			t0, t1 = t, t
			valid = true
			return
		}
		t0 = math.Min(t0, t)
		t1 = math.Max(t1, t)
	}

	// (a) The zero-radius focus point: the only circle of the family
	// through it is the focus itself, at t = -cr/dr. If the radius is
	// constant there is no focus (a cylinder, not a cone).
	var xFocus, yFocus float64
	if abs(dr) >= dblEpsilon {
		tf := -cr / dr
		xFocus, yFocus = tf*dx, tf*dy
		if minX <= xFocus && xFocus <= maxX && minY <= yFocus && yFocus <= maxY {
			consider(tf)
		}
	}

	// (b) External tangency to the four edge-lines: t*dx + (cr+t*dr)
	// touching x0, t*dx - (cr+t*dr) touching x1, and likewise in y.
	// The touching point must lie on the bounded edge. A zero
	// denominator means tangency to a line parallel to the edge,
	// covered by the focus and the vanishing-coefficient cases.
	edge := func(num, den, delta, lower, upper float64) {
		if abs(den) < dblEpsilon {
			return
		}
		t := num / den
		if v := t * delta; t*dr >= minDr && lower <= v && v <= upper {
			consider(t)
		}
	}
	edge(x0-cr, dx+dr, dy, minY, maxY)
	edge(x1+cr, dx-dr, dy, minY, maxY)
	edge(y0-cr, dy+dr, dx, minX, maxX)
	edge(y1+cr, dy-dr, dx, minX, maxX)

	// (c) Passage through each corner p: |p - t*d|^2 = (cr + t*dr)^2,
	// the quadratic a*t^2 - 2*b*t + c = 0 with
	//
	//	a = dx^2 + dy^2 - dr^2
	//	b = p.dx + p.dy + cr*dr
	//	c = |p|^2 - cr^2
	a := dx*dx + dy*dy - dr*dr
	if abs(a) < dblEpsilon*dblEpsilon {
		// Every circle of the family is tangent to the line b == 0
		// through the focus (a non-degenerate gradient with a == 0
		// has |dr| >= epsilon, so the focus exists). Points of the
		// box on that line are approached only as the radius grows
		// without bound; intersect the line with each edge, keep the
		// largest squared distance from the focus, and add the
		// smallest circle within tolerance of the line over that
		// reach:
		//
		//	r = (maxd2 + tolerance^2) / (2*tolerance)
		//	t = (r - cr) / dr
		//
		// The intersection is computed in a focus-centered frame
		// with axes orthogonal (u) and parallel (v) to the edge.
		maxd2 := 0.0
		lineEdge := func(edge, delta, den, lower, upper, uOrigin, vOrigin float64) {
			if abs(den) < dblEpsilon {
				return
			}
			v := -(edge*delta + cr*dr) / den
			if lower <= v && v <= upper {
				u := edge - uOrigin
				v -= vOrigin
				if d2 := u*u + v*v; d2 > maxd2 {
					maxd2 = d2
				}
			}
		}
		lineEdge(y0, dy, dx, minX, maxX, yFocus, xFocus)
		lineEdge(y1, dy, dx, minX, maxX, yFocus, xFocus)
		lineEdge(x0, dx, dy, minY, maxY, xFocus, yFocus)
		lineEdge(x1, dx, dy, minY, maxY, xFocus, yFocus)

		if maxd2 > 0 {
			tLimit := (maxd2 + tolerance*tolerance - 2*tolerance*cr) / (2 * tolerance * dr)
			consider(tLimit)
		}

		// Off the tangent line the quadratic collapses to the linear
		// 2*b*t = c.
		corner := func(px, py float64) {
			b := px*dx + py*dy + cr*dr
			if abs(b) < dblEpsilon {
				return
			}
			c := px*px + py*py - cr*cr
			if t := 0.5 * c / b; t*dr >= minDr {
				consider(t)
			}
		}
		corner(x0, y0)
		corner(x0, y1)
		corner(x1, y0)
		corner(x1, y1)
	} else {
		invA := 1 / a
		corner := func(px, py float64) {
			b := px*dx + py*dy + cr*dr
			c := px*px + py*py - cr*cr
			disc := b*b - a*c
			if disc < 0 {
				return
			}
			sq := math.Sqrt(disc)
			for _, t := range [2]float64{(b + sq) * invA, (b - sq) * invA} {
				if t*dr >= minDr {
					consider(t)
				}
			}
		}
		corner(x0, y0)
		corner(x0, y1)
		corner(x1, y0)
		corner(x1, y1)
	}

	if !valid {
		return 0, 0
	}
	return t0, t1
}
