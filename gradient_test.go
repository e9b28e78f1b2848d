package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var (
	_ Gradient = (*LinearGradient)(nil)
	_ Gradient = (*RadialGradient)(nil)
)

func TestApplyExtendMode(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		mode ExtendMode
		want float64
	}{
		{"pad inside", 0.5, ExtendPad, 0.5},
		{"pad below", -0.5, ExtendPad, 0},
		{"pad above", 1.5, ExtendPad, 1},
		{"repeat inside", 0.25, ExtendRepeat, 0.25},
		{"repeat above", 1.25, ExtendRepeat, 0.25},
		{"repeat below", -0.25, ExtendRepeat, 0.75},
		{"repeat far", 5.75, ExtendRepeat, 0.75},
		{"reflect inside", 0.25, ExtendReflect, 0.25},
		{"reflect above", 1.25, ExtendReflect, 0.75},
		{"reflect second period", 2.25, ExtendReflect, 0.25},
		{"reflect below", -0.25, ExtendReflect, 0.25},
		{"none passthrough", 1.5, ExtendNone, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyExtendMode(tt.t, tt.mode); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("applyExtendMode(%g, %v) = %g, want %g", tt.t, tt.mode, got, tt.want)
			}
		})
	}
}

func TestColorAtOffset(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0, Color: Black},
		{Offset: 1, Color: White},
	}
	tests := []struct {
		name string
		t    float64
		mode ExtendMode
		want RGBA
	}{
		{"start", 0, ExtendPad, Black},
		{"end", 1, ExtendPad, White},
		{"middle", 0.5, ExtendPad, RGBA{0.5, 0.5, 0.5, 1}},
		{"pad beyond", 2, ExtendPad, White},
		{"repeat beyond", 1.25, ExtendRepeat, RGBA{0.25, 0.25, 0.25, 1}},
		{"reflect beyond", 1.25, ExtendReflect, RGBA{0.75, 0.75, 0.75, 1}},
		{"none beyond", 1.25, ExtendNone, Transparent},
		{"none below", -0.25, ExtendNone, Transparent},
		{"none inside", 0.5, ExtendNone, RGBA{0.5, 0.5, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorAtOffset(stops, tt.t, tt.mode)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ColorAtOffset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColorAtOffsetCoincidentStops(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0.5, Color: Black},
		{Offset: 0.5, Color: White},
	}
	// At the shared offset the earlier stop wins; no division by zero.
	if got := ColorAtOffset(stops, 0.5, ExtendPad); got != Black {
		t.Errorf("at coincident offset = %+v, want Black", got)
	}
	if got := ColorAtOffset(stops, 0.75, ExtendPad); got != White {
		t.Errorf("past coincident offset = %+v, want White", got)
	}
}

func TestSynthesizeBoundaryStopsRepeat(t *testing.T) {
	red := RGBA{1, 0, 0, 1}
	blue := RGBA{0, 0, 1, 1}
	stops := []ColorStop{
		{Offset: 0.25, Color: red},
		{Offset: 0.75, Color: blue},
	}
	out := SynthesizeBoundaryStops(stops, ExtendRepeat)
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	if out[0].Offset != 0 || out[len(out)-1].Offset != 1 {
		t.Fatalf("domain = [%g, %g], want [0, 1]", out[0].Offset, out[len(out)-1].Offset)
	}
	// The wrap blend puts the same color at both boundaries, so a
	// repeated gradient has no seam.
	if diff := cmp.Diff(out[0].Color, out[len(out)-1].Color, approx); diff != "" {
		t.Errorf("boundary colors differ (-start +end):\n%s", diff)
	}
	want := blue.Lerp(red, 0.5)
	if diff := cmp.Diff(want, out[0].Color, approx); diff != "" {
		t.Errorf("wrap blend mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeBoundaryStopsReflect(t *testing.T) {
	red := RGBA{1, 0, 0, 1}
	blue := RGBA{0, 0, 1, 1}
	stops := []ColorStop{
		{Offset: 0.25, Color: red},
		{Offset: 0.75, Color: blue},
	}
	out := SynthesizeBoundaryStops(stops, ExtendReflect)
	want := []ColorStop{
		{Offset: 0, Color: red},
		{Offset: 0.25, Color: red},
		{Offset: 0.75, Color: blue},
		{Offset: 1, Color: blue},
	}
	if diff := cmp.Diff(want, out, approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeBoundaryStopsPadStep(t *testing.T) {
	red := RGBA{1, 0, 0, 1}
	blue := RGBA{0, 0, 1, 1}
	stops := []ColorStop{
		{Offset: 0.5, Color: red},
		{Offset: 0.5, Color: blue},
	}
	out := SynthesizeBoundaryStops(stops, ExtendPad)
	want := []ColorStop{
		{Offset: 0, Color: red},
		{Offset: 0.5, Color: red},
		{Offset: 0.5, Color: blue},
		{Offset: 1, Color: blue},
	}
	if diff := cmp.Diff(want, out, approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeBoundaryStopsAlreadyTotal(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0, Color: Black},
		{Offset: 1, Color: White},
	}
	for _, mode := range []ExtendMode{ExtendPad, ExtendRepeat, ExtendReflect} {
		out := SynthesizeBoundaryStops(stops, mode)
		if diff := cmp.Diff(stops, out, approx); diff != "" {
			t.Errorf("mode %v changed a total stop list (-want +got):\n%s", mode, diff)
		}
	}
}

func TestAverageColor(t *testing.T) {
	red := RGBA{1, 0, 0, 1}
	green := RGBA{0, 1, 0, 1}
	blue := RGBA{0, 0, 1, 1}
	tests := []struct {
		name  string
		stops []ColorStop
		mode  ExtendMode
		want  RGBA
	}{
		{
			"pad two stops",
			[]ColorStop{{0, Black}, {1, White}},
			ExtendPad,
			RGBA{0.5, 0.5, 0.5, 1},
		},
		{
			"repeat three stops",
			[]ColorStop{{0, red}, {0.5, green}, {1, blue}},
			ExtendRepeat,
			RGBA{0.25, 0.5, 0.25, 1},
		},
		{
			"reflect asymmetric",
			[]ColorStop{{0.2, red}, {0.4, green}, {1, blue}},
			ExtendReflect,
			RGBA{0.3, 0.4, 0.3, 1},
		},
		{
			"single stop",
			[]ColorStop{{0.3, green}},
			ExtendPad,
			green,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageColor(tt.stops, tt.mode)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("AverageColor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinearBoxToParameter(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	box := Rect{Min: V2(2, -1), Max: V2(8, 1)}
	t0, t1 := g.BoxToParameter(box, 0.1)
	if diff := cmp.Diff([]float64{0.2, 0.8}, []float64{t0, t1}, approx); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}

	// Reversed axis: the range flips around the same coverage.
	rev := NewLinearGradient(10, 0, 0, 0)
	t0, t1 = rev.BoxToParameter(box, 0.1)
	if diff := cmp.Diff([]float64{0.2, 0.8}, []float64{t0, t1}, approx); diff != "" {
		t.Errorf("reversed range mismatch (-want +got):\n%s", diff)
	}

	// Diagonal axis against the unit box.
	diag := NewLinearGradient(0, 0, 1, 1)
	t0, t1 = diag.BoxToParameter(Rect{Min: V2(0, 0), Max: V2(1, 1)}, 0.1)
	if diff := cmp.Diff([]float64{0, 1}, []float64{t0, t1}, approx); diff != "" {
		t.Errorf("diagonal range mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearInterpolate(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 20)
	c := g.Interpolate(0.5)
	if diff := cmp.Diff(Circle{Center: V2(5, 10)}, c, approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearIsDegenerate(t *testing.T) {
	box := Rect{Min: V2(0, 0), Max: V2(10, 10)}
	red := RGBA{1, 0, 0, 1}

	t.Run("no stops", func(t *testing.T) {
		g := NewLinearGradient(0, 0, 10, 0)
		c, ok := g.IsDegenerate(box)
		if !ok || c != Transparent {
			t.Errorf("= %+v, %v, want Transparent, true", c, ok)
		}
	})
	t.Run("coincident endpoints pad", func(t *testing.T) {
		g := NewLinearGradient(5, 5, 5, 5).
			AddColorStop(0, Black).
			AddColorStop(1, White)
		c, ok := g.IsDegenerate(box)
		if !ok {
			t.Fatal("not classified degenerate")
		}
		if diff := cmp.Diff(RGBA{0.5, 0.5, 0.5, 1}, c, approx); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("coincident endpoints none", func(t *testing.T) {
		g := NewLinearGradient(5, 5, 5, 5).
			AddColorStop(0, Black).
			AddColorStop(1, White).
			SetExtend(ExtendNone)
		c, ok := g.IsDegenerate(box)
		if !ok || c != Transparent {
			t.Errorf("= %+v, %v, want Transparent, true", c, ok)
		}
	})
	t.Run("uniform stops", func(t *testing.T) {
		g := NewLinearGradient(0, 0, 10, 0).
			AddColorStop(0, red).
			AddColorStop(1, red)
		c, ok := g.IsDegenerate(box)
		if !ok || c != red {
			t.Errorf("= %+v, %v, want red, true", c, ok)
		}
	})
	t.Run("none with box outside domain", func(t *testing.T) {
		g := NewLinearGradient(0, 0, 1, 0).
			AddColorStop(0, Black).
			AddColorStop(1, White).
			SetExtend(ExtendNone)
		c, ok := g.IsDegenerate(Rect{Min: V2(5, 0), Max: V2(6, 1)})
		if !ok || c != Transparent {
			t.Errorf("= %+v, %v, want Transparent, true", c, ok)
		}
	})
	t.Run("ordinary gradient", func(t *testing.T) {
		g := NewLinearGradient(0, 0, 10, 0).
			AddColorStop(0, Black).
			AddColorStop(1, White)
		if _, ok := g.IsDegenerate(box); ok {
			t.Error("ordinary gradient classified degenerate")
		}
	})
}

func TestRadialInterpolate(t *testing.T) {
	g := NewRadialGradient(0, 0, 2, 10, 0, 6)
	c := g.Interpolate(0.5)
	if diff := cmp.Diff(Circle{Center: V2(5, 0), Radius: 4}, c, approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRadialIsDegenerate(t *testing.T) {
	box := Rect{Min: V2(0, 0), Max: V2(10, 10)}

	t.Run("cylinder", func(t *testing.T) {
		// Equal radii, coincident centers: every parameter draws the
		// same circle.
		g := NewRadialGradient(5, 5, 5, 5, 5, 5).
			AddColorStop(0, Black).
			AddColorStop(1, White)
		c, ok := g.IsDegenerate(box)
		if !ok {
			t.Fatal("not classified degenerate")
		}
		if diff := cmp.Diff(RGBA{0.5, 0.5, 0.5, 1}, c, approx); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("point", func(t *testing.T) {
		g := NewRadialGradient(5, 5, 0, 5, 5, 0).
			AddColorStop(0, Black).
			AddColorStop(1, White).
			SetExtend(ExtendNone)
		c, ok := g.IsDegenerate(box)
		if !ok || c != Transparent {
			t.Errorf("= %+v, %v, want Transparent, true", c, ok)
		}
	})
	t.Run("moving circle of fixed radius", func(t *testing.T) {
		g := NewRadialGradient(0, 0, 5, 10, 0, 5).
			AddColorStop(0, Black).
			AddColorStop(1, White)
		if _, ok := g.IsDegenerate(box); ok {
			t.Error("translating circle classified degenerate")
		}
	})
}

func TestRadialBoxToParameterConcentric(t *testing.T) {
	// Circles grow from the origin; the farthest corner of the box is
	// at distance 2*sqrt(2), reached at that parameter.
	g := NewRadialGradient(0, 0, 0, 0, 0, 1).
		AddColorStop(0, Black).
		AddColorStop(1, White)
	box := Rect{Min: V2(-2, -2), Max: V2(2, 2)}
	t0, t1 := g.BoxToParameter(box, 0.01)
	if math.Abs(t0) > 1e-9 {
		t.Errorf("t0 = %g, want 0", t0)
	}
	if math.Abs(t1-2*math.Sqrt2) > 1e-6 {
		t.Errorf("t1 = %g, want %g", t1, 2*math.Sqrt2)
	}
}

func TestRadialBoxToParameterOffsetFocus(t *testing.T) {
	// The zero-radius focus sits inside the box, pinning one end of
	// the range at its parameter.
	g := NewRadialGradient(0, 0, 1, 0, 0, 3)
	box := Rect{Min: V2(-10, -10), Max: V2(10, 10)}
	t0, t1 := g.BoxToParameter(box, 0.01)
	// Radius at t is 1 + 2t; zero at t = -0.5, corner distance
	// 10*sqrt(2) reached at t = (10*sqrt(2) - 1) / 2.
	if math.Abs(t0-(-0.5)) > 1e-6 {
		t.Errorf("t0 = %g, want -0.5", t0)
	}
	want := (10*math.Sqrt2 - 1) / 2
	if math.Abs(t1-want) > 1e-6 {
		t.Errorf("t1 = %g, want %g", t1, want)
	}
}

func TestRadialBoxToParameterEdgeTangency(t *testing.T) {
	// A unit circle translating along the x axis: the range ends are
	// pinned where the circle is tangent to the box's vertical edges,
	// before any corner passage.
	g := NewRadialGradient(0, 0, 1, 10, 0, 1)
	box := Rect{Min: V2(4, -0.5), Max: V2(6, 0.5)}
	t0, t1 := g.BoxToParameter(box, 0.01)
	if diff := cmp.Diff([]float64{0.3, 0.7}, []float64{t0, t1}, approx); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}
}

func TestRadialBoxToParameterTangentLine(t *testing.T) {
	// Shrinking circles with a vanishing quadratic coefficient
	// (dx^2 + dy^2 == dr^2): every circle of the family is tangent to
	// the vertical line x = 10 through the focus. Box points on that
	// line are approached only as the radius grows, so the range must
	// be clipped where the circle comes within tolerance of them.
	g := NewRadialGradient(0, 0, 10, 5, 0, 5)
	box := Rect{Min: V2(9.5, -5), Max: V2(10.5, 5)}
	const tol = 0.1
	t0, t1 := g.BoxToParameter(box, tol)

	// The focus (10, 0) sits inside the box at t = 2.
	if math.Abs(t1-2) > 1e-9 {
		t.Errorf("t1 = %g, want 2", t1)
	}
	// The farthest box points on the tangent line are (10, +-5),
	// squared distance 25 from the focus:
	// t = (25 + tol^2 - 2*tol*10) / (2*tol*(-5)).
	if math.Abs(t0-(-23.01)) > 1e-6 {
		t.Errorf("t0 = %g, want -23.01", t0)
	}
	// The limit circle really does come within tolerance of (10, 5).
	c := g.Interpolate(t0)
	if d := math.Hypot(10-c.Center.X, 5-c.Center.Y) - c.Radius; d > tol {
		t.Errorf("closest approach to (10, 5) = %g, want <= %g", d, tol)
	}
}

func TestRadialBoxToParameterNoCoverage(t *testing.T) {
	// A unit circle sliding along the y axis never reaches a far-away
	// box: empty interval.
	g := NewRadialGradient(0, 0, 1, 0, 10, 1)
	box := Rect{Min: V2(100, 100), Max: V2(101, 101)}
	t0, t1 := g.BoxToParameter(box, 0.01)
	if t0 != 0 || t1 != 0 {
		t.Errorf("range = [%g, %g], want empty [0, 0]", t0, t1)
	}
}

func TestSortStopsStable(t *testing.T) {
	red := RGBA{1, 0, 0, 1}
	blue := RGBA{0, 0, 1, 1}
	stops := []ColorStop{
		{Offset: 0.5, Color: red},
		{Offset: 0.2, Color: Black},
		{Offset: 0.5, Color: blue},
	}
	got := sortStops(stops)
	want := []ColorStop{
		{Offset: 0.2, Color: Black},
		{Offset: 0.5, Color: red},
		{Offset: 0.5, Color: blue},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// The input order is untouched.
	if stops[0].Offset != 0.5 {
		t.Error("sortStops modified its input")
	}
}
