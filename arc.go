package geom

import "math"

// Direction selects the traversal order of an arc.
type Direction int

const (
	// Forward traverses angles in increasing order.
	Forward Direction = iota
	// Reverse traverses angles in decreasing order.
	Reverse
)

// PathSink consumes flattened path geometry. Implementations may be
// path builders, recorders or test spies; the flattener does not care
// what is behind the interface.
//
// Returning a non-nil error puts the producer in a failed state: it
// stops emitting and reports that error to its caller. This is the
// flattener's only failure path.
type PathSink interface {
	LineTo(p Point) error
	CurveTo(p1, p2, p3 Point) error
}

// Spans beyond this many full circles are reduced modulo 2*pi (plus
// the whole-turn count) so pathological angle ranges cannot produce
// unbounded output.
const maxFullCircles = 65536

// A single sub-segment never spans more than pi, so this caps the
// angle-step search, bounding segments per call.
const arcMaxSegments = 1000

// arcErrorNormalized returns the maximum deviation from the unit
// circle of a single cubic segment spanning the given angle.
func arcErrorNormalized(angle float64) float64 {
	s := math.Sin(angle / 4)
	c := math.Cos(angle / 4)
	return 2.0 / 27.0 * s * s * s * s * s * s / (c * c)
}

// arcAngleTable caches the deviation of one cubic spanning pi/1
// through pi/11, covering the tolerances common in practice before
// the linear search takes over.
var arcAngleTable = func() [11]struct{ angle, error float64 } {
	var table [11]struct{ angle, error float64 }
	for i := range table {
		table[i].angle = math.Pi / float64(i+1)
		table[i].error = arcErrorNormalized(table[i].angle)
	}
	return table
}()

// arcMaxAngleForToleranceNormalized returns the largest angle a single
// cubic may span while keeping its deviation under the normalized
// tolerance.
func arcMaxAngleForToleranceNormalized(tolerance float64) float64 {
	for _, entry := range arcAngleTable {
		if entry.error < tolerance {
			return entry.angle
		}
	}

	i := len(arcAngleTable) + 1
	angle := math.Pi / float64(i)
	for arcErrorNormalized(angle) > tolerance && i < arcMaxSegments {
		i++
		angle = math.Pi / float64(i)
	}
	if i >= arcMaxSegments {
		Logger().Debug("arc segment cap reached", "tolerance", tolerance)
	}
	return angle
}

// arcSegmentsNeeded returns how many cubic segments an arc spanning
// the given angle needs to stay within tolerance in device space.
func arcSegmentsNeeded(angle, radius float64, m Matrix, tolerance float64) int {
	// The transform's major axis converts the device-space tolerance
	// into the arc's own coordinate space.
	majorAxis := radius * m.MajorAxis()
	maxAngle := arcMaxAngleForToleranceNormalized(tolerance / majorAxis)
	return int(math.Ceil(math.Abs(angle) / maxAngle))
}

// arcFlattener tracks the sink and the first error it returned. Once
// the sink fails, every further emission short-circuits.
type arcFlattener struct {
	sink      PathSink
	m         Matrix
	tolerance float64
	err       error
}

func (a *arcFlattener) lineTo(v Vec2) {
	if a.err != nil {
		return
	}
	a.err = a.sink.LineTo(a.m.TransformPoint(v).ToPoint())
}

func (a *arcFlattener) curveTo(p1, p2, p3 Vec2) {
	if a.err != nil {
		return
	}
	a.err = a.sink.CurveTo(
		a.m.TransformPoint(p1).ToPoint(),
		a.m.TransformPoint(p2).ToPoint(),
		a.m.TransformPoint(p3).ToPoint(),
	)
}

// segment emits one cubic approximating the arc from angleA to angleB.
// The control points sit at tangential offset h = 4/3*tan(da/4) from
// the endpoints, the minimal-error cubic approximation of a circular
// arc.
func (a *arcFlattener) segment(center Vec2, radius, angleA, angleB float64) {
	rSinA := radius * math.Sin(angleA)
	rCosA := radius * math.Cos(angleA)
	rSinB := radius * math.Sin(angleB)
	rCosB := radius * math.Cos(angleB)

	h := 4.0 / 3.0 * math.Tan((angleB-angleA)/4)

	a.curveTo(
		V2(center.X+rCosA-h*rSinA, center.Y+rSinA+h*rCosA),
		V2(center.X+rCosB+h*rSinB, center.Y+rSinB-h*rCosB),
		V2(center.X+rCosB, center.Y+rSinB),
	)
}

// inDirection flattens the arc between angleMin and angleMax
// (angleMin <= angleMax), visiting it forward or backward. Arcs wider
// than pi are bisected recursively, preserving traversal order.
func (a *arcFlattener) inDirection(center Vec2, radius, angleMin, angleMax float64, dir Direction) {
	if a.err != nil {
		return
	}

	if angleMax-angleMin > 2*math.Pi*maxFullCircles {
		angleMax = math.Mod(angleMax-angleMin, 2*math.Pi)
		angleMin = math.Mod(angleMin, 2*math.Pi)
		angleMax += angleMin + 2*math.Pi*maxFullCircles
	}

	if angleMax-angleMin > math.Pi {
		angleMid := angleMin + (angleMax-angleMin)/2
		if dir == Forward {
			a.inDirection(center, radius, angleMin, angleMid, dir)
			a.inDirection(center, radius, angleMid, angleMax, dir)
		} else {
			a.inDirection(center, radius, angleMid, angleMax, dir)
			a.inDirection(center, radius, angleMin, angleMid, dir)
		}
		return
	}

	if angleMax != angleMin {
		segments := arcSegmentsNeeded(angleMax-angleMin, radius, a.m, a.tolerance)
		step := (angleMax - angleMin) / float64(segments)
		segments--

		if dir == Reverse {
			angleMin, angleMax = angleMax, angleMin
			step = -step
		}

		a.lineTo(V2(
			center.X+radius*math.Cos(angleMin),
			center.Y+radius*math.Sin(angleMin),
		))

		for i := 0; i < segments; i++ {
			a.segment(center, radius, angleMin, angleMin+step)
			angleMin += step
		}
		a.segment(center, radius, angleMin, angleMax)
	} else {
		a.lineTo(V2(
			center.X+radius*math.Cos(angleMin),
			center.Y+radius*math.Sin(angleMin),
		))
	}
}

// FlattenArc converts a circular arc into line and cubic-curve
// emissions on sink, approximating the true circle within tolerance in
// device space (tolerance is normalized by the major axis of m, and
// emitted points are transformed by m).
//
// The arc sweeps from angle0 to angle1 around center. For Forward
// traversal angle1 is lifted above angle0 by whole turns; for Reverse
// it is lowered below. A zero-length arc degenerates to a single
// LineTo of the start point.
//
// The first error returned by the sink stops all further emission and
// is returned.
func FlattenArc(sink PathSink, center Vec2, radius, angle0, angle1 float64, dir Direction, m Matrix, tolerance float64) error {
	if dir == Forward {
		if angle1 < angle0 {
			angle1 = math.Mod(angle1-angle0, 2*math.Pi)
			if angle1 < 0 {
				angle1 += 2 * math.Pi
			}
			angle1 += angle0
		}
	} else {
		if angle1 > angle0 {
			angle1 = math.Mod(angle1-angle0, 2*math.Pi)
			if angle1 > 0 {
				angle1 -= 2 * math.Pi
			}
			angle1 += angle0
		}
		angle0, angle1 = angle1, angle0
	}

	a := arcFlattener{sink: sink, m: m, tolerance: tolerance}
	a.inDirection(center, radius, angle0, angle1, dir)
	return a.err
}

// PathOp identifies a recorded path command.
type PathOp int

const (
	OpLineTo PathOp = iota
	OpCurveTo
)

// PathCommand is one recorded emission. LineTo uses Points[0] only;
// CurveTo uses all three.
type PathCommand struct {
	Op     PathOp
	Points [3]Point
}

// PathRecorder is a PathSink that records every emission. Setting Err
// makes both methods fail with that error, which exercises producers'
// failed-state handling.
type PathRecorder struct {
	Commands []PathCommand
	Err      error
}

// LineTo implements PathSink.
func (r *PathRecorder) LineTo(p Point) error {
	if r.Err != nil {
		return r.Err
	}
	r.Commands = append(r.Commands, PathCommand{Op: OpLineTo, Points: [3]Point{p}})
	return nil
}

// CurveTo implements PathSink.
func (r *PathRecorder) CurveTo(p1, p2, p3 Point) error {
	if r.Err != nil {
		return r.Err
	}
	r.Commands = append(r.Commands, PathCommand{Op: OpCurveTo, Points: [3]Point{p1, p2, p3}})
	return nil
}

// CurveCount returns how many cubic segments were recorded.
func (r *PathRecorder) CurveCount() int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == OpCurveTo {
			n++
		}
	}
	return n
}

// LastPoint returns the end point of the last recorded command.
func (r *PathRecorder) LastPoint() (Point, bool) {
	if len(r.Commands) == 0 {
		return Point{}, false
	}
	c := r.Commands[len(r.Commands)-1]
	if c.Op == OpLineTo {
		return c.Points[0], true
	}
	return c.Points[2], true
}
