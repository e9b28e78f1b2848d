package geom

import (
	"math"
	"strconv"

	xfixed "golang.org/x/image/math/fixed"
)

// Fixed is a 16.16 fixed-point scalar: a signed 32-bit integer holding
// a real value scaled by 2^16. It is the coordinate type of path
// vertices. All arithmetic routes through widened intermediates, so no
// operation silently overflows for in-range operands.
type Fixed int32

const (
	fixedFracBits = 16
	fixedFracMask = 1<<fixedFracBits - 1

	// FixedOne is the fixed-point representation of 1.0.
	FixedOne Fixed = 1 << fixedFracBits
	// FixedHalf is the fixed-point representation of 0.5.
	FixedHalf Fixed = 1 << (fixedFracBits - 1)
	// FixedEpsilon is the smallest positive Fixed value.
	FixedEpsilon Fixed = 1
	// FixedMax and FixedMin bound the representable range,
	// approximately +-32768.
	FixedMax Fixed = math.MaxInt32
	FixedMin Fixed = math.MinInt32
)

// fixedMagic makes the double->fixed conversion a single addition.
// Adding 1.5*2^(52-16) forces the sum into the binade whose unit in
// the last place is exactly 2^-16, so after IEEE round-to-nearest-even
// the low 32 mantissa bits are the desired fixed-point value in two's
// complement.
const fixedMagic = (1 << (52 - fixedFracBits)) * 1.5

// Float bounds of the representable range.
const (
	fixedMinFloat = float64(math.MinInt32) / (1 << fixedFracBits)
	fixedMaxFloat = float64(math.MaxInt32) / (1 << fixedFracBits)
)

// FromFloat64 converts d to fixed point by the magic-constant trick:
// one addition and a bit reinterpretation, with round-half-to-even
// semantics inherited from the IEEE rounding of the addition.
//
// d must lie within [FixedMin, FixedMax] as a real value; behavior on
// out-of-range input is unspecified. Use FromFloat64Clamped when the
// input is not already known to be in range.
func FromFloat64(d float64) Fixed {
	return Fixed(int32(uint32(math.Float64bits(d + fixedMagic))))
}

// FromFloat64Clamped restricts d to just inside the representable
// range, then converts. Out-of-range and infinite inputs map to the
// nearest representable extreme.
func FromFloat64Clamped(d float64) Fixed {
	const tol = 1.0 / (1 << fixedFracBits)
	if d <= fixedMinFloat+tol {
		return FixedMin
	}
	if d >= fixedMaxFloat-tol {
		return FixedMax
	}
	return FromFloat64(d)
}

// FromInt converts an integer to fixed point. i must fit the
// representable range.
func FromInt(i int) Fixed {
	return Fixed(i << fixedFracBits)
}

// Float64 returns the exact real value of f. The division by a power
// of two is exact in double precision, so FromFloat64(f.Float64()) == f
// for every f.
func (f Fixed) Float64() float64 {
	return float64(f) / (1 << fixedFracBits)
}

// Int returns the integer part of f, truncated toward negative
// infinity.
func (f Fixed) Int() int {
	return int(f >> fixedFracBits)
}

// Floor returns the largest integer not greater than f.
func (f Fixed) Floor() int {
	return int(f >> fixedFracBits)
}

// Ceil returns the smallest integer not less than f.
func (f Fixed) Ceil() int {
	return int((f + fixedFracMask) >> fixedFracBits)
}

// Round returns the nearest integer to f, with halves rounding up.
func (f Fixed) Round() int {
	return int((f + FixedHalf) >> fixedFracBits)
}

// FloorFixed returns f rounded down to an integral fixed value.
func (f Fixed) FloorFixed() Fixed {
	return f &^ fixedFracMask
}

// CeilFixed returns f rounded up to an integral fixed value.
func (f Fixed) CeilFixed() Fixed {
	return (f + fixedFracMask) &^ fixedFracMask
}

// RoundFixed returns f rounded to the nearest integral fixed value,
// with halves rounding up.
func (f Fixed) RoundFixed() Fixed {
	return (f + FixedHalf) &^ fixedFracMask
}

// Frac returns the fractional bits of f.
func (f Fixed) Frac() Fixed {
	return f & fixedFracMask
}

// IsInteger reports whether f has no fractional part.
func (f Fixed) IsInteger() bool {
	return f&fixedFracMask == 0
}

// Abs returns the magnitude of f.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Mul returns f*g, computed through a widened 64-bit product.
// The result is truncated toward negative infinity.
func (f Fixed) Mul(g Fixed) Fixed {
	return Fixed(MulI32(int32(f), int32(g)) >> fixedFracBits)
}

// MulDiv returns round(a*b/c) with ties away from zero. The numerator
// is widened to 128 bits and divided by the specialized 96-by-64
// divide, so no intermediate overflows. A quotient outside the Fixed
// range saturates to FixedMax or FixedMin via the divide's overflow
// sentinel. c must be non-zero.
func MulDiv(a, b, c Fixed) Fixed {
	ab := MulI32(int32(a), int32(b))
	// round(ab/c) = trunc((2ab + c)/(2c)) with the correction taking
	// the sign of the quotient.
	num := I128From64(ab).Shl(1)
	cw := Uint128(I128From64(int64(c)))
	if (ab < 0) == (c < 0) {
		num = Int128(Uint128(num).Add(cw))
	} else {
		num = Int128(Uint128(num).Sub(cw))
	}
	q, _ := Div96By64Signed(num, 2*int64(c))
	return Fixed(q)
}

// String formats f as a decimal real number.
func (f Fixed) String() string {
	return strconv.FormatFloat(f.Float64(), 'f', -1, 64)
}

// ToInt26_6 converts f to the 26.6 fixed-point format used by
// golang.org/x/image and the font stack, rounding the dropped bits to
// nearest with halves up.
func (f Fixed) ToInt26_6() xfixed.Int26_6 {
	const drop = fixedFracBits - 6
	return xfixed.Int26_6((f + 1<<(drop-1)) >> drop)
}

// FromInt26_6 converts a 26.6 fixed-point value to Fixed. The value
// must fit the Fixed range; the widening shift itself is exact.
func FromInt26_6(v xfixed.Int26_6) Fixed {
	const grow = fixedFracBits - 6
	return Fixed(int32(v) << grow)
}

// LineYAtX returns the y coordinate of the line through p1 and p2 at
// the given x. The interpolated term is rounded to nearest via MulDiv
// rather than floored, keeping the result symmetric under swapping the
// endpoints. The line must not be vertical unless x coincides with an
// endpoint.
func LineYAtX(p1, p2 Point, x Fixed) Fixed {
	if x == p1.X {
		return p1.Y
	}
	if x == p2.X {
		return p2.Y
	}
	y := p1.Y
	if dx := p2.X - p1.X; dx != 0 {
		y += MulDiv(x-p1.X, p2.Y-p1.Y, dx)
	}
	return y
}

// LineXAtY returns the x coordinate of the line through p1 and p2 at
// the given y, by the same interpolation as LineYAtX.
func LineXAtY(p1, p2 Point, y Fixed) Fixed {
	if y == p1.Y {
		return p1.X
	}
	if y == p2.Y {
		return p2.X
	}
	x := p1.X
	if dy := p2.Y - p1.Y; dy != 0 {
		x += MulDiv(y-p1.Y, p2.X-p1.X, dy)
	}
	return x
}

// SegmentsIntersect intersects segments a0-a1 and b0-b1 using
// double-precision line parametrization. Parallel segments do not
// intersect, and both parametric coordinates must lie strictly inside
// (0, 1): segments that merely touch at an endpoint report no
// intersection.
func SegmentsIntersect(a0, a1, b0, b1 Point) (Point, bool) {
	dx1 := a1.X.Float64() - a0.X.Float64()
	dy1 := a1.Y.Float64() - a0.Y.Float64()
	dx2 := b1.X.Float64() - b0.X.Float64()
	dy2 := b1.Y.Float64() - b0.Y.Float64()

	denominator := dy2*dx1 - dx2*dy1
	if denominator == 0 {
		return Point{}, false
	}

	ex := a0.X.Float64() - b0.X.Float64()
	ey := a0.Y.Float64() - b0.Y.Float64()
	ua := (dx2*ey - dy2*ex) / denominator
	ub := (dx1*ey - dy1*ex) / denominator

	if ua <= 0 || ua >= 1 || ub <= 0 || ub >= 1 {
		return Point{}, false
	}

	return Point{
		X: FromFloat64Clamped(a0.X.Float64() + ua*dx1),
		Y: FromFloat64Clamped(a0.Y.Float64() + ua*dy1),
	}, true
}
