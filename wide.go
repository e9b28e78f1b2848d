package geom

import (
	"math"
	"math/bits"
)

// Wide integer arithmetic for the fixed-point layer.
//
// Native Go integers cover 64 bits; products and scaled quotients of
// fixed-point values need up to 128. Uint128/Int128 carry those exact
// intermediates. They are plumbing, not first-class geometry: values
// are created, consumed and discarded within a single call.

// MulI32 returns the exact 64-bit product of two 32-bit signed integers.
func MulI32(a, b int32) int64 {
	return int64(a) * int64(b)
}

// DivRem64 returns the quotient and remainder of num/den.
// The results satisfy num == den*quo + rem with 0 <= rem < den.
// den must be non-zero.
func DivRem64(num, den uint64) (quo, rem uint64) {
	return num / den, num % den
}

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi, Lo uint64
}

// U128 constructs a Uint128 from high and low halves.
func U128(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

// U128From64 widens a uint64 to Uint128.
func U128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Mul64 returns the full 128-bit product of two 64-bit values.
func Mul64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Hi: hi, Lo: lo}
}

// Add returns u + v, discarding carry out of the high word.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns u - v, discarding borrow out of the high word.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Shl returns u shifted left by n bits, 0 <= n <= 127.
func (u Uint128) Shl(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Hi: u.Lo << (n - 64)}
	}
	if n == 0 {
		return u
	}
	return Uint128{
		Hi: u.Hi<<n | u.Lo>>(64-n),
		Lo: u.Lo << n,
	}
}

// Shr returns u shifted right by n bits, 0 <= n <= 127.
func (u Uint128) Shr(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Lo: u.Hi >> (n - 64)}
	}
	if n == 0 {
		return u
	}
	return Uint128{
		Hi: u.Hi >> n,
		Lo: u.Lo>>n | u.Hi<<(64-n),
	}
}

// Or returns the bitwise OR of u and v.
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

// Cmp compares u and v, returning -1, 0 or +1.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// IsZero reports whether u is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// DivRem returns the quotient and remainder of u/den.
// The results satisfy u == den*quo + rem with rem < den.
// den must be non-zero.
//
// The divide is iterative: the divisor is left-justified under the
// dividend without shifting past the top bit, then one quotient bit is
// decided per step by test-and-subtract.
func (u Uint128) DivRem(den Uint128) (quo, rem Uint128) {
	if den.IsZero() {
		panic("geom: division by zero")
	}
	if u.Hi == 0 && den.Hi == 0 {
		return Uint128{Lo: u.Lo / den.Lo}, Uint128{Lo: u.Lo % den.Lo}
	}
	if den.Cmp(u) > 0 {
		return Uint128{}, u
	}
	bit := Uint128{Lo: 1}
	for den.Cmp(u) < 0 && den.Hi>>63 == 0 {
		den = den.Shl(1)
		bit = bit.Shl(1)
	}
	for !bit.IsZero() {
		if u.Cmp(den) >= 0 {
			u = u.Sub(den)
			quo = quo.Or(bit)
		}
		den = den.Shr(1)
		bit = bit.Shr(1)
	}
	return quo, u
}

// Int128 is a signed 128-bit integer in two's complement, sharing the
// Uint128 representation.
type Int128 Uint128

// I128From64 widens an int64 to Int128.
func I128From64(v int64) Int128 {
	return Int128{Hi: uint64(v >> 63), Lo: uint64(v)}
}

// MulI64 returns the full 128-bit product of two 64-bit signed values.
func MulI64(a, b int64) Int128 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return Int128{Hi: hi, Lo: lo}
}

// IsNeg reports whether i is negative.
func (i Int128) IsNeg() bool {
	return i.Hi>>63 != 0
}

// Neg returns -i.
func (i Int128) Neg() Int128 {
	return Int128(Uint128{}.Sub(Uint128(i)))
}

// Abs returns the magnitude of i as a Uint128.
func (i Int128) Abs() Uint128 {
	if i.IsNeg() {
		return Uint128(i.Neg())
	}
	return Uint128(i)
}

// Cmp compares i and v as signed values, returning -1, 0 or +1.
func (i Int128) Cmp(v Int128) int {
	if i.IsNeg() != v.IsNeg() {
		if i.IsNeg() {
			return -1
		}
		return 1
	}
	return Uint128(i).Cmp(Uint128(v))
}

// Shl returns i shifted left by n bits.
func (i Int128) Shl(n uint) Int128 {
	return Int128(Uint128(i).Shl(n))
}

// DivRem returns the truncated quotient and remainder of i/den.
// The remainder takes the sign of the dividend, matching native Go
// integer division. den must be non-zero.
func (i Int128) DivRem(den Int128) (quo, rem Int128) {
	uq, ur := i.Abs().DivRem(den.Abs())
	quo, rem = Int128(uq), Int128(ur)
	if i.IsNeg() != den.IsNeg() {
		quo = quo.Neg()
	}
	if i.IsNeg() {
		rem = rem.Neg()
	}
	return quo, rem
}

// Div96By64 divides a 96-bit numerator (num.Hi < 1<<32) by a 64-bit
// divisor, producing a 32-bit quotient and 64-bit remainder without a
// full iterative 128-bit divide.
//
// If the true quotient does not fit in 32 bits the maximum
// representable quotient is returned with the remainder set equal to
// the divisor. This is a documented overflow sentinel, not a failure:
// rem == den is otherwise impossible, so callers can detect saturation
// exactly. den must be non-zero.
func Div96By64(num Uint128, den uint64) (quo uint32, rem uint64) {
	// High 64 bits of the 96-bit numerator. The quotient fits in 32
	// bits exactly when they are less than the divisor.
	if x := num.Hi<<32 | num.Lo>>32; x >= den {
		return math.MaxUint32, den
	}
	if num.Hi == 0 {
		return uint32(num.Lo / den), num.Lo % den
	}
	// num.Hi < 1<<32 <= den here, so the hardware 128-by-64 divide
	// cannot trap and the quotient is known to fit.
	q, r := bits.Div64(num.Hi, num.Lo, den)
	return uint32(q), r
}

// Div96By64Signed is the signed form of Div96By64: it divides by
// magnitude and fixes up signs, with the remainder taking the sign of
// the numerator. On overflow it saturates the quotient (MaxInt32 or
// MinInt32 depending on the result sign) and returns the divisor as
// the remainder. den must be non-zero.
func Div96By64Signed(num Int128, den int64) (quo int32, rem int64) {
	uq, ur := Div96By64(num.Abs(), uint64(absI64(den)))
	if ur == uint64(absI64(den)) && uq == math.MaxUint32 {
		if num.IsNeg() != (den < 0) {
			return math.MinInt32, den
		}
		return math.MaxInt32, den
	}
	quo = int32(uq)
	rem = int64(ur)
	if num.IsNeg() != (den < 0) {
		quo = -quo
	}
	if num.IsNeg() {
		rem = -rem
	}
	return quo, rem
}

func absI64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
