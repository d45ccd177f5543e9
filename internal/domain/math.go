package domain

import "math"

// Checked u64 arithmetic for every fund and quantity computation.
// Overflow is a typed rejection (ErrMathOverflow), never a wrap.
// The two explicitly saturating operations (remaining quantity, the
// cancellation volume decrement) use SaturatingSub instead: those are
// best-effort accounting values, not fund-custody values.

// CheckedAdd returns a+b or ErrMathOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, ErrMathOverflow
	}
	return a + b, nil
}

// CheckedSub returns a-b or ErrMathOverflow if b > a.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrMathOverflow
	}
	return a - b, nil
}

// CheckedMul returns a*b or ErrMathOverflow.
func CheckedMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrMathOverflow
	}
	return a * b, nil
}

// SaturatingSub returns a-b, clamped at zero.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
