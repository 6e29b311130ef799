package color

import "golang.org/x/exp/constraints"

// Min and Max are the componentwise scalar primitives the bounding-region
// scan is built from; they're generic so the
// same code serves RgbFloat's float32 channels and Rgb565's uint16 ones
// without duplicating the comparison per concrete type.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}

// WrapAdd adds a and b modulo m, for unsigned channel arithmetic where
// overflow should wrap within a bit-field width rather than saturate.
func WrapAdd[T constraints.Unsigned](a, b, m T) T {
	return (a + b) % m
}

// WrapSub subtracts b from a modulo m.
func WrapSub[T constraints.Unsigned](a, b, m T) T {
	return (a - b + m) % m
}
