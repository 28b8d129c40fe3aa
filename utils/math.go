package utils

import "golang.org/x/exp/constraints"

// Min returns the smaller value between two numbers.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger value between two numbers.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	return Min(Max(x, lo), hi)
}
