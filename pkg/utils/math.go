package utils

// DivCeil returns a/b rounded up. b must be positive.
func DivCeil(a, b int) int {
	return (a + b - 1) / b
}

// HalfCeil returns n/2 rounded up.
func HalfCeil(n int) int {
	return DivCeil(n, 2)
}
