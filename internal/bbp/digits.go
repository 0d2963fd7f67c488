package bbp

import "math"

// fracPart returns x − ⌊x⌋, the fractional part normalized into [0,1).
// Subtracting the floor (not truncating) handles the negative intermediates
// produced by the series combination: frac(−0.3) = 0.7.
func fracPart(x float64) float64 {
	return x - math.Floor(x)
}

// CombineSeries combines the four series values into the fractional part of
// π·16^d:
//
//	x = frac(4·S₁(d) − 2·S₄(d) − S₅(d) − S₆(d))
//
// This x is the hexadecimal digit stream of π starting at position d+1.
func CombineSeries(s1, s4, s5, s6 float64) float64 {
	return fracPart(4*s1 - 2*s4 - s5 - s6)
}

// HexDigits renders count hexadecimal digits from the fractional value x:
// each step multiplies by 16 and takes the integer part as the next nibble.
// The production is finite and non-restartable; x is consumed.
func HexDigits(x float64, count int) string {
	buf := make([]byte, count)
	for i := range buf {
		x = 16 * (x - math.Floor(x))
		buf[i] = hexAlphabet[int(x)]
	}
	return string(buf)
}
