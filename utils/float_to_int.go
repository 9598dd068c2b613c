// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to int16.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1 from overflowing.
	return int16(x * 32767.0)
}

// AppendInt16 converts src with Float32ToInt16 and appends the result to
// dst, growing it at most once.
func AppendInt16(dst []int16, src []float32) []int16 {
	start := len(dst)
	if cap(dst)-start < len(src) {
		grown := make([]int16, start, start+max(len(src), cap(dst)))
		copy(grown, dst)
		dst = grown
	}

	dst = dst[:start+len(src)]
	for i, x := range src {
		dst[start+i] = Float32ToInt16(x)
	}

	return dst
}
