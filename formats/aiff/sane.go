// SPDX-License-Identifier: EPL-2.0

package aiff

// saneToRate converts the 80-bit extended sample rate of a COMM chunk to
// an integer. Only the top 32 mantissa bits are used; values that cannot
// be a sample rate are clamped instead of rejected.
func saneToRate(b [10]byte) int {
	switch {
	case b[0]&0x80 != 0:
		return 0
	case b[0] <= 0x3F:
		return 1
	case b[0] > 0x40:
		return 0x4000000
	case b[1] > 0x1C:
		return 800000000
	}

	mantissa := uint32(b[2])<<23 | uint32(b[3])<<15 | uint32(b[4])<<7 | uint32(b[5])>>1

	return int(mantissa >> (29 - b[1]))
}
