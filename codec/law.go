// SPDX-License-Identifier: EPL-2.0

package codec

import "encoding/binary"

const (
	lawSignBit   = 0x80
	lawQuantMask = 0x0F
	lawSegShift  = 4
	lawSegMask   = 0x70
	muLawBias    = 0x84
)

// MuLawToPCM16 decodes one G.711 μ-law byte.
func MuLawToPCM16(u byte) int16 {
	u = ^u
	t := (int(u&lawQuantMask) << 3) + muLawBias
	t <<= int(u&lawSegMask) >> lawSegShift

	if u&lawSignBit != 0 {
		return int16(muLawBias - t)
	}

	return int16(t - muLawBias)
}

// ALawToPCM16 decodes one G.711 A-law byte.
func ALawToPCM16(a byte) int16 {
	a ^= 0x55
	t := int(a&lawQuantMask) << 4
	seg := int(a&lawSegMask) >> lawSegShift

	switch seg {
	case 0:
		t += 8
	case 1:
		t += 0x108
	default:
		t += 0x108
		t <<= seg - 1
	}

	if a&lawSignBit != 0 {
		return int16(t)
	}

	return int16(-t)
}

// ExpandMuLaw decodes the first n bytes of buf in place into n little-endian
// 16-bit samples and returns the output length. len(buf) must be at least 2n.
func ExpandMuLaw(buf []byte, n int) int {
	return expandLaw(buf, n, MuLawToPCM16)
}

// ExpandALaw is ExpandMuLaw for A-law input.
func ExpandALaw(buf []byte, n int) int {
	return expandLaw(buf, n, ALawToPCM16)
}

// expandLaw walks from the last byte down so that each 2-byte write lands
// at or beyond the byte it came from and never on unread input.
func expandLaw(buf []byte, n int, decode func(byte) int16) int {
	if n <= 0 {
		return 0
	}

	for i := n - 1; i >= 0; i-- {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(decode(buf[i])))
	}

	return 2 * n
}
