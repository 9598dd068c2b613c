// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"

	goaudio "github.com/go-audio/audio"
)

// ExpandPCM24 widens the first n bytes of buf, packed 24-bit samples in
// order, to sign-extended 32-bit samples in the same byte order. n is
// truncated to a multiple of 3. It returns the output length; len(buf)
// must hold it.
//
// Samples are processed from the highest index down. Sample i is read from
// [3i, 3i+3) before [4i, 4i+4) is written, and 4i >= 3i, so no write ever
// lands on a byte that is still to be read.
func ExpandPCM24(buf []byte, n int, order binary.ByteOrder) int {
	samples := n / 3
	if samples <= 0 {
		return 0
	}

	decode := goaudio.Int24BETo32
	if order == binary.LittleEndian {
		decode = goaudio.Int24LETo32
	}

	for i := samples - 1; i >= 0; i-- {
		v := decode(buf[3*i : 3*i+3])
		order.PutUint32(buf[4*i:4*i+4], uint32(v))
	}

	return samples * 4
}
