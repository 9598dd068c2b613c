// SPDX-License-Identifier: EPL-2.0

// Package codec turns encoded container bytes into canonical PCM.
//
// Four strategies exist: Copy, Expand24 (packed 24-bit to 32-bit), MuLaw
// and ALaw (G.711 to 16-bit little endian). The expanding strategies work
// in place inside one scratch buffer, walking from the last sample down so
// output never overwrites input that has not been read yet.
//
// An Engine binds a strategy to a frame size and reads from an io.Reader:
//
//	e := codec.Engine{Strategy: codec.MuLaw, FrameSize: 1}
//	produced, consumed, err := e.Fetch(r, buf, len(buf), remaining)
package codec
