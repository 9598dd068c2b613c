// SPDX-License-Identifier: EPL-2.0

package codec

// Strategy selects how encoded container bytes become output PCM.
type Strategy int

const (
	// Copy passes source bytes through unchanged.
	Copy Strategy = iota
	// Expand24 widens packed 24-bit samples to 32 bits.
	Expand24
	// MuLaw expands G.711 μ-law bytes to 16-bit samples.
	MuLaw
	// ALaw expands G.711 A-law bytes to 16-bit samples.
	ALaw
)

func (s Strategy) String() string {
	switch s {
	case Copy:
		return "copy"
	case Expand24:
		return "expand24"
	case MuLaw:
		return "mulaw"
	case ALaw:
		return "alaw"
	default:
		return "unknown"
	}
}

// SourceBytes converts an output byte budget to the number of encoded
// bytes that expand into it.
func (s Strategy) SourceBytes(out int) int {
	switch s {
	case Expand24:
		return out / 4 * 3
	case MuLaw, ALaw:
		return out / 2
	default:
		return out
	}
}

// OutputBytes is the number of bytes n encoded bytes expand to.
func (s Strategy) OutputBytes(n int) int {
	switch s {
	case Expand24:
		return n / 3 * 4
	case MuLaw, ALaw:
		return n * 2
	default:
		return n
	}
}
