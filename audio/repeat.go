// SPDX-License-Identifier: EPL-2.0

package audio

// Repeat counts the passes left over a stream. A count <= 0 at creation
// repeats forever.
type Repeat struct {
	remaining int
}

func NewRepeat(count int) Repeat {
	if count <= 0 {
		return Repeat{remaining: -1}
	}

	return Repeat{remaining: count}
}

// Done reports that every pass has been played.
func (r Repeat) Done() bool { return r.remaining == 0 }

// Last reports that the current pass is the final one.
func (r Repeat) Last() bool { return r.remaining == 1 }

// Forever reports an endless repeat.
func (r Repeat) Forever() bool { return r.remaining < 0 }

// Remaining is the number of passes left, or -1 when endless.
func (r Repeat) Remaining() int { return r.remaining }

// Next ends the current pass. It reports whether another pass follows.
func (r *Repeat) Next() bool {
	switch {
	case r.remaining < 0:
		return true
	case r.remaining <= 1:
		r.remaining = 0
		return false
	default:
		r.remaining--
		return true
	}
}
