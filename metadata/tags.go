// SPDX-License-Identifier: EPL-2.0

package metadata

// Kind names one of the tags a stream can carry.
type Kind int

const (
	Title Kind = iota
	Artist
	Album
	Copyright

	numKinds
)

// Kinds lists every tag kind in display order.
var Kinds = [...]Kind{Title, Artist, Album, Copyright}

func (k Kind) String() string {
	switch k {
	case Title:
		return "title"
	case Artist:
		return "artist"
	case Album:
		return "album"
	case Copyright:
		return "copyright"
	default:
		return "unknown"
	}
}

// Tags is a small key/value store of text tags. The zero value is empty
// and ready to use. A later Set for the same kind replaces the earlier value.
type Tags struct {
	values [numKinds]string
	set    [numKinds]bool
}

func (t *Tags) Set(kind Kind, value string) {
	if kind < 0 || kind >= numKinds {
		return
	}

	t.values[kind] = value
	t.set[kind] = true
}

// Get returns the value of kind and whether it was ever set.
func (t *Tags) Get(kind Kind) (string, bool) {
	if t == nil || kind < 0 || kind >= numKinds {
		return "", false
	}

	return t.values[kind], t.set[kind]
}

// Len counts the kinds that are set.
func (t *Tags) Len() int {
	n := 0
	for _, ok := range t.set {
		if ok {
			n++
		}
	}

	return n
}

// Reset forgets every value.
func (t *Tags) Reset() {
	*t = Tags{}
}
