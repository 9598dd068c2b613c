// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"

	"github.com/ik5/pcmstream/metadata"
)

// MaxVolume is the full-scale volume of a Stream.
const MaxVolume = 128

// Source is a pull based float32 PCM producer.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Stream is a playback session over a decoded container. It produces raw
// PCM bytes in the layout described by Spec.
type Stream interface {
	Spec() Spec

	// SetVolume stores the volume in [0, MaxVolume]. Out of range values
	// are clamped. The stream never applies it; consumers do.
	SetVolume(volume int)
	Volume() int

	// Play arms the stream. repeat <= 0 plays forever.
	Play(repeat int) error

	// GetChunk decodes at most budget bytes. done reports that playback
	// finished and nothing more will be produced.
	GetChunk(budget int) (p []byte, done bool, err error)

	// Seek positions playback at seconds from the start.
	Seek(seconds float64) error
	// Tell returns the current position in seconds.
	Tell() float64
	// Length returns the duration in seconds.
	Length() float64

	Tag(kind metadata.Kind) (string, bool)

	// Close releases any resources.
	Close() error
}

// ClampVolume bounds v to [0, MaxVolume].
func ClampVolume(v int) int {
	return min(max(v, 0), MaxVolume)
}

// Sniffer reports whether the leading bytes of an input belong to a format.
type Sniffer func(head []byte) bool

// Opener constructs a Stream from an input positioned at its first byte.
// When owned is true the Stream closes rs on Close if rs is an io.Closer.
type Opener interface {
	Open(rs io.ReadSeeker, owned bool) (Stream, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(rs io.ReadSeeker, owned bool) (Stream, error)

func (f OpenerFunc) Open(rs io.ReadSeeker, owned bool) (Stream, error) { return f(rs, owned) }

type registryEntry struct {
	sniff  Sniffer
	opener Opener
}

// Registry for openers by format key (e.g., "wav", "mp3", "ogg vorbis").
// Detection walks formats in registration order.
type Registry struct {
	codecs map[string]registryEntry
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]registryEntry),
		mtx:    &sync.Mutex{},
	}
}

// Register adds or replaces the opener for format. A nil sniff means the
// format is only reachable through Get.
func (r *Registry) Register(format string, sniff Sniffer, o Opener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}

	r.codecs[format] = registryEntry{sniff: sniff, opener: o}
}

func (r *Registry) Get(format string) (Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.codecs[format]
	return e.opener, ok
}

// Detect returns the first registered format whose sniffer accepts head.
func (r *Registry) Detect(head []byte) (string, Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, name := range r.order {
		e := r.codecs[name]
		if e.sniff != nil && e.sniff(head) {
			return name, e.opener, true
		}
	}

	return "", nil, false
}

// Formats lists the registered format keys in registration order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}
