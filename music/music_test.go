// SPDX-License-Identifier: EPL-2.0

package music_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/pcmstream/audio"
	"github.com/ik5/pcmstream/container"
	"github.com/ik5/pcmstream/internal/audiotest"
	"github.com/ik5/pcmstream/metadata"
	"github.com/ik5/pcmstream/music"
)

const (
	regionLen = 3000
	rate      = 8000
)

// loopFile is an 8-bit mono WAVE file of regionLen ramp bytes with the
// given smpl loops.
func loopFile(loops ...audiotest.SmplLoop) []byte {
	f := audiotest.NewRIFF().Chunk("fmt ", audiotest.FmtPayload(1, 1, rate, 8))
	if len(loops) > 0 {
		f.Chunk("smpl", audiotest.SmplPayload(loops...))
	}
	f.Chunk("data", audiotest.Ramp(regionLen))

	return f.Bytes()
}

func openFaulty(t *testing.T, data []byte) (*music.Music, *audiotest.FaultyReader) {
	t.Helper()

	r := audiotest.NewFaultyReader(data)
	m, err := music.Open(r, true)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	return m, r
}

// drain plays m to completion, failing after limit calls.
func drain(t *testing.T, m *music.Music, budget, limit int) []byte {
	t.Helper()

	var out []byte
	for range limit {
		p, done, err := m.GetChunk(budget)
		if err != nil {
			t.Fatalf("GetChunk() error = %v", err)
		}
		if done {
			return out
		}
		out = append(out, p...)
	}

	t.Fatalf("playback not done after %d calls", limit)

	return nil
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

func TestGetChunk_LoopPlayedThreeTimes(t *testing.T) {
	t.Parallel()

	ramp := audiotest.Ramp(regionLen)
	want := concat(ramp[:1000], ramp[1000:2000], ramp[1000:2000], ramp[1000:2000], ramp[2000:])

	for _, budget := range []int{1, 7, 300, 1000, 4096} {
		m, r := openFaulty(t, loopFile(audiotest.SmplLoop{Start: 1000, End: 1999, PlayCount: 3}))
		if err := m.Play(1); err != nil {
			t.Fatal(err)
		}

		got := drain(t, m, budget, 10000)
		if !bytes.Equal(got, want) {
			t.Errorf("budget %d: produced %d bytes, want %d", budget, len(got), len(want))
		}

		loopStart := m.Region().Start + 1000
		if n := r.SeeksTo(loopStart); n != 2 {
			t.Errorf("budget %d: %d seeks to the loop start, want 2", budget, n)
		}

		if l := m.Loops()[0]; l.Active || l.Remaining != 1 {
			t.Errorf("budget %d: loop after playback = %+v", budget, l)
		}
	}
}

func TestGetChunk_InfiniteLoop(t *testing.T) {
	t.Parallel()

	m, r := openFaulty(t, loopFile(audiotest.SmplLoop{Start: 1000, End: 1999, PlayCount: 0}))
	if err := m.Play(1); err != nil {
		t.Fatal(err)
	}

	ramp := audiotest.Ramp(regionLen)
	for i := range 20 {
		p, done, err := m.GetChunk(4096)
		if err != nil || done {
			t.Fatalf("call %d: done = %v, err = %v", i, done, err)
		}

		want := ramp[1000:2000]
		if i == 0 {
			want = ramp[:1000]
		}
		if !bytes.Equal(p, want) {
			t.Fatalf("call %d produced %d bytes outside the loop", i, len(p))
		}
	}

	if n := r.SeeksTo(m.Region().Start + 1000); n != 19 {
		t.Errorf("%d seeks to the loop start, want 19", n)
	}

	if l := m.Loops()[0]; !l.Active || l.Remaining != 0 {
		t.Errorf("infinite loop changed: %+v", l)
	}
}

func TestGetChunk_RepeatRearmsLoops(t *testing.T) {
	t.Parallel()

	ramp := audiotest.Ramp(regionLen)
	pass := concat(ramp[:1000], ramp[1000:2000], ramp[1000:2000], ramp[2000:])

	m, _ := openFaulty(t, loopFile(audiotest.SmplLoop{Start: 1000, End: 1999, PlayCount: 2}))
	if err := m.Play(3); err != nil {
		t.Fatal(err)
	}

	got := drain(t, m, 512, 1000)
	if want := concat(pass, pass, pass); !bytes.Equal(got, want) {
		t.Errorf("produced %d bytes, want %d", len(got), len(want))
	}
}

func TestGetChunk_RepeatCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		repeat int
		passes int
	}{
		{"once", 1, 1},
		{"twice", 2, 2},
		{"five times", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := openFaulty(t, loopFile())
			if err := m.Play(tt.repeat); err != nil {
				t.Fatal(err)
			}

			got := drain(t, m, 4096, 100)
			if len(got) != tt.passes*regionLen {
				t.Errorf("produced %d bytes, want %d", len(got), tt.passes*regionLen)
			}

			// Finished playback keeps reporting done.
			for range 3 {
				if p, done, err := m.GetChunk(4096); !done || len(p) != 0 || err != nil {
					t.Fatalf("after drain: %d bytes, done %v, err %v", len(p), done, err)
				}
			}
		})
	}
}

func TestGetChunk_PlayForever(t *testing.T) {
	t.Parallel()

	for _, repeat := range []int{0, -1} {
		m, _ := openFaulty(t, loopFile())
		if err := m.Play(repeat); err != nil {
			t.Fatal(err)
		}

		total := 0
		for i := range 50 {
			p, done, err := m.GetChunk(4096)
			if err != nil || done {
				t.Fatalf("repeat %d call %d: done = %v, err = %v", repeat, i, done, err)
			}
			total += len(p)
		}

		if total != 50*regionLen {
			t.Errorf("repeat %d: produced %d bytes, want %d", repeat, total, 50*regionLen)
		}
	}
}

func TestGetChunk_ReadErrorRewinds(t *testing.T) {
	t.Parallel()

	m, r := openFaulty(t, loopFile(audiotest.SmplLoop{Start: 1000, End: 1999, PlayCount: 3}))
	if err := m.Play(2); err != nil {
		t.Fatal(err)
	}

	start := m.Region().Start
	before := r.SeeksTo(start)
	r.FailReadsFrom = start + 500

	p, done, err := m.GetChunk(4096)
	if !errors.Is(err, container.ErrIO) || !errors.Is(err, audiotest.ErrInjected) {
		t.Fatalf("GetChunk() error = %v, want ErrIO wrapping the read error", err)
	}
	if len(p) != 0 || done {
		t.Errorf("failed GetChunk() returned %d bytes, done %v", len(p), done)
	}

	if r.SeeksTo(start) != before+1 {
		t.Errorf("cursor was not rewound to %d", start)
	}

	if got := m.Tell(); got != 0 {
		t.Errorf("Tell() = %v after a failed read, want 0", got)
	}

	if l := m.Loops()[0]; l.Remaining != 3 || !l.Active {
		t.Errorf("loop changed by a failed read: %+v", l)
	}

	r.FailReadsFrom = -1
	p, _, err = m.GetChunk(4096)
	if err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if !bytes.Equal(p, audiotest.Ramp(1000)) {
		t.Errorf("retry produced %d bytes from the wrong position", len(p))
	}
}

func TestGetChunk_Errors(t *testing.T) {
	t.Parallel()

	data := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 2, 44100, 16)).
		Chunk("data", make([]byte, 64)).
		Bytes()

	m, err := music.Open(bytes.NewReader(data), false)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := m.GetChunk(4096); !errors.Is(err, music.ErrNotPlaying) {
		t.Errorf("GetChunk() before Play error = %v, want ErrNotPlaying", err)
	}

	if err := m.Play(1); err != nil {
		t.Fatal(err)
	}

	if _, _, err := m.GetChunk(3); !errors.Is(err, music.ErrInvalidBudget) {
		t.Errorf("GetChunk(3) error = %v, want ErrInvalidBudget", err)
	}

	p, _, err := m.GetChunk(6)
	if err != nil || len(p) != 4 {
		t.Errorf("GetChunk(6) = %d bytes, %v; want one 4-byte frame", len(p), err)
	}
}

func TestSeek(t *testing.T) {
	t.Parallel()

	m, _ := openFaulty(t, loopFile())
	if err := m.Play(1); err != nil {
		t.Fatal(err)
	}

	if got, want := m.Length(), float64(regionLen)/rate; got != want {
		t.Errorf("Length() = %v, want %v", got, want)
	}

	if err := m.Seek(0.25); err != nil {
		t.Fatalf("Seek(0.25) error = %v", err)
	}
	if got := m.Tell(); got != 0.25 {
		t.Errorf("Tell() = %v, want 0.25", got)
	}

	for _, bad := range []float64{m.Length() + 0.001, 10, 1e300, -0.5, math.NaN(), math.Inf(1)} {
		if err := m.Seek(bad); !errors.Is(err, music.ErrSeekOutOfRange) {
			t.Errorf("Seek(%v) error = %v, want ErrSeekOutOfRange", bad, err)
		}
	}

	if got := m.Tell(); got != 0.25 {
		t.Errorf("Tell() = %v after rejected seeks, want 0.25", got)
	}

	p, _, err := m.GetChunk(4096)
	if err != nil {
		t.Fatal(err)
	}
	if want := audiotest.Ramp(regionLen)[2000:]; !bytes.Equal(p, want) {
		t.Errorf("read after seek produced %d bytes, want %d", len(p), len(want))
	}

	// Seeking to the exact end is allowed and plays nothing.
	if err := m.Seek(m.Length()); err != nil {
		t.Errorf("Seek(Length()) error = %v", err)
	}
}

func TestSeek_FrameAligned(t *testing.T) {
	t.Parallel()

	data := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 2, 1000, 16)).
		Chunk("data", make([]byte, 4000)).
		Bytes()

	m, err := music.Open(bytes.NewReader(data), false)
	if err != nil {
		t.Fatal(err)
	}

	// 0.0015s is 1.5 frames at 1000 Hz; it rounds down to frame 1.
	if err := m.Seek(0.0015); err != nil {
		t.Fatal(err)
	}

	if got := m.Tell(); got != 0.001 {
		t.Errorf("Tell() = %v, want 0.001", got)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	wave := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 1, 8000, 16)).
		Chunk("data", make([]byte, 16)).
		Bytes()

	waveMagic := append([]byte("WAVE"), wave[4:]...)

	aiffFile := audiotest.NewFORM("AIFF").
		Chunk("COMM", audiotest.CommPayload(1, 8, 16, 8000, "")).
		Chunk("SSND", audiotest.SsndPayload(0, make([]byte, 16))).
		Bytes()

	noData := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 1, 8000, 16)).
		Bytes()

	tests := []struct {
		name    string
		data    []byte
		format  audio.SampleFormat
		wantErr []error
	}{
		{"riff", wave, audio.S16LSB, nil},
		{"wave magic", waveMagic, audio.S16LSB, nil},
		{"form", aiffFile, audio.S16MSB, nil},
		{"ogg", []byte("OggS\x00\x02\x00\x00"), 0, []error{music.ErrUnknownMagic, container.ErrMalformedContainer}},
		{"fmt without data", noData, 0, []error{container.ErrMalformedContainer}},
		{"short", []byte("RI"), 0, []error{container.ErrIO}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := music.Open(bytes.NewReader(tt.data), false)
			if tt.wantErr != nil {
				if m != nil {
					t.Error("Open() returned a stream with an error")
				}
				for _, want := range tt.wantErr {
					if !errors.Is(err, want) {
						t.Errorf("Open() error = %v, want %v", err, want)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			if got := m.Spec().Format; got != tt.format {
				t.Errorf("Spec().Format = %s, want %s", got, tt.format)
			}
		})
	}
}

func TestOpener_Registry(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register("wav", func(head []byte) bool { return bytes.HasPrefix(head, []byte("RIFF")) }, music.Opener)

	data := loopFile()
	_, opener, ok := reg.Detect(data[:12])
	if !ok {
		t.Fatal("Detect() did not match a RIFF header")
	}

	s, err := opener.Open(bytes.NewReader(data), false)
	if err != nil {
		t.Fatal(err)
	}

	if s.Spec().SampleRate != rate {
		t.Errorf("SampleRate = %d, want %d", s.Spec().SampleRate, rate)
	}
}

func TestGetChunk_Expanding(t *testing.T) {
	t.Parallel()

	pcm24 := []byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x01, 0x80, 0x00, 0x00}

	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{
			name: "aiff 24-bit",
			data: audiotest.NewFORM("AIFF").
				Chunk("COMM", audiotest.CommPayload(1, 4, 24, 8000, "")).
				Chunk("SSND", audiotest.SsndPayload(0, pcm24)).
				Bytes(),
			want: []byte{
				0x00, 0x7F, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF,
				0x00, 0x00, 0x00, 0x01,
				0xFF, 0x80, 0x00, 0x00,
			},
		},
		{
			name: "wav mu-law",
			data: audiotest.NewRIFF().
				Chunk("fmt ", audiotest.FmtPayload(7, 1, 8000, 8)).
				Chunk("data", []byte{0xFF, 0x00, 0x7F}).
				Bytes(),
			want: le16(0, -32124, 0),
		},
		{
			name: "wav a-law",
			data: audiotest.NewRIFF().
				Chunk("fmt ", audiotest.FmtPayload(6, 1, 8000, 8)).
				Chunk("data", []byte{0xD5, 0x55, 0xAA}).
				Bytes(),
			want: le16(8, -8, 32256),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := music.Open(bytes.NewReader(tt.data), false)
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Play(1); err != nil {
				t.Fatal(err)
			}

			got := drain(t, m, 4096, 10)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("decoded % x, want % x", got, tt.want)
			}
		})
	}
}

func le16(v ...int16) []byte {
	out := make([]byte, 2*len(v))
	for i, s := range v {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}

	return out
}

func TestClose(t *testing.T) {
	t.Parallel()

	data := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 1, 8000, 8)).
		Chunk("LIST", audiotest.InfoPayload(audiotest.InfoField{ID: "INAM", Value: "Title"})).
		Chunk("data", make([]byte, 8)).
		Bytes()

	for _, owned := range []bool{true, false} {
		r := audiotest.NewFaultyReader(data)
		m, err := music.Open(r, owned)
		if err != nil {
			t.Fatal(err)
		}

		if got, ok := m.Tag(metadata.Title); !ok || got != "Title" {
			t.Errorf("Tag(Title) = %q, %v", got, ok)
		}

		if err := m.Close(); err != nil {
			t.Fatal(err)
		}
		if err := m.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}

		if r.Closed != owned {
			t.Errorf("owned %v: source closed = %v", owned, r.Closed)
		}

		if _, ok := m.Tag(metadata.Title); ok {
			t.Error("tags kept after Close")
		}

		if _, _, err := m.GetChunk(4096); !errors.Is(err, music.ErrClosed) {
			t.Errorf("GetChunk() after Close error = %v", err)
		}
		if err := m.Play(1); !errors.Is(err, music.ErrClosed) {
			t.Errorf("Play() after Close error = %v", err)
		}
	}
}

func TestVolume(t *testing.T) {
	t.Parallel()

	m, _ := openFaulty(t, loopFile())
	if m.Volume() != audio.MaxVolume {
		t.Errorf("default Volume() = %d", m.Volume())
	}

	for in, want := range map[int]int{64: 64, 500: audio.MaxVolume, -3: 0} {
		m.SetVolume(in)
		if m.Volume() != want {
			t.Errorf("SetVolume(%d) gives %d, want %d", in, m.Volume(), want)
		}
	}
}

func TestStreamSource_OverMusic(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767}
	data := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(1, 1, 8000, 16)).
		Chunk("data", le16(samples...)).
		Bytes()

	m, err := music.Open(bytes.NewReader(data), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Play(2); err != nil {
		t.Fatal(err)
	}
	m.SetVolume(audio.MaxVolume / 2)

	src, err := audio.NewStreamSource(m, 3)
	if err != nil {
		t.Fatal(err)
	}

	var got []float32
	buf := make([]float32, 5)
	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []float32{0, 0.25, -0.25, 32767.0 / 65536, 0, 0.25, -0.25, 32767.0 / 65536}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func BenchmarkGetChunk(b *testing.B) {
	data := audiotest.NewRIFF().
		Chunk("fmt ", audiotest.FmtPayload(7, 2, 8000, 8)).
		Chunk("data", audiotest.Ramp(1<<16)).
		Bytes()

	m, err := music.Open(bytes.NewReader(data), false)
	if err != nil {
		b.Fatal(err)
	}
	if err := m.Play(0); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	for b.Loop() {
		_, _, _ = m.GetChunk(16384)
	}
}
