// SPDX-License-Identifier: EPL-2.0

// Package audio holds the interfaces shared by every stream backend and
// the float32 processing pipeline that consumes them.
//
// # Streams
//
// A Stream is a playback session over one decoded file. Play arms it with
// a repeat count (<= 0 repeats forever) and GetChunk then hands out raw
// PCM laid out as Spec describes:
//
//	if err := stream.Play(1); err != nil {
//	    return err
//	}
//	for {
//	    chunk, done, err := stream.GetChunk(4096)
//	    if err != nil {
//	        return err
//	    }
//	    if done {
//	        break
//	    }
//	    // use chunk before the next call; it is reused.
//	}
//
// A call may return no bytes while playback goes on, for example when a
// loop jumps back. Backends count passes with Repeat.
//
// # Sources
//
// Source is a pull based float32 producer. StreamSource adapts a Stream to
// it, converting every SampleFormat to [-1, 1] and applying the stream
// volume. Resampler and MonoMixer are Sources that wrap other Sources:
//
//	src, _ := audio.NewStreamSource(stream, 0)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := mono.ReadSamples(buf)
//	    // process buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// The Resampler uses cubic interpolation and a one-pole low-pass filter
// when downsampling. The MonoMixer averages channels.
//
// # Format Registry
//
// A Registry maps format names to Openers and sniffs leading bytes to pick
// one:
//
//	r := audio.NewRegistry()
//	r.Register("wav", isRIFF, music.Opener)
//	name, opener, ok := r.Detect(head)
package audio
