// SPDX-License-Identifier: EPL-2.0

// Package pcmstream opens audio files as pull based PCM streams.
//
// WAVE and AIFF files are played by package music, which honours the loop
// points stored in the file. MP3 and Ogg Vorbis files are played by the
// formats/mp3 and formats/vorbis backends. Open picks one from the first
// bytes of the input:
//
//	f, _ := os.Open("theme.wav")
//	stream, err := pcmstream.Open(f)
//	if err != nil {
//		return err
//	}
//	defer stream.Close()
//
//	if err := stream.Play(1); err != nil {
//		return err
//	}
//
//	for {
//		chunk, done, err := stream.GetChunk(4096)
//		if err != nil {
//			return err
//		}
//		if done {
//			break
//		}
//		// chunk holds PCM laid out as stream.Spec() describes.
//	}
//
// # Rendering
//
// Render plays a stream to the end and returns mono 16-bit samples at a
// chosen rate, going through audio.StreamSource, audio.Resampler and
// audio.MonoMixer:
//
//	samples, err := pcmstream.Render(stream, 2, 8000)
//	if err != nil {
//		return err
//	}
//	wav.WriteWAV16(out, 8000, samples)
//
// For more control, build the pipeline from the audio subpackage directly.
package pcmstream
