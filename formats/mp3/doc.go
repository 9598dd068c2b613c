// SPDX-License-Identifier: EPL-2.0

// Package mp3 plays MP3 files as an audio.Stream.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always yields
// 16-bit little-endian stereo, so the stream spec is S16LSB with two
// channels whatever the source layout. Seeking and Length need an
// io.ReadSeeker source.
//
// Title, artist, album and copyright come from a leading ID3v2 tag; files
// without one fall back to a trailing ID3v1 tag.
//
// MP3 has no loop points. Play takes an overall repeat count like the
// other streams, and GetChunk restarts from the first frame at the end of
// each pass.
package mp3
