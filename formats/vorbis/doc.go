// SPDX-License-Identifier: EPL-2.0

// Package vorbis plays Ogg Vorbis files as an audio.Stream.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Samples come out as
// interleaved little-endian float32 (F32LSB) in [-1, 1]. Seek, Tell and
// Length count frames through the decoder, so they need a seekable source.
//
// TITLE, ARTIST, ALBUM and COPYRIGHT comments fill the stream tags.
package vorbis
