// SPDX-License-Identifier: EPL-2.0

// Package metadata extracts text tags embedded in audio containers.
//
// Tags is a fixed key/value store for the four kinds a stream exposes:
// title, artist, album and copyright. ParseInfoList reads RIFF LIST/INFO
// payloads; ParseID3 hands embedded ID3v2 blocks to an ID3Reader, by
// default one backed by github.com/dhowden/tag.
//
//	var tags metadata.Tags
//	metadata.ParseInfoList(listPayload, &tags)
//	if title, ok := tags.Get(metadata.Title); ok {
//	    fmt.Println(title)
//	}
package metadata
