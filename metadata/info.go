// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"bytes"
	"encoding/binary"
)

// infoKinds maps RIFF INFO sub-record ids to tag kinds.
var infoKinds = map[string]Kind{
	"INAM": Title,
	"IART": Artist,
	"IALB": Album,
	"IPRD": Album,
	"ICOP": Copyright,
	"BCPR": Copyright,
}

// ParseInfoList reads the payload of a RIFF LIST chunk into tags. Only
// lists of type INFO are processed; it reports whether data was one.
//
// The payload is scanned byte by byte for known sub-record ids. A record
// whose declared length runs past the payload is dropped and scanning
// resumes at its length field. Values end at the first NUL.
func ParseInfoList(data []byte, tags *Tags) bool {
	if len(data) < 4 || string(data[:4]) != "INFO" {
		return false
	}

	for i := 4; i < len(data)-4; {
		kind, ok := infoKinds[string(data[i:i+4])]
		if !ok {
			i++
			continue
		}

		i += 4
		if i+4 > len(data) {
			break
		}

		size := int(binary.LittleEndian.Uint32(data[i : i+4]))
		if size < 0 || size > len(data)-(i+4) {
			continue
		}

		i += 4
		value := data[i : i+size]
		if end := bytes.IndexByte(value, 0); end >= 0 {
			value = value[:end]
		}

		tags.Set(kind, string(value))
		i += size
	}

	return true
}
