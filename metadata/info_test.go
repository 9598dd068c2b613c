// SPDX-License-Identifier: EPL-2.0

package metadata_test

import (
	"encoding/binary"
	"testing"

	"github.com/ik5/pcmstream/internal/audiotest"
	"github.com/ik5/pcmstream/metadata"
)

func record(id string, size uint32, value string) []byte {
	b := []byte(id)
	b = binary.LittleEndian.AppendUint32(b, size)

	return append(b, value...)
}

func TestParseInfoList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want map[metadata.Kind]string
	}{
		{
			name: "all kinds",
			data: audiotest.InfoPayload(
				audiotest.InfoField{ID: "INAM", Value: "Blue Monk"},
				audiotest.InfoField{ID: "IART", Value: "Thelonious Monk"},
				audiotest.InfoField{ID: "IALB", Value: "Monk's Dream"},
				audiotest.InfoField{ID: "ICOP", Value: "1963 Columbia"},
			),
			want: map[metadata.Kind]string{
				metadata.Title:     "Blue Monk",
				metadata.Artist:    "Thelonious Monk",
				metadata.Album:     "Monk's Dream",
				metadata.Copyright: "1963 Columbia",
			},
		},
		{
			name: "alternate ids",
			data: audiotest.InfoPayload(
				audiotest.InfoField{ID: "IPRD", Value: "Product"},
				audiotest.InfoField{ID: "BCPR", Value: "Broadcast"},
			),
			want: map[metadata.Kind]string{
				metadata.Album:     "Product",
				metadata.Copyright: "Broadcast",
			},
		},
		{
			name: "unknown records skipped",
			data: audiotest.InfoPayload(
				audiotest.InfoField{ID: "ICMT", Value: "comment"},
				audiotest.InfoField{ID: "ISFT", Value: "Lavf"},
				audiotest.InfoField{ID: "INAM", Value: "After"},
			),
			want: map[metadata.Kind]string{metadata.Title: "After"},
		},
		{
			name: "value cut at NUL",
			data: append([]byte("INFO"), record("INAM", 8, "abc\x00junk")...),
			want: map[metadata.Kind]string{metadata.Title: "abc"},
		},
		{
			name: "value without NUL",
			data: append([]byte("INFO"), record("IART", 3, "Sun")...),
			want: map[metadata.Kind]string{metadata.Artist: "Sun"},
		},
		{
			name: "oversize length leaves title unset",
			data: append([]byte("INFO"), record("INAM", 100, "short")...),
			want: map[metadata.Kind]string{},
		},
		{
			name: "later record wins",
			data: audiotest.InfoPayload(
				audiotest.InfoField{ID: "INAM", Value: "first"},
				audiotest.InfoField{ID: "INAM", Value: "second"},
			),
			want: map[metadata.Kind]string{metadata.Title: "second"},
		},
		{
			name: "id without length",
			data: []byte("INFOxxINAM"),
			want: map[metadata.Kind]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var tags metadata.Tags
			if !metadata.ParseInfoList(tt.data, &tags) {
				t.Fatal("ParseInfoList() = false for an INFO list")
			}

			if tags.Len() != len(tt.want) {
				t.Errorf("%d tags set, want %d", tags.Len(), len(tt.want))
			}

			for kind, want := range tt.want {
				if got, ok := tags.Get(kind); !ok || got != want {
					t.Errorf("tag %s = %q (%v), want %q", kind, got, ok, want)
				}
			}
		})
	}
}

func TestParseInfoList_NotInfo(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("INF"), []byte("adtlINAM\x04\x00\x00\x00abc\x00")} {
		var tags metadata.Tags
		if metadata.ParseInfoList(data, &tags) {
			t.Errorf("ParseInfoList(%q) = true", data)
		}
		if tags.Len() != 0 {
			t.Errorf("ParseInfoList(%q) set tags", data)
		}
	}
}

func BenchmarkParseInfoList(b *testing.B) {
	data := audiotest.InfoPayload(
		audiotest.InfoField{ID: "ISFT", Value: "encoder"},
		audiotest.InfoField{ID: "INAM", Value: "Title"},
		audiotest.InfoField{ID: "IART", Value: "Artist"},
	)
	b.ReportAllocs()

	for b.Loop() {
		var tags metadata.Tags
		metadata.ParseInfoList(data, &tags)
	}
}
