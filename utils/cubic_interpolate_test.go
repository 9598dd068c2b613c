// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start is y1", 0, 1, 2, 3, 0, 1},
		{"end is y2", 0, 1, 2, 3, 1, 2},
		{"linear midpoint", 0, 1, 2, 3, 0.5, 1.5},
		{"linear quarter", 1, 2, 3, 4, 0.25, 2.25},
		{"constant", 0.5, 0.5, 0.5, 0.5, 0.7, 0.5},
		{"symmetric peak", 0, 1, 1, 0, 0.5, 1.125},
		{"negative", -1, -0.5, 0.5, 1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	for i := range 50 {
		y := [4]float32{float32(i), float32(i*i) / 7, float32(-i), 3}

		if got := CubicInterpolate(y[0], y[1], y[2], y[3], 0); got != y[1] {
			t.Errorf("x=0: got %v, want %v", got, y[1])
		}

		if got := CubicInterpolate(y[0], y[1], y[2], y[3], 1); math.Abs(float64(got-y[2])) > 1e-3 {
			t.Errorf("x=1: got %v, want %v", got, y[2])
		}
	}
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})

	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	out := make([]float32, 8000)
	b.ReportAllocs()

	for b.Loop() {
		for j := range out {
			out[j] = CubicInterpolate(0.1, 0.5, 0.3, -0.2, float32(j%100)/100)
		}
	}
}
