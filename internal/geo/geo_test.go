package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 4.8156, lng1: 7.0498,
			lat2: 4.8156, lng2: 7.0498,
			wantKm:    0,
			tolerance: 0.0001,
		},
		{
			name: "Port Harcourt to Aba (~60km)",
			lat1: 4.8156, lng1: 7.0498,
			lat2: 5.1216, lng2: 7.3733,
			wantKm:    49,
			tolerance: 5,
		},
		{
			name: "Lagos to Abuja (~536km)",
			lat1: 6.5244, lng1: 3.3792,
			lat2: 9.0765, lng2: 7.3986,
			wantKm:    536,
			tolerance: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{4.8156, 7.0498, 6.5244, 3.3792},
		{0, 0, 10, 10},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, p := range pairs {
		ab := HaversineKm(p[0], p[1], p[2], p[3])
		ba := HaversineKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("HaversineKm not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestTruncateToTenth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{3.27, 3.2},
		{3.21, 3.2},
		{0.99, 0.9},
		{0, 0},
		{12.0, 12.0},
	}
	for _, tt := range tests {
		if got := TruncateToTenth(tt.in); got != tt.want {
			t.Errorf("TruncateToTenth(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
