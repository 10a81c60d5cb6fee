package geo

import (
	"math"
	"testing"

	"swiftdrop/internal/types"
)

// Reference vector from the polyline format documentation.
func TestDecodePolyline_Reference(t *testing.T) {
	got := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	want := []types.Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].Lat-want[i].Lat) > 1e-5 || math.Abs(got[i].Lng-want[i].Lng) > 1e-5 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEncodePolyline_Reference(t *testing.T) {
	got := EncodePolyline([]types.Point{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	})
	if got != "_p~iF~ps|U_ulLnnqC_mqNvxq`@" {
		t.Errorf("EncodePolyline = %q", got)
	}
}

// Round-trip law: decode(encode(pts)) reproduces pts within the 1e-5
// precision factor, and encode(decode(s)) reproduces s exactly.
func TestPolyline_RoundTrip(t *testing.T) {
	routes := [][]types.Point{
		{{Lat: 4.8156, Lng: 7.0498}},
		{{Lat: 4.8156, Lng: 7.0498}, {Lat: 4.8243, Lng: 7.0336}, {Lat: 4.8501, Lng: 7.0123}},
		{{Lat: -1.29207, Lng: 36.82195}, {Lat: -1.30000, Lng: 36.80000}},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0}, {Lat: 0.00001, Lng: -0.00001}},
	}
	for _, route := range routes {
		encoded := EncodePolyline(route)
		decoded := DecodePolyline(encoded)
		if len(decoded) != len(route) {
			t.Fatalf("round trip changed length: %d -> %d", len(route), len(decoded))
		}
		for i := range route {
			if math.Abs(decoded[i].Lat-route[i].Lat) > 1e-5 || math.Abs(decoded[i].Lng-route[i].Lng) > 1e-5 {
				t.Errorf("round trip point %d = %+v, want %+v", i, decoded[i], route[i])
			}
		}
		if re := EncodePolyline(decoded); re != encoded {
			t.Errorf("re-encode = %q, want %q", re, encoded)
		}
	}
}

func TestDecodePolyline_Degenerate(t *testing.T) {
	if pts := DecodePolyline(""); pts != nil {
		t.Errorf("empty string decoded to %v", pts)
	}
	// Truncated trailing chunk: keep what decoded cleanly, drop the rest.
	full := EncodePolyline([]types.Point{{Lat: 38.5, Lng: -120.2}, {Lat: 40.7, Lng: -120.95}})
	if pts := DecodePolyline(full[:len(full)-1]); len(pts) != 1 {
		t.Errorf("truncated input decoded to %d points, want 1", len(pts))
	}
}
