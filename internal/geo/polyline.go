// Package geo — polyline implements the signed-varint delta encoding used by
// road-routing APIs for route geometries (precision factor 1e5).
package geo

import (
	"strings"

	"swiftdrop/internal/types"
)

const polylinePrecision = 1e5

// DecodePolyline reconstructs a coordinate sequence from an encoded polyline.
// Each coordinate is the running sum of signed deltas decoded five bits at a
// time with a continuation bit, divided by the precision factor. Malformed
// trailing data yields the points decoded so far.
func DecodePolyline(s string) []types.Point {
	var points []types.Point
	var lat, lng int64
	i := 0
	for i < len(s) {
		dLat, n := decodeChunk(s, i)
		if n == 0 {
			break
		}
		i += n
		dLng, n := decodeChunk(s, i)
		if n == 0 {
			break
		}
		i += n
		lat += dLat
		lng += dLng
		points = append(points, types.Point{
			Lat: float64(lat) / polylinePrecision,
			Lng: float64(lng) / polylinePrecision,
		})
	}
	return points
}

// EncodePolyline is the inverse of DecodePolyline. Coordinates are quantized
// to the precision factor, so a decode/encode round trip is exact to 1e-5.
func EncodePolyline(points []types.Point) string {
	var b strings.Builder
	var prevLat, prevLng int64
	for _, p := range points {
		lat := quantize(p.Lat)
		lng := quantize(p.Lng)
		encodeValue(&b, lat-prevLat)
		encodeValue(&b, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return b.String()
}

// decodeChunk reads one zigzag-encoded signed value starting at offset i and
// returns the value plus the number of bytes consumed (0 on truncated input).
func decodeChunk(s string, i int) (int64, int) {
	var result int64
	var shift uint
	n := 0
	for {
		if i+n >= len(s) {
			return 0, 0
		}
		c := int64(s[i+n]) - 63
		n++
		result |= (c & 0x1f) << shift
		shift += 5
		if c < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), n
	}
	return result >> 1, n
}

func encodeValue(b *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	b.WriteByte(byte(u) + 63)
}

func quantize(deg float64) int64 {
	if deg < 0 {
		return int64(deg*polylinePrecision - 0.5)
	}
	return int64(deg*polylinePrecision + 0.5)
}
