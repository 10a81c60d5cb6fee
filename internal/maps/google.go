package maps

import (
	"context"
	"fmt"
	"strings"

	gmaps "googlemaps.github.io/maps"

	"swiftdrop/internal/types"
)

// GoogleGeocoder is the alternative search backend, used when a Google Maps
// API key is configured.
type GoogleGeocoder struct {
	client *gmaps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Search(ctx context.Context, query, countryCode string) ([]Candidate, error) {
	req := &gmaps.GeocodingRequest{
		Address: query,
		Region:  strings.ToLower(countryCode),
	}
	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}

	out := make([]Candidate, 0, maxCandidates)
	for _, r := range results {
		out = append(out, Candidate{
			Label: r.FormattedAddress,
			Location: types.Point{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
		if len(out) >= maxCandidates {
			break
		}
	}
	return out, nil
}
