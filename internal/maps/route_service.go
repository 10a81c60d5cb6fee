// Package maps wraps the external address-search and road-routing APIs.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"swiftdrop/internal/geo"
	"swiftdrop/internal/types"
)

// Route is a resolved driving route between two points.
type Route struct {
	// Path is the decoded route geometry; empty when only a distance
	// estimate was available.
	Path       []types.Point
	DistanceKm float64
}

// RouteService performs route lookups against an OSRM-compatible HTTP server.
type RouteService struct {
	Endpoint string
	Client   *http.Client
}

func NewRouteService(endpoint string) *RouteService {
	return &RouteService{Endpoint: endpoint, Client: &http.Client{Timeout: 5 * time.Second}}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// Route queries /route/v1/driving between the two points and returns the
// decoded polyline plus the total driving distance in kilometres.
func (s *RouteService) Route(ctx context.Context, origin, dest types.Point) (Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=polyline",
		s.Endpoint, origin.Lng, origin.Lat, dest.Lng, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Route{}, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return Route{}, err
	}
	defer resp.Body.Close()

	var out osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Route{}, err
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return Route{}, fmt.Errorf("routing: no route (code %q)", out.Code)
	}

	r := out.Routes[0]
	return Route{
		Path:       geo.DecodePolyline(r.Geometry),
		DistanceKm: r.Distance / 1000,
	}, nil
}
