package maps

import (
	"context"
	"log/slog"

	"swiftdrop/internal/types"
)

// Candidate is one ranked address-search result.
type Candidate struct {
	Label    string      `json:"label"`
	Location types.Point `json:"location"`
}

// minQueryLen avoids spurious backend calls while the user is still typing.
const minQueryLen = 3

// maxCandidates caps how many ranked results a search returns.
const maxCandidates = 5

// Geocoder is a forward address-search backend.
type Geocoder interface {
	Search(ctx context.Context, query, countryCode string) ([]Candidate, error)
}

// SearchService wraps a Geocoder with the service's failure policy: short
// queries and backend failures both yield an empty candidate list, never an
// error — address search is an optional enrichment.
type SearchService struct {
	backend Geocoder
	log     *slog.Logger
}

func NewSearchService(backend Geocoder, log *slog.Logger) *SearchService {
	if log == nil {
		log = slog.Default()
	}
	return &SearchService{backend: backend, log: log}
}

func (s *SearchService) Search(ctx context.Context, query, countryCode string) []Candidate {
	if len(query) < minQueryLen || s.backend == nil {
		return nil
	}
	candidates, err := s.backend.Search(ctx, query, countryCode)
	if err != nil {
		s.log.Warn("address search unavailable", "error", err)
		return nil
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}
