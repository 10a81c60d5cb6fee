package presence

import (
	"context"
	"log/slog"
	"time"

	"swiftdrop/internal/ingest"
	"swiftdrop/internal/types"
)

const (
	defaultRadiusKm = 5.0
	defaultLimit    = 20
)

// GeoIndex is the presence persistence surface: a geo set of online drivers
// plus each driver's saved availability preference.
type GeoIndex interface {
	Upsert(ctx context.Context, ping DriverPing) error
	Remove(ctx context.Context, driverID types.ID) error
	Nearby(ctx context.Context, at types.Point, radiusKm float64, limit int) ([]NearbyDriver, error)
	SavePreference(ctx context.Context, driverID types.ID, online bool) error
	LoadPreference(ctx context.Context, driverID types.ID) (bool, error)
}

// ProfileStore is the slice of the profile store presence writes through to.
type ProfileStore interface {
	SetOnline(ctx context.Context, id types.ID, online bool) error
	SetLocation(ctx context.Context, id types.ID, pos types.Point) error
}

// Publisher emits location pings for downstream consumers. Optional.
type Publisher interface {
	PublishLocation(ev ingest.LocationEvent) error
}

type Service struct {
	index     GeoIndex
	profiles  ProfileStore
	publisher Publisher
	log       *slog.Logger
}

func NewService(index GeoIndex, profiles ProfileStore, publisher Publisher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{index: index, profiles: profiles, publisher: publisher, log: log}
}

// SetOnline flips the driver's availability. Going offline drops the driver
// from the geo index so matching never offers work to someone who has
// signed off. The choice is also saved as the driver's preference.
func (s *Service) SetOnline(ctx context.Context, driverID types.ID, online bool) error {
	if err := s.profiles.SetOnline(ctx, driverID, online); err != nil {
		return err
	}
	if err := s.index.SavePreference(ctx, driverID, online); err != nil {
		s.log.Warn("saving availability preference failed", "driver_id", driverID, "error", err)
	}
	if !online {
		if err := s.index.Remove(ctx, driverID); err != nil {
			s.log.Warn("removing driver from geo index failed", "driver_id", driverID, "error", err)
		}
	}
	return nil
}

// Resume restores the driver's saved availability on app start and reports
// the restored state. A driver with no saved preference stays offline.
func (s *Service) Resume(ctx context.Context, driverID types.ID) (bool, error) {
	online, err := s.index.LoadPreference(ctx, driverID)
	if err != nil {
		return false, err
	}
	if online {
		if err := s.profiles.SetOnline(ctx, driverID, true); err != nil {
			return false, err
		}
	}
	return online, nil
}

// UpdateLocation records a position report on the profile row and in the geo
// index, then publishes it best-effort.
func (s *Service) UpdateLocation(ctx context.Context, ping DriverPing) error {
	if ping.At.IsZero() {
		ping.At = time.Now().UTC()
	}
	if err := s.profiles.SetLocation(ctx, ping.DriverID, ping.Location); err != nil {
		return err
	}
	if err := s.index.Upsert(ctx, ping); err != nil {
		return err
	}
	if s.publisher != nil {
		ev := ingest.LocationEvent{DriverID: ping.DriverID, Lat: ping.Location.Lat, Lng: ping.Location.Lng, At: ping.At}
		if err := s.publisher.PublishLocation(ev); err != nil {
			s.log.Warn("publishing location ping failed", "driver_id", ping.DriverID, "error", err)
		}
	}
	return nil
}

// Nearby lists online drivers around a point, closest first.
func (s *Service) Nearby(ctx context.Context, at types.Point, radiusKm float64, limit int) ([]NearbyDriver, error) {
	if radiusKm <= 0 {
		radiusKm = defaultRadiusKm
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.index.Nearby(ctx, at, radiusKm, limit)
}
