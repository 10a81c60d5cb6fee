package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/observability"
	"swiftdrop/internal/types"
)

// MissionSource is the slice of the mission service the views read from.
type MissionSource interface {
	ListAll(ctx context.Context) ([]mission.Mission, error)
	ListByCustomer(ctx context.Context, customerID types.ID) ([]mission.Mission, error)
	ListOpen(ctx context.Context) ([]mission.Mission, error)
	Earnings(ctx context.Context, driverID types.ID) (mission.EarningsReport, error)
	PlatformRevenue(ctx context.Context) (types.Money, error)
}

// ProfileSource resolves contact info for drivers referenced by missions.
type ProfileSource interface {
	Get(ctx context.Context, id types.ID) (*profile.Profile, error)
	ListByRole(ctx context.Context, role profile.Role) ([]profile.Profile, error)
}

// CustomerSnapshot is what a customer's app renders on each poll: their own
// missions newest-first, plus contact info for every assigned driver.
type CustomerSnapshot struct {
	Missions []mission.Mission            `json:"missions"`
	Drivers  map[types.ID]profile.Profile `json:"drivers"`
	At       time.Time                    `json:"at"`
}

// DriverSnapshot carries the open work pool and the driver's own earnings.
type DriverSnapshot struct {
	Open     []mission.Mission      `json:"open"`
	Earnings mission.EarningsReport `json:"earnings"`
	At       time.Time              `json:"at"`
}

// AdminSnapshot is the ops overview: every mission, platform revenue, the
// count of missions still needing attention and the driver fleet.
type AdminSnapshot struct {
	Missions []mission.Mission `json:"missions"`
	Revenue  types.Money       `json:"revenue"`
	Active   int               `json:"active"`
	Fleet    []profile.Profile `json:"fleet"`
	At       time.Time         `json:"at"`
}

// Synchronizer assembles role snapshots on demand and keeps a cached admin
// snapshot refreshed in the background so the overview endpoint never fans
// out on the hot path.
type Synchronizer struct {
	missions MissionSource
	profiles ProfileSource
	log      *slog.Logger

	poller *Poller

	mu    sync.RWMutex
	admin *AdminSnapshot
}

func NewSynchronizer(missions MissionSource, profiles ProfileSource, interval time.Duration, log *slog.Logger) *Synchronizer {
	if log == nil {
		log = slog.Default()
	}
	s := &Synchronizer{missions: missions, profiles: profiles, log: log}
	s.poller = New(interval, s.refreshAdmin, log)
	return s
}

// Run drives the background admin refresh until ctx is cancelled.
func (s *Synchronizer) Run(ctx context.Context) {
	s.poller.Run(ctx)
}

// Refresh asks for an out-of-band admin refresh after a mutation.
func (s *Synchronizer) Refresh() {
	s.poller.Refresh()
}

// CustomerView is assembled fresh per request; customers only see their own
// missions, so there is nothing shareable to cache.
func (s *Synchronizer) CustomerView(ctx context.Context, customerID types.ID) (*CustomerSnapshot, error) {
	missions, err := s.missions.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	snap := &CustomerSnapshot{
		Missions: missions,
		Drivers:  map[types.ID]profile.Profile{},
		At:       time.Now().UTC(),
	}
	for _, m := range missions {
		if m.DriverID == nil {
			continue
		}
		if _, ok := snap.Drivers[*m.DriverID]; ok {
			continue
		}
		p, err := s.profiles.Get(ctx, *m.DriverID)
		if err != nil {
			// contact info is an enrichment; the mission list still renders
			s.log.Warn("resolving driver profile failed", "driver_id", *m.DriverID, "error", err)
			continue
		}
		snap.Drivers[*m.DriverID] = *p
	}
	return snap, nil
}

func (s *Synchronizer) DriverView(ctx context.Context, driverID types.ID) (*DriverSnapshot, error) {
	open, err := s.missions.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	earnings, err := s.missions.Earnings(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return &DriverSnapshot{Open: open, Earnings: earnings, At: time.Now().UTC()}, nil
}

// AdminView returns the cached snapshot when the background refresh has run,
// falling back to a synchronous build before the first cycle completes.
func (s *Synchronizer) AdminView(ctx context.Context) (*AdminSnapshot, error) {
	s.mu.RLock()
	cached := s.admin
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	if err := s.refreshAdmin(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin, nil
}

func (s *Synchronizer) refreshAdmin(ctx context.Context) error {
	missions, err := s.missions.ListAll(ctx)
	if err != nil {
		return err
	}
	revenue, err := s.missions.PlatformRevenue(ctx)
	if err != nil {
		return err
	}
	fleet, err := s.profiles.ListByRole(ctx, profile.RoleDriver)
	if err != nil {
		return err
	}

	active := 0
	for _, m := range missions {
		if m.Status == mission.StatusPending || m.Status == mission.StatusInProgress {
			active++
		}
	}

	snap := &AdminSnapshot{
		Missions: missions,
		Revenue:  revenue,
		Active:   active,
		Fleet:    fleet,
		At:       time.Now().UTC(),
	}

	s.mu.Lock()
	s.admin = snap
	s.mu.Unlock()

	observability.PlatformRevenue.Set(float64(revenue.Amount))
	observability.ActiveMissions.Set(float64(active))
	online := 0
	for _, p := range fleet {
		if p.IsOnline {
			online++
		}
	}
	observability.DriversOnline.Set(float64(online))
	return nil
}
