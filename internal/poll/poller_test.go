package poll

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/types"
)

func TestPollerRunsImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int64
	p := New(20*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d polls before deadline", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	var calls atomic.Int64
	p := New(10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	settled := calls.Load()
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != settled {
		t.Errorf("polls continued after cancel: %d -> %d", settled, calls.Load())
	}
}

// A poll that outlives the interval must not stack up concurrent instances.
func TestPollerSingleFlight(t *testing.T) {
	var inFlight, maxInFlight, calls atomic.Int64
	p := New(5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		cur := inFlight.Add(1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done
	time.Sleep(50 * time.Millisecond)

	if maxInFlight.Load() != 1 {
		t.Errorf("max concurrent polls = %d, want 1", maxInFlight.Load())
	}
	if calls.Load() == 0 {
		t.Error("no polls ran")
	}
}

func TestRefreshKicksAnExtraPoll(t *testing.T) {
	var calls atomic.Int64
	p := New(time.Hour, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	deadline := time.After(time.Second)
	for calls.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("initial poll never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	p.Refresh()
	deadline = time.After(time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("Refresh did not trigger a poll")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// --- synchronizer views ---

type fakeMissions struct {
	mu       sync.Mutex
	missions []mission.Mission
	err      error
}

func (f *fakeMissions) ListAll(context.Context) ([]mission.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mission.Mission(nil), f.missions...), f.err
}

func (f *fakeMissions) ListByCustomer(_ context.Context, id types.ID) ([]mission.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []mission.Mission
	for _, m := range f.missions {
		if m.CustomerID == id {
			out = append(out, m)
		}
	}
	return out, f.err
}

func (f *fakeMissions) ListOpen(context.Context) ([]mission.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []mission.Mission
	for _, m := range f.missions {
		if m.Status != mission.StatusCompleted {
			out = append(out, m)
		}
	}
	return out, f.err
}

func (f *fakeMissions) Earnings(context.Context, types.ID) (mission.EarningsReport, error) {
	return mission.EarningsReport{AverageRating: 5.0}, f.err
}

func (f *fakeMissions) PlatformRevenue(context.Context) (types.Money, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, m := range f.missions {
		if m.Status == mission.StatusCompleted {
			total += m.Price.Amount
		}
	}
	return types.Money{Amount: total, Currency: "NGN"}, f.err
}

type fakeProfiles struct {
	profiles map[types.ID]profile.Profile
}

func (f *fakeProfiles) Get(_ context.Context, id types.ID) (*profile.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, errors.New("no such profile")
	}
	return &p, nil
}

func (f *fakeProfiles) ListByRole(_ context.Context, role profile.Role) ([]profile.Profile, error) {
	var out []profile.Profile
	for _, p := range f.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

func money(amount int64) types.Money { return types.Money{Amount: amount, Currency: "NGN"} }

func TestAdminView(t *testing.T) {
	drv := types.ID("drv1")
	missions := &fakeMissions{missions: []mission.Mission{
		{ID: "m1", CustomerID: "c1", Status: mission.StatusPending, Price: money(1300)},
		{ID: "m2", CustomerID: "c1", DriverID: &drv, Status: mission.StatusInProgress, Price: money(1950)},
		{ID: "m3", CustomerID: "c2", DriverID: &drv, Status: mission.StatusArrived, Price: money(3250)},
		{ID: "m4", CustomerID: "c2", DriverID: &drv, Status: mission.StatusCompleted, Price: money(2000)},
	}}
	profiles := &fakeProfiles{profiles: map[types.ID]profile.Profile{
		"drv1": {ID: "drv1", Role: profile.RoleDriver, FullName: "Chidi Okafor", IsOnline: true},
		"c1":   {ID: "c1", Role: profile.RoleCustomer},
	}}
	s := NewSynchronizer(missions, profiles, time.Hour, nil)

	snap, err := s.AdminView(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Missions) != 4 {
		t.Errorf("missions = %d, want 4", len(snap.Missions))
	}
	if snap.Revenue.Amount != 2000 {
		t.Errorf("revenue = %d, want 2000", snap.Revenue.Amount)
	}
	if snap.Active != 2 {
		t.Errorf("active = %d, want 2 (pending + in_progress)", snap.Active)
	}
	if len(snap.Fleet) != 1 || snap.Fleet[0].ID != "drv1" {
		t.Errorf("fleet = %+v", snap.Fleet)
	}

	// second call is served from cache
	again, err := s.AdminView(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again != snap {
		t.Error("second AdminView rebuilt instead of using the cache")
	}
}

func TestCustomerView(t *testing.T) {
	drv := types.ID("drv1")
	ghost := types.ID("gone")
	missions := &fakeMissions{missions: []mission.Mission{
		{ID: "m1", CustomerID: "c1", Status: mission.StatusPending},
		{ID: "m2", CustomerID: "c1", DriverID: &drv, Status: mission.StatusInProgress},
		{ID: "m3", CustomerID: "c1", DriverID: &ghost, Status: mission.StatusInProgress},
		{ID: "m4", CustomerID: "c2", Status: mission.StatusPending},
	}}
	profiles := &fakeProfiles{profiles: map[types.ID]profile.Profile{
		"drv1": {ID: "drv1", Role: profile.RoleDriver, FullName: "Chidi Okafor", PhoneNumber: "+2348031234567"},
	}}
	s := NewSynchronizer(missions, profiles, time.Hour, nil)

	snap, err := s.CustomerView(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Missions) != 3 {
		t.Errorf("missions = %d, want 3 (own only)", len(snap.Missions))
	}
	d, ok := snap.Drivers["drv1"]
	if !ok || d.PhoneNumber != "+2348031234567" {
		t.Errorf("drivers = %+v", snap.Drivers)
	}
	// an unresolvable driver profile degrades to a missing entry
	if _, ok := snap.Drivers["gone"]; ok {
		t.Error("ghost driver resolved")
	}
}

func TestDriverView(t *testing.T) {
	missions := &fakeMissions{missions: []mission.Mission{
		{ID: "m1", CustomerID: "c1", Status: mission.StatusPending},
		{ID: "m2", CustomerID: "c2", Status: mission.StatusCompleted},
	}}
	s := NewSynchronizer(missions, &fakeProfiles{}, time.Hour, nil)

	snap, err := s.DriverView(context.Background(), "drv1")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Open) != 1 || snap.Open[0].ID != "m1" {
		t.Errorf("open = %+v", snap.Open)
	}
	if snap.Earnings.AverageRating != 5.0 {
		t.Errorf("earnings = %+v", snap.Earnings)
	}
}
