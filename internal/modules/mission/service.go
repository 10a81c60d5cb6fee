// README: Mission service implements the order lifecycle state machine.
package mission

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"swiftdrop/internal/geo"
	"swiftdrop/internal/maps"
	"swiftdrop/internal/modules/pricing"
	"swiftdrop/internal/observability"
	"swiftdrop/internal/types"
)

var (
	ErrNotFound     = errors.New("mission not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("mission state conflict")
	ErrForbidden    = errors.New("actor may not perform this transition")
	ErrBadRequest   = errors.New("bad request")
	ErrAlreadyRated = errors.New("mission already rated")
)

// Store is the persistence surface the lifecycle needs. The guarded mutators
// (UpdateStatus, Delete) must apply their from-status condition atomically so
// a status can never move backward, whoever races whom.
type Store interface {
	Insert(ctx context.Context, m *Mission) error
	Get(ctx context.Context, id types.ID) (*Mission, error)
	ListAll(ctx context.Context) ([]Mission, error)
	ListByCustomer(ctx context.Context, customerID types.ID) ([]Mission, error)
	ListOpen(ctx context.Context) ([]Mission, error)
	ListCompletedByDriver(ctx context.Context, driverID types.ID) ([]Mission, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, driverID *types.ID) (bool, error)
	SetRating(ctx context.Context, id types.ID, rating int) (bool, error)
	Delete(ctx context.Context, id types.ID, from Status) (bool, error)
	SumCompleted(ctx context.Context) (int64, error)
}

// Router resolves a driving route between two points. Optional: when absent
// or failing, distances fall back to the great-circle estimate.
type Router interface {
	Route(ctx context.Context, origin, dest types.Point) (maps.Route, error)
}

type Service struct {
	store  Store
	router Router
	log    *slog.Logger
}

func NewService(store Store, router Router, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, router: router, log: log}
}

type CreateCommand struct {
	CustomerID     types.ID
	PickupAddress  string
	Pickup         types.Point
	DropoffAddress string
	Dropoff        types.Point
	Vehicle        pricing.Vehicle
}

type AcceptCommand struct {
	MissionID types.ID
	DriverID  types.ID
}

type ArriveCommand struct {
	MissionID types.ID
	DriverID  types.ID
}

type CompleteCommand struct {
	MissionID types.ID
	DriverID  types.ID
}

type CancelCommand struct {
	MissionID  types.ID
	CustomerID types.ID
}

type RateCommand struct {
	MissionID  types.ID
	CustomerID types.ID
	Rating     int
}

// Create inserts a pending mission for the acting customer: distance from the
// routing client (haversine fallback on failure), fare from the tariff, and a
// fresh 4-digit delivery PIN. Routing failure is a degraded enrichment, never
// an error surfaced to the caller.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Mission, error) {
	if cmd.CustomerID == "" || cmd.PickupAddress == "" || cmd.DropoffAddress == "" {
		return nil, ErrBadRequest
	}
	if !cmd.Vehicle.Valid() {
		return nil, ErrBadRequest
	}

	distanceKm := s.resolveDistance(ctx, cmd.Pickup, cmd.Dropoff)
	price, err := pricing.Quote(distanceKm, cmd.Vehicle)
	if err != nil {
		return nil, ErrBadRequest
	}

	m := &Mission{
		ID:             types.ID(uuid.NewString()),
		CustomerID:     cmd.CustomerID,
		Status:         StatusPending,
		PickupAddress:  cmd.PickupAddress,
		Pickup:         cmd.Pickup,
		DropoffAddress: cmd.DropoffAddress,
		Dropoff:        cmd.Dropoff,
		DistanceKm:     distanceKm,
		Vehicle:        cmd.Vehicle,
		Price:          price,
		DeliveryPIN:    newPIN(),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, err
	}
	observability.MissionsCreated.Inc()
	return m, nil
}

// Accept moves a pending mission to in_progress and assigns the acting
// driver. The update is guarded on the pending status, so when two drivers
// race inside the same polling window the first write wins and the second
// receives ErrConflict.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	m, err := s.store.Get(ctx, cmd.MissionID)
	if err != nil {
		return err
	}
	if !CanTransition(m.Status, StatusInProgress) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, m.ID, StatusPending, StatusInProgress, &cmd.DriverID)
	if err != nil {
		return err
	}
	if !ok {
		observability.AcceptConflicts.Inc()
		return ErrConflict
	}
	observability.MissionsAccepted.Inc()
	return nil
}

// Arrive may only be invoked by the assigned driver.
func (s *Service) Arrive(ctx context.Context, cmd ArriveCommand) error {
	return s.driverTransition(ctx, cmd.MissionID, cmd.DriverID, StatusInProgress, StatusArrived)
}

// Complete may only be invoked by the assigned driver. A completed mission
// counts toward that driver's earnings and platform revenue; both aggregates
// are computed by summing at read time, not maintained incrementally.
func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	if err := s.driverTransition(ctx, cmd.MissionID, cmd.DriverID, StatusArrived, StatusCompleted); err != nil {
		return err
	}
	observability.MissionsCompleted.Inc()
	return nil
}

func (s *Service) driverTransition(ctx context.Context, id, driverID types.ID, from, to Status) error {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.DriverID == nil || *m.DriverID != driverID {
		return ErrForbidden
	}
	if !CanTransition(m.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, m.ID, from, to, m.DriverID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

// Cancel removes a pending mission. Only the creating customer may cancel,
// and only while no driver has accepted; the record is deleted, not
// soft-deleted.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	m, err := s.store.Get(ctx, cmd.MissionID)
	if err != nil {
		return err
	}
	if m.CustomerID != cmd.CustomerID {
		return ErrForbidden
	}
	if m.Status != StatusPending {
		return ErrInvalidState
	}
	ok, err := s.store.Delete(ctx, m.ID, StatusPending)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	observability.MissionsCancelled.Inc()
	return nil
}

// Rate records the creator's 1-5 rating on a completed mission, once.
func (s *Service) Rate(ctx context.Context, cmd RateCommand) error {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return ErrBadRequest
	}
	m, err := s.store.Get(ctx, cmd.MissionID)
	if err != nil {
		return err
	}
	if m.CustomerID != cmd.CustomerID {
		return ErrForbidden
	}
	if m.Status != StatusCompleted {
		return ErrInvalidState
	}
	if m.Rating != nil {
		return ErrAlreadyRated
	}
	ok, err := s.store.SetRating(ctx, m.ID, cmd.Rating)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyRated
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Mission, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Mission, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID types.ID) ([]Mission, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

func (s *Service) ListOpen(ctx context.Context) ([]Mission, error) {
	return s.store.ListOpen(ctx)
}

// EarningsReport summarizes a driver's completed work. Totals are recomputed
// from the completed missions on every call.
type EarningsReport struct {
	Total         types.Money `json:"total"`
	Jobs          int         `json:"jobs"`
	AverageRating float64     `json:"average_rating"`
	// Weekly holds minor-unit totals for the current ISO week, Monday first.
	Weekly [7]int64 `json:"weekly"`
}

func (s *Service) Earnings(ctx context.Context, driverID types.ID) (EarningsReport, error) {
	jobs, err := s.store.ListCompletedByDriver(ctx, driverID)
	if err != nil {
		return EarningsReport{}, err
	}

	report := EarningsReport{
		Total:         types.Money{Currency: pricing.Currency},
		Jobs:          len(jobs),
		AverageRating: 5.0,
	}

	weekStart := startOfWeek(time.Now().UTC())
	ratingSum := 0
	for _, j := range jobs {
		report.Total.Amount += j.Price.Amount
		if j.Rating != nil {
			ratingSum += *j.Rating
		} else {
			ratingSum += 5 // unrated jobs count as 5, matching the driver stats view
		}
		if day := int(j.CreatedAt.Sub(weekStart).Hours() / 24); day >= 0 && day < 7 {
			report.Weekly[day] += j.Price.Amount
		}
	}
	if len(jobs) > 0 {
		report.AverageRating = float64(ratingSum) / float64(len(jobs))
	}
	return report, nil
}

// PlatformRevenue sums the price of every completed mission.
func (s *Service) PlatformRevenue(ctx context.Context) (types.Money, error) {
	total, err := s.store.SumCompleted(ctx)
	if err != nil {
		return types.Money{}, err
	}
	return types.Money{Amount: total, Currency: pricing.Currency}, nil
}

func (s *Service) resolveDistance(ctx context.Context, origin, dest types.Point) float64 {
	if s.router != nil {
		route, err := s.router.Route(ctx, origin, dest)
		if err == nil && route.DistanceKm > 0 {
			return route.DistanceKm
		}
		if err != nil {
			s.log.Warn("routing unavailable, falling back to haversine", "error", err)
		}
	}
	return geo.TruncateToTenth(geo.HaversineKm(origin.Lat, origin.Lng, dest.Lat, dest.Lng))
}

// newPIN returns a 4-digit delivery confirmation code in [1000, 9999].
func newPIN() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// a time-derived code keeps order placement working.
		n = big.NewInt(time.Now().UnixNano() % 9000)
	}
	return strconv.FormatInt(1000+n.Int64(), 10)
}

func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the trailing week, Monday-first
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}
