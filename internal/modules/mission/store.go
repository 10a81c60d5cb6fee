// README: Mission store backed by PostgreSQL.
package mission

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swiftdrop/internal/modules/pricing"
	"swiftdrop/internal/types"
)

const missionColumns = `
	id, customer_id, driver_id, status,
	pickup_address, pickup_lat, pickup_lng,
	dropoff_address, dropoff_lat, dropoff_lng,
	distance_km, vehicle, price, delivery_pin, rating, created_at`

type PGStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Insert(ctx context.Context, m *Mission) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO missions (
			id, customer_id, driver_id, status,
			pickup_address, pickup_lat, pickup_lng,
			dropoff_address, dropoff_lat, dropoff_lng,
			distance_km, vehicle, price, delivery_pin, rating, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			$11, $12, $13, $14, $15, $16
		)`,
		string(m.ID), string(m.CustomerID), idPtr(m.DriverID), string(m.Status),
		m.PickupAddress, m.Pickup.Lat, m.Pickup.Lng,
		m.DropoffAddress, m.Dropoff.Lat, m.Dropoff.Lng,
		m.DistanceKm, string(m.Vehicle), m.Price.Amount, m.DeliveryPIN, m.Rating, m.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Mission, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE id = $1`, string(id))
	m, err := scanMission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *PGStore) ListAll(ctx context.Context) ([]Mission, error) {
	return s.list(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY created_at DESC`)
}

func (s *PGStore) ListByCustomer(ctx context.Context, customerID types.ID) ([]Mission, error) {
	return s.list(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE customer_id = $1 ORDER BY created_at DESC`,
		string(customerID))
}

func (s *PGStore) ListOpen(ctx context.Context) ([]Mission, error) {
	return s.list(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE status <> 'completed' ORDER BY created_at DESC`)
}

func (s *PGStore) ListCompletedByDriver(ctx context.Context, driverID types.ID) ([]Mission, error) {
	return s.list(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE driver_id = $1 AND status = 'completed' ORDER BY created_at DESC`,
		string(driverID))
}

// UpdateStatus applies a guarded forward transition. The WHERE clause carries
// the from-status so a concurrent writer that got there first makes this a
// no-op, reported via the boolean.
func (s *PGStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, driverID *types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE missions
		SET status = $1,
		    driver_id = COALESCE($2, driver_id)
		WHERE id = $3 AND status = $4`,
		string(to), idPtr(driverID), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) SetRating(ctx context.Context, id types.ID, rating int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE missions SET rating = $1
		WHERE id = $2 AND status = 'completed' AND rating IS NULL`,
		rating, string(id),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) Delete(ctx context.Context, id types.ID, from Status) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM missions WHERE id = $1 AND status = $2`,
		string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) SumCompleted(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(price), 0) FROM missions WHERE status = 'completed'`,
	).Scan(&total)
	return total, err
}

func (s *PGStore) list(ctx context.Context, sql string, args ...any) ([]Mission, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMission(row rowScanner) (*Mission, error) {
	var m Mission
	var driverID *string
	var status, vehicle string

	err := row.Scan(
		&m.ID, &m.CustomerID, &driverID, &status,
		&m.PickupAddress, &m.Pickup.Lat, &m.Pickup.Lng,
		&m.DropoffAddress, &m.Dropoff.Lat, &m.Dropoff.Lng,
		&m.DistanceKm, &vehicle, &m.Price.Amount, &m.DeliveryPIN, &m.Rating, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Status = Status(status)
	m.Vehicle = pricing.Vehicle(vehicle)
	m.Price.Currency = pricing.Currency
	if driverID != nil {
		d := types.ID(*driverID)
		m.DriverID = &d
	}
	return &m, nil
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
