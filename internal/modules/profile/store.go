// README: Profile store backed by PostgreSQL.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swiftdrop/internal/types"
)

var ErrNotFound = errors.New("profile not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Profile) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO profiles (id, role, full_name, phone_number, is_online, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(p.ID), string(p.Role), p.FullName, p.PhoneNumber, p.IsOnline, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, role, full_name, phone_number, is_online, last_lat, last_lng, created_at
		FROM profiles
		WHERE id = $1`, string(id),
	)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Store) ListByRole(ctx context.Context, role Role) ([]Profile, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, role, full_name, phone_number, is_online, last_lat, last_lng, created_at
		FROM profiles
		WHERE role = $1
		ORDER BY created_at DESC`, string(role),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateContact changes owner-editable fields only. Role is deliberately not
// updatable through any store method.
func (s *Store) UpdateContact(ctx context.Context, id types.ID, fullName, phone string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE profiles SET full_name = $1, phone_number = $2 WHERE id = $3`,
		fullName, phone, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetOnline(ctx context.Context, id types.ID, online bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE profiles SET is_online = $1 WHERE id = $2 AND role = 'driver'`,
		online, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetLocation(ctx context.Context, id types.ID, pos types.Point) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE profiles SET last_lat = $1, last_lng = $2 WHERE id = $3 AND role = 'driver'`,
		pos.Lat, pos.Lng, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile decodes one row, applying the role fallback so malformed rows
// never propagate an unknown role into the rest of the service.
func scanProfile(row rowScanner) (*Profile, error) {
	var p Profile
	var role string
	var lat, lng *float64

	err := row.Scan(&p.ID, &role, &p.FullName, &p.PhoneNumber, &p.IsOnline, &lat, &lng, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Role = ParseRole(role)
	if lat != nil && lng != nil {
		p.Location = &types.Point{Lat: *lat, Lng: *lng}
	}
	return &p, nil
}
