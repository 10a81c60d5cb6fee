package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"swiftdrop/internal/modules/profile"
)

// uniqueViolation is the PostgreSQL error code for a UNIQUE constraint hit.
const uniqueViolation = "23505"

// PGUserStore persists logins and their profiles.
type PGUserStore struct {
	pool *pgxpool.Pool
}

var _ UserStore = (*PGUserStore)(nil)

func NewPGUserStore(pool *pgxpool.Pool) *PGUserStore {
	return &PGUserStore{pool: pool}
}

// CreateUser inserts the profile and its credential in one transaction, so a
// failed signup never leaves an orphaned profile row. Two concurrent signups
// with the same email race on the credentials UNIQUE index; the loser gets
// ErrEmailTaken.
func (s *PGUserStore) CreateUser(ctx context.Context, c *Credential, p *profile.Profile) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (id, role, full_name, phone_number, is_online, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(p.ID), string(p.Role), p.FullName, p.PhoneNumber, p.IsOnline, p.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO credentials (user_id, email, password_hash, role) VALUES ($1, $2, $3, $4)`,
		c.UserID, c.Email, c.PasswordHash, string(c.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *PGUserStore) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT user_id, email, password_hash, role FROM credentials WHERE email = $1`, email)
	var c Credential
	var role string
	if err := row.Scan(&c.UserID, &c.Email, &c.PasswordHash, &role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	c.Role = profile.ParseRole(role)
	return &c, nil
}
