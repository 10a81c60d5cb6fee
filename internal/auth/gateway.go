// README: Auth gateway: credentials, sessions and the session-change hook.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/types"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNoSession      = errors.New("no active session")
	ErrBadRequest     = errors.New("bad request")
)

// Session identifies an authenticated caller for the lifetime of a token.
type Session struct {
	UserID types.ID     `json:"user_id"`
	Role   profile.Role `json:"role"`
}

// Credential is a stored login: the email plus its bcrypt hash, tied to a
// profile.
type Credential struct {
	UserID       types.ID
	Email        string
	PasswordHash string
	Role         profile.Role
}

// UserStore persists credentials together with their profiles. CreateUser is
// atomic: both rows land or neither, and a duplicate email fails with
// ErrEmailTaken even when two signups race.
type UserStore interface {
	CreateUser(ctx context.Context, c *Credential, p *profile.Profile) error
	GetByEmail(ctx context.Context, email string) (*Credential, error)
}

// SessionStore holds token -> session with a TTL; Load on an unknown or
// expired token returns ErrNoSession.
type SessionStore interface {
	Save(ctx context.Context, token string, s Session, ttl time.Duration) error
	Load(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type Gateway struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	log        *slog.Logger

	mu        sync.Mutex
	listeners []func(*Session)
}

func NewGateway(users UserStore, sessions SessionStore, sessionTTL time.Duration, log *slog.Logger) *Gateway {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{users: users, sessions: sessions, sessionTTL: sessionTTL, log: log}
}

type SignUpCommand struct {
	Email       string
	Password    string
	Role        string
	FullName    string
	PhoneNumber string
}

// SignUp creates the credential and its profile, then signs the new user in
// and returns their first session token. A missing or unrecognized role
// resolves to customer.
func (g *Gateway) SignUp(ctx context.Context, cmd SignUpCommand) (string, *Session, error) {
	email := normalizeEmail(cmd.Email)
	if email == "" || !strings.Contains(email, "@") || len(cmd.Password) < 6 {
		return "", nil, ErrBadRequest
	}

	hash, err := HashPassword(cmd.Password)
	if err != nil {
		return "", nil, err
	}

	role := profile.ParseRole(cmd.Role)
	userID := types.ID(uuid.NewString())

	p := &profile.Profile{
		ID:          userID,
		Role:        role,
		FullName:    cmd.FullName,
		PhoneNumber: cmd.PhoneNumber,
		CreatedAt:   time.Now().UTC(),
	}
	c := &Credential{UserID: userID, Email: email, PasswordHash: hash, Role: role}
	// uniqueness is enforced by the store, not by a get-then-insert check,
	// so two racing signups for one email cannot both land
	if err := g.users.CreateUser(ctx, c, p); err != nil {
		return "", nil, err
	}

	return g.openSession(ctx, userID, role)
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (string, *Session, error) {
	c, err := g.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || c == nil {
		return "", nil, ErrBadCredentials
	}
	if !CheckPassword(c.PasswordHash, password) {
		return "", nil, ErrBadCredentials
	}
	return g.openSession(ctx, c.UserID, c.Role)
}

func (g *Gateway) SignOut(ctx context.Context, token string) error {
	if err := g.sessions.Delete(ctx, token); err != nil {
		return err
	}
	g.notify(nil)
	return nil
}

// Session resolves a bearer token to the caller it identifies.
func (g *Gateway) Session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	return g.sessions.Load(ctx, token)
}

// OnSessionChange registers fn to be called with the new session after every
// sign-in and sign-up, and with nil after every sign-out.
func (g *Gateway) OnSessionChange(fn func(*Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

func (g *Gateway) openSession(ctx context.Context, userID types.ID, role profile.Role) (string, *Session, error) {
	s := Session{UserID: userID, Role: role}
	token := uuid.NewString()
	if err := g.sessions.Save(ctx, token, s, g.sessionTTL); err != nil {
		return "", nil, err
	}
	g.notify(&s)
	return token, &s, nil
}

func (g *Gateway) notify(s *Session) {
	g.mu.Lock()
	listeners := make([]func(*Session), len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
