package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

type Session struct {
	Token     string    `json:"token"`
	AccountID string    `json:"accountId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store indexes sessions by token and by account. Put replaces any existing
// session for the same account, which gives the single-active-session
// semantics: a fresh login invalidates the previous token.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, error)
	DeleteByAccount(ctx context.Context, accountID string) error
}

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Manager{store: store, ttl: ttl}
}

// Issue mints a fresh opaque token for the account, rotating out any session
// the account already holds.
func (m *Manager) Issue(ctx context.Context, accountID string) (Session, error) {
	s := Session{
		Token:     uuid.NewString(),
		AccountID: accountID,
		ExpiresAt: time.Now().UTC().Add(m.ttl),
	}

	if err := m.store.Put(ctx, s); err != nil {
		return Session{}, err
	}

	return s, nil
}

// Resolve maps a bearer token back to its session, rejecting expired ones.
func (m *Manager) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNotFound
	}

	s, err := m.store.Get(ctx, token)

	if err != nil {
		return Session{}, err
	}

	if time.Now().UTC().After(s.ExpiresAt) {
		_ = m.store.DeleteByAccount(ctx, s.AccountID)
		return Session{}, ErrExpired
	}

	return s, nil
}

// Revoke clears the account's active session, if any.
func (m *Manager) Revoke(ctx context.Context, accountID string) error {
	return m.store.DeleteByAccount(ctx, accountID)
}
