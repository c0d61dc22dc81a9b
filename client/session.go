package client

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/inkwell-labs/bookstore/users"
)

// ProfileFetcher is the slice of the API client the session manager needs.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*users.User, error)
}

// Session is a point-in-time view of the client auth state.
type Session struct {
	User            *users.User
	IsAuthenticated bool
	HasHydrated     bool
}

// SessionManager tracks whether the client session is authenticated. It has
// no persistence of its own: state is reconstructed by calling the profile
// endpoint, which implicitly validates the access-token cookie. Concurrent
// hydration calls are coalesced into a single in-flight profile check.
type SessionManager struct {
	fetcher ProfileFetcher

	mu              sync.RWMutex
	user            *users.User
	isAuthenticated bool
	hasHydrated     bool

	group singleflight.Group
}

func NewSessionManager(fetcher ProfileFetcher) *SessionManager {
	return &SessionManager{fetcher: fetcher}
}

// Hydrate resolves the session from the profile endpoint. Safe to call from
// multiple mounted guards: re-entrant calls share one flight. Any failure,
// network included, resolves defensively to unauthenticated rather than
// leaving the state indeterminate.
func (m *SessionManager) Hydrate(ctx context.Context) Session {
	result, _, _ := m.group.Do("hydrate", func() (interface{}, error) {
		user, err := m.fetcher.Profile(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil || user == nil {
			m.user = nil
			m.isAuthenticated = false
		} else {
			m.user = user
			m.isAuthenticated = true
		}
		m.hasHydrated = true
		return m.snapshotLocked(), nil
	})
	return result.(Session)
}

// SetSession marks the session authenticated after a successful login or
// registration, without another profile round-trip.
func (m *SessionManager) SetSession(user *users.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.isAuthenticated = user != nil
	m.hasHydrated = true
}

// Clear resets to anonymous, e.g. after logout or a failed refresh.
func (m *SessionManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.isAuthenticated = false
	m.hasHydrated = true
}

func (m *SessionManager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *SessionManager) snapshotLocked() Session {
	return Session{
		User:            m.user,
		IsAuthenticated: m.isAuthenticated,
		HasHydrated:     m.hasHydrated,
	}
}
