package client_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookstore/client"
	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/users"
)

// fakeFetcher stands in for the API client's profile call. The gate channel,
// when set, holds every call open so tests can pile up concurrent hydrations.
type fakeFetcher struct {
	calls atomic.Int64
	user  *users.User
	err   error
	gate  chan struct{}
}

func (f *fakeFetcher) Profile(ctx context.Context) (*users.User, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.user, f.err
}

func TestHydrateResolvesAuthenticatedSession(t *testing.T) {
	fetcher := &fakeFetcher{user: &users.User{ID: "user-1", Email: "jane@x.com"}}
	manager := client.NewSessionManager(fetcher)

	session := manager.Hydrate(context.Background())
	require.True(t, session.HasHydrated)
	require.True(t, session.IsAuthenticated)
	require.Equal(t, "user-1", session.User.ID)
}

func TestHydrateFailureResolvesToAnonymous(t *testing.T) {
	fetcher := &fakeFetcher{err: apperrors.ErrInvalidCredentials}
	manager := client.NewSessionManager(fetcher)

	session := manager.Hydrate(context.Background())
	require.True(t, session.HasHydrated, "a failed check still counts as resolved")
	require.False(t, session.IsAuthenticated)
	require.Nil(t, session.User)
}

func TestConcurrentHydrationsShareOneProfileCall(t *testing.T) {
	fetcher := &fakeFetcher{
		user: &users.User{ID: "user-1"},
		gate: make(chan struct{}),
	}
	manager := client.NewSessionManager(fetcher)

	const guards = 8
	var wg, started sync.WaitGroup
	sessions := make([]client.Session, guards)

	wg.Add(guards)
	started.Add(guards)
	for i := 0; i < guards; i++ {
		go func(i int) {
			defer wg.Done()
			started.Done()
			sessions[i] = manager.Hydrate(context.Background())
		}(i)
	}

	// Let the callers stack up behind the single in-flight fetch before
	// releasing it.
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	require.Equal(t, int64(1), fetcher.calls.Load())
	for _, session := range sessions {
		require.True(t, session.IsAuthenticated)
		require.Equal(t, "user-1", session.User.ID)
	}
}

func TestSetSessionAndClear(t *testing.T) {
	manager := client.NewSessionManager(&fakeFetcher{})

	require.False(t, manager.Snapshot().HasHydrated)

	manager.SetSession(&users.User{ID: "user-1"})
	session := manager.Snapshot()
	require.True(t, session.IsAuthenticated)
	require.True(t, session.HasHydrated)

	manager.Clear()
	session = manager.Snapshot()
	require.False(t, session.IsAuthenticated)
	require.True(t, session.HasHydrated)
	require.Nil(t, session.User)
}
