package client

import (
	"context"
	"sync"
)

// Status is the derived state a protected view renders against.
type Status string

const (
	StatusChecking    Status = "checking"
	StatusReady       Status = "ready"
	StatusDenied      Status = "denied"
	StatusRedirecting Status = "redirecting"
)

const loginPath = "/auth/login"

// RouteGuard gates protected views until the session resolves. When an
// unauthenticated visitor hits a protected path, the guard records that path
// so a successful login can return them to it.
type RouteGuard struct {
	session *SessionManager

	mu           sync.Mutex
	intendedPath string
}

func NewRouteGuard(session *SessionManager) *RouteGuard {
	return &RouteGuard{session: session}
}

// Status derives the view state from the current snapshot without blocking.
// Before the first hydration completes this is checking: the view renders a
// placeholder while Resolve settles the session in the background.
func (g *RouteGuard) Status(requireAdmin bool) Status {
	return g.derive(g.session.Snapshot(), "", requireAdmin)
}

// Resolve hydrates the session (coalesced with any concurrent guard) and
// derives the view status. An authenticated user lacking the admin
// capability resolves to denied, not redirecting: they are logged in, just
// not allowed.
func (g *RouteGuard) Resolve(ctx context.Context, path string, requireAdmin bool) Status {
	return g.derive(g.session.Hydrate(ctx), path, requireAdmin)
}

func (g *RouteGuard) derive(session Session, path string, requireAdmin bool) Status {
	if !session.HasHydrated {
		return StatusChecking
	}

	if !session.IsAuthenticated {
		g.mu.Lock()
		if g.intendedPath == "" && path != "" {
			g.intendedPath = path
		}
		g.mu.Unlock()
		return StatusRedirecting
	}

	if requireAdmin && (session.User == nil || !session.User.IsAdmin) {
		return StatusDenied
	}

	return StatusReady
}

// LoginRedirect returns the login path the guard sends visitors to.
func (g *RouteGuard) LoginRedirect() string {
	return loginPath
}

// ConsumeIntendedPath returns the originally requested path and clears it,
// falling back to the root when nothing was recorded.
func (g *RouteGuard) ConsumeIntendedPath() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	path := g.intendedPath
	g.intendedPath = ""
	if path == "" {
		return "/"
	}
	return path
}
