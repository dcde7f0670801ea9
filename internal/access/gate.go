// Package access holds the derived states that decide whether a page may render
// or an action may run.
package access

import (
	"sync"

	"artisanhub/internal/domain"
)

// RedirectTarget is where callers without the admin role are sent.
const RedirectTarget = "/products"

type GateState string

const (
	GateLoading     GateState = "loading"
	GateAuthorized  GateState = "authorized"
	GateRedirecting GateState = "redirecting"
)

// Gate guards one admin-only page. It starts in loading and settles once.
type Gate struct {
	mu    sync.Mutex
	state GateState
}

func NewGate() *Gate {
	return &Gate{state: GateLoading}
}

// Resolve settles the gate for role and returns the new state. Later calls are ignored.
func (g *Gate) Resolve(role domain.Role) GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != GateLoading {
		return g.state
	}
	if role == domain.RoleAdmin {
		g.state = GateAuthorized
	} else {
		g.state = GateRedirecting
	}
	return g.state
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// CanRender is true only once the gate authorized the caller.
func (g *Gate) CanRender() bool {
	return g.State() == GateAuthorized
}

// Redirect returns the target while redirecting.
func (g *Gate) Redirect() (string, bool) {
	if g.State() == GateRedirecting {
		return RedirectTarget, true
	}
	return "", false
}

// Render calls fn when the gate is authorized and reports whether it did.
func (g *Gate) Render(fn func()) bool {
	if !g.CanRender() {
		return false
	}
	fn()
	return true
}
