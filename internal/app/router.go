// internal/app/router.go
//
// Page router.
// The REPL shows one page at a time (login, register or dashboard). Pages
// are left through Navigate, the terminal equivalent of a location change:
// the new page and its query flags take effect on the next REPL turn.

package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/auth"
)

// Router holds the current page. Safe for concurrent use; the API client
// may navigate from its expiry handler.
type Router struct {
	mu      sync.Mutex
	page    string
	flags   map[string]bool
	pending bool
}

// NewRouter starts on page.
func NewRouter(page string) *Router {
	return &Router{page: page, flags: map[string]bool{}, pending: true}
}

// Navigate switches to page, replacing the query flags.
func (r *Router) Navigate(page string, flags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page = page
	r.flags = map[string]bool{}
	for _, f := range flags {
		r.flags[f] = true
	}
	r.pending = true
	log.Debug().Str("page", page).Strs("flags", flags).Msg("navigate")
}

// Expire is the API client's session-expiry handler.
func (r *Router) Expire(sessionExpired bool) {
	if sessionExpired {
		r.Navigate(auth.PageLogin, auth.FlagSessionExpired)
		return
	}
	r.Navigate(auth.PageLogin)
}

// Page returns the current page and a copy of its flags.
func (r *Router) Page() (string, map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flags := make(map[string]bool, len(r.flags))
	for k, v := range r.flags {
		flags[k] = v
	}
	return r.page, flags
}

// entered reports, once, that the page changed since the last call.
func (r *Router) entered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pending
	r.pending = false
	return p
}
