// Package store holds the per-kind resolvers and implements the
// snapshot + atomic-publish lifecycle: the loader builds a Store off
// the dispatch path, and publication swaps the owning Handle's
// pointer in one bounded, I/O-free critical section.
package store

import (
	"sync/atomic"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/provider"
	"github.com/intentfw/ifw/internal/resolver"
	"github.com/intentfw/ifw/internal/rule"
)

// Store is one complete, immutable rule set: a resolver per
// intent-bearing kind, plus a flat list for package queries, which
// have no intent semantics to index on.
type Store struct {
	Activity  *resolver.Resolver
	Broadcast *resolver.Resolver
	Service   *resolver.Resolver
	Provider  *resolver.Resolver
	Package   []*rule.Rule
}

// New returns an empty Store with all four resolvers initialized.
func New() *Store {
	return &Store{
		Activity:  resolver.New(),
		Broadcast: resolver.New(),
		Service:   resolver.New(),
		Provider:  resolver.New(),
	}
}

// Resolver returns the resolver for an intent-bearing kind. It panics
// on intent.KindPackage, which has no resolver — callers branch on
// kind before calling this, as the façade does.
func (s *Store) Resolver(kind intent.Kind) *resolver.Resolver {
	switch kind {
	case intent.KindActivity:
		return s.Activity
	case intent.KindBroadcast:
		return s.Broadcast
	case intent.KindService:
		return s.Service
	case intent.KindProvider:
		return s.Provider
	default:
		panic("store: no resolver for kind " + string(kind))
	}
}

// Handle is the owning reference the firewall façade holds.
// Dispatches acquire a snapshot via a single atomic load — no extra
// lock on the read path. Publication takes the dispatcher's coarse
// lock; the atomic pointer makes that critical section a single
// store, not five separate resolver writes.
type Handle struct {
	current atomic.Pointer[Store]
}

// NewHandle wraps an initial Store (typically empty, until the first
// load completes).
func NewHandle(initial *Store) *Handle {
	h := &Handle{}
	h.current.Store(initial)
	return h
}

// Snapshot returns the live Store. The returned pointer is safe to
// use for the duration of one dispatch: a concurrent Publish never
// mutates it, only swaps the Handle to point elsewhere.
func (h *Handle) Snapshot() *Store {
	return h.current.Load()
}

// Publish installs next as the live Store under collab's coarse lock.
// This is the only write to the Handle; it never blocks on I/O since
// next is already fully built.
func (h *Handle) Publish(collab provider.Collaborator, next *Store) {
	lock := collab.Lock()
	lock.Lock()
	defer lock.Unlock()
	h.current.Store(next)
}
