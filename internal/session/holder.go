package session

import (
	"context"
	"sync"

	"movieticket/pkg/logger"
)

// Holder is the process-wide observable holding the current authenticated
// identity, or none. Single writer (login/logout), many readers (guards,
// navigation). Every write is mirrored to the Store and delivered
// synchronously to all subscribers.
type Holder struct {
	mu      sync.RWMutex
	current *Session
	store   Store
	log     *logger.Logger
	subs    map[int]func(*Session)
	nextSub int
}

func NewHolder(store Store, log *logger.Logger) *Holder {
	return &Holder{
		store: store,
		log:   log,
		subs:  make(map[int]func(*Session)),
	}
}

// Rehydrate restores a previously persisted session. There is no expiry
// check: a stale session remains valid until explicit logout or an
// upstream 401.
func (h *Holder) Rehydrate(ctx context.Context) error {
	s, err := h.store.Load(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	h.mu.Lock()
	h.current = s
	h.mu.Unlock()

	h.log.InfoWithContext(ctx, "Session Rehydrated", map[string]interface{}{
		"customer_id": s.CustomerID,
		"role":        s.Role,
	})
	return nil
}

// Set stores the session of a freshly authenticated customer, persists it,
// and notifies subscribers.
func (h *Holder) Set(ctx context.Context, s *Session) error {
	if err := h.store.Save(ctx, s); err != nil {
		return err
	}

	h.mu.Lock()
	h.current = s
	subs := h.snapshotSubs()
	h.mu.Unlock()

	notify(subs, s)
	return nil
}

// Clear removes both the in-memory session and its persisted copy.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.store.Clear(ctx); err != nil {
		return err
	}

	h.mu.Lock()
	h.current = nil
	subs := h.snapshotSubs()
	h.mu.Unlock()

	notify(subs, nil)
	return nil
}

// Current returns the active session, or nil when nobody is logged in.
func (h *Holder) Current() *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Holder) IsLoggedIn() bool {
	return h.Current() != nil
}

func (h *Holder) IsAdmin() bool {
	s := h.Current()
	return s != nil && s.Role == RoleAdmin
}

func (h *Holder) IsCustomer() bool {
	s := h.Current()
	return s != nil && s.Role == RoleCustomer
}

// Subscribe registers fn for change notifications. fn receives the new
// session after each login and nil after each logout. The returned func
// removes the subscription.
func (h *Holder) Subscribe(fn func(*Session)) func() {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// snapshotSubs must be called with h.mu held. Subscribers are invoked
// outside the lock so they can read the holder without deadlocking.
func (h *Holder) snapshotSubs() []func(*Session) {
	subs := make([]func(*Session), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(*Session), s *Session) {
	for _, fn := range subs {
		fn(s)
	}
}
