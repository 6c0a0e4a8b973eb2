// Package store holds the family aggregate and every action that mutates it.
//
// The aggregate is private to FamilyStore. Reads hand out deep copies and all
// writes go through the command methods, each of which runs to completion
// under a single lock before the next one can observe the state.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rewardsprint/internal/models"
)

// Listener is called with a copy of the new state after each change
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// FamilyStore owns the single Family aggregate and the login session
type FamilyStore struct {
	mu        sync.Mutex
	state     State
	newID     func() string
	now       func() time.Time
	listeners []subscription
	nextSubID int
}

// Option configures a FamilyStore
type Option func(*FamilyStore)

// WithIDGenerator replaces the identity generator
func WithIDGenerator(fn func() string) Option {
	return func(s *FamilyStore) {
		s.newID = fn
	}
}

// WithClock replaces the time source used for timestamps
func WithClock(fn func() time.Time) Option {
	return func(s *FamilyStore) {
		s.now = fn
	}
}

// New creates an empty store: no family, logged out
func New(opts ...Option) *FamilyStore {
	s := &FamilyStore{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to run after every successful change.
// The returned function removes the subscription.
func (s *FamilyStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Hydrate replaces the whole state, typically with one decoded from storage.
// Listeners are not notified.
func (s *FamilyStore) Hydrate(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.clone()
}

// State returns a copy of the full state
func (s *FamilyStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Session returns a copy of the current session
func (s *FamilyStore) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Session.Clone()
}

// Family returns a copy of the family, if one exists
func (s *FamilyStore) Family() (models.Family, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Family == nil {
		return models.Family{}, false
	}
	return s.state.Family.Clone(), true
}

// Child returns the child with the given id
func (s *FamilyStore) Child(childID string) (models.Child, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Family == nil {
		return models.Child{}, false
	}
	if i := indexOf(s.state.Family.Children, func(c models.Child) bool { return c.ID == childID }); i >= 0 {
		return s.state.Family.Children[i], true
	}
	return models.Child{}, false
}

// PendingRedemptions lists redemptions still awaiting a parent decision
func (s *FamilyStore) PendingRedemptions() []models.RewardRedemption {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := []models.RewardRedemption{}
	if s.state.Family == nil {
		return pending
	}
	for _, r := range s.state.Family.Redemptions {
		if r.Status == models.RedemptionPending {
			pending = append(pending, r)
		}
	}
	return pending
}

// ChildRedemptions lists every redemption a child has requested
func (s *FamilyStore) ChildRedemptions(childID string) []models.RewardRedemption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.RewardRedemption{}
	if s.state.Family == nil {
		return out
	}
	for _, r := range s.state.Family.Redemptions {
		if r.ChildID == childID {
			out = append(out, r)
		}
	}
	return out
}

// ChildCompletedTasks lists the completion records for a child, oldest first
func (s *FamilyStore) ChildCompletedTasks(childID string) []models.CompletedTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CompletedTask{}
	if s.state.Family == nil {
		return out
	}
	for _, ct := range s.state.Family.CompletedTasks {
		if ct.ChildID == childID {
			out = append(out, ct)
		}
	}
	return out
}

// update runs fn under the lock and notifies listeners if it succeeded.
// fn must check every precondition before it writes anything.
func (s *FamilyStore) update(fn func(st *State) error) error {
	s.mu.Lock()
	if err := fn(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.state.clone()
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.clone())
	}
	return nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
