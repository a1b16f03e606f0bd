// Package favorites maintains one owner's set of favorited property ids.
// Mutations are optimistic: the in-memory set changes first, the backend
// write follows, and a failed write restores the exact pre-mutation snapshot.
package favorites

import (
	"context"
	"sync"
)

// Backend persists the favorite set for a single owner. Implementations:
// the file-backed guest store in this package and the Postgres-backed
// account store in the service layer.
type Backend interface {
	Load(ctx context.Context) ([]string, error)
	Add(ctx context.Context, propertyID string) error
	Remove(ctx context.Context, propertyID string) error
	Clear(ctx context.Context) error
}

type Store struct {
	mu      sync.Mutex
	order   []string
	members map[string]struct{}
	backend Backend
}

func NewStore(b Backend) *Store {
	return &Store{members: map[string]struct{}{}, backend: b}
}

// Load replaces the in-memory set with the backend's contents.
func (s *Store) Load(ctx context.Context) error {
	ids, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.members = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.members[id]; dup {
			continue
		}
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return nil
}

// Add favorites a property. No-op when already present. On backend failure
// the set is rolled back to the snapshot taken before the mutation.
func (s *Store) Add(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.members[id]; ok {
		s.mu.Unlock()
		return nil
	}
	snapOrder, snapMembers := s.snapshot()
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
	s.mu.Unlock()

	if err := s.backend.Add(ctx, id); err != nil {
		s.restore(snapOrder, snapMembers)
		return err
	}
	return nil
}

// Remove unfavorites a property. No-op when absent; rolls back on failure.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.members[id]; !ok {
		s.mu.Unlock()
		return nil
	}
	snapOrder, snapMembers := s.snapshot()
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.backend.Remove(ctx, id); err != nil {
		s.restore(snapOrder, snapMembers)
		return err
	}
	return nil
}

// Toggle dispatches to Add or Remove based on current membership.
// The returned bool reports membership after the call.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	if s.IsFavorite(id) {
		return false, s.Remove(ctx, id)
	}
	return true, s.Add(ctx, id)
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[id]
	return ok
}

// List returns the favorites in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear removes every favorite, rolling back on backend failure.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	snapOrder, snapMembers := s.snapshot()
	s.order = nil
	s.members = map[string]struct{}{}
	s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		s.restore(snapOrder, snapMembers)
		return err
	}
	return nil
}

// snapshot copies current state; callers must hold mu.
func (s *Store) snapshot() ([]string, map[string]struct{}) {
	o := make([]string, len(s.order))
	copy(o, s.order)
	m := make(map[string]struct{}, len(s.members))
	for k := range s.members {
		m[k] = struct{}{}
	}
	return o, m
}

func (s *Store) restore(order []string, members map[string]struct{}) {
	s.mu.Lock()
	s.order = order
	s.members = members
	s.mu.Unlock()
}
