package service

import (
	"context"
	"sync"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/favorites"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

// FavoritesService owns the account-side favorite set and the one-shot
// guest-to-account merge that runs when a signed-in user still carries a
// guest cookie.
type FavoritesService struct {
	remote repository.FavoriteRepository
	guests *favorites.LocalStore

	// user ids with a merge in flight; prevents two concurrent syncs from
	// double-inserting the same guest favorites
	syncing sync.Map
}

func NewFavoritesService(remote repository.FavoriteRepository, guests *favorites.LocalStore) *FavoritesService {
	return &FavoritesService{remote: remote, guests: guests}
}

// GuestStore exposes the file-backed store for anonymous sessions.
func (s *FavoritesService) GuestStore() *favorites.LocalStore { return s.guests }

// StoreFor returns an optimistic store bound to the right backend for the
// caller: the guest file when userID is empty, Postgres otherwise.
func (s *FavoritesService) StoreFor(userID, guestID string) *favorites.Store {
	if userID == "" {
		return favorites.NewStore(s.guests.Backend(guestID))
	}
	return favorites.NewStore(&remoteBackend{repo: s.remote, userID: userID})
}

// Sync loads the user's remote favorites and, when a guest id is present,
// merges the guest set in: only (guest − remote) is inserted, then the guest
// file is cleared so a re-run cannot re-insert anything. At most one merge
// pass runs per user at a time; concurrent callers skip the merge and just
// read the remote set.
func (s *FavoritesService) Sync(ctx context.Context, userID, guestID string) ([]string, error) {
	remote, err := s.remote.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if guestID == "" {
		return remote, nil
	}

	if _, inFlight := s.syncing.LoadOrStore(userID, struct{}{}); inFlight {
		return remote, nil
	}
	defer s.syncing.Delete(userID)

	local := s.guests.Read(guestID)
	if len(local) == 0 {
		return remote, nil
	}

	known := make(map[string]struct{}, len(remote))
	for _, id := range remote {
		known[id] = struct{}{}
	}
	var diff []string
	for _, id := range local {
		if _, ok := known[id]; !ok {
			diff = append(diff, id)
		}
	}

	if len(diff) > 0 {
		if err := s.remote.AddMany(ctx, userID, diff); err != nil {
			// keep the guest file so the merge can retry next load
			return remote, err
		}
		remote = append(remote, diff...)
	}
	s.guests.Clear(guestID)
	return remote, nil
}

// remoteBackend adapts the favorites repository to the store's Backend,
// binding it to one user.
type remoteBackend struct {
	repo   repository.FavoriteRepository
	userID string
}

func (b *remoteBackend) Load(ctx context.Context) ([]string, error) {
	return b.repo.ListIDs(ctx, b.userID)
}

func (b *remoteBackend) Add(ctx context.Context, id string) error {
	return b.repo.Add(ctx, b.userID, id)
}

func (b *remoteBackend) Remove(ctx context.Context, id string) error {
	return b.repo.Remove(ctx, b.userID, id)
}

func (b *remoteBackend) Clear(ctx context.Context) error {
	return b.repo.Clear(ctx, b.userID)
}
