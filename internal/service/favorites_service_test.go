package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/favorites"
)

const (
	guestID = "3f1a2b94-8a61-4a0e-9d13-6a1f4c7e9b20"
	propA   = "0b54d7a1-2c3e-4f58-9a6b-1d2e3f4a5b6c"
	propB   = "9e8d7c6b-5a49-4838-b271-605f4e3d2c1b"
)

type fakeFavoriteRepo struct {
	mu      sync.Mutex
	byUser  map[string][]string
	inserts [][]string // every AddMany batch, for merge assertions
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{byUser: map[string][]string{}}
}

func (f *fakeFavoriteRepo) ListIDs(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.byUser[userID]...), nil
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.byUser[userID] {
		if id == propertyID {
			return nil
		}
	}
	f.byUser[userID] = append(f.byUser[userID], propertyID)
	return nil
}

func (f *fakeFavoriteRepo) AddMany(ctx context.Context, userID string, ids []string) error {
	f.mu.Lock()
	f.inserts = append(f.inserts, append([]string(nil), ids...))
	f.mu.Unlock()
	for _, id := range ids {
		if err := f.Add(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.byUser[userID][:0]
	for _, id := range f.byUser[userID] {
		if id != propertyID {
			out = append(out, id)
		}
	}
	f.byUser[userID] = out
	return nil
}

func (f *fakeFavoriteRepo) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byUser, userID)
	return nil
}

func newSvc(t *testing.T) (*FavoritesService, *fakeFavoriteRepo, *favorites.LocalStore) {
	t.Helper()
	guests, err := favorites.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	repo := newFakeFavoriteRepo()
	return NewFavoritesService(repo, guests), repo, guests
}

func TestSyncWithoutGuestIssuesNoMergeInsert(t *testing.T) {
	svc, repo, _ := newSvc(t)
	require.NoError(t, repo.Add(context.Background(), "user-1", propA))

	ids, err := svc.Sync(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{propA}, ids)
	assert.Empty(t, repo.inserts)
}

func TestSyncMergesOnlyTheDifferenceThenClears(t *testing.T) {
	svc, repo, guests := newSvc(t)
	ctx := context.Background()

	// remote {B}, guest {A, B}
	require.NoError(t, repo.Add(ctx, "user-1", propB))
	gs := favorites.NewStore(guests.Backend(guestID))
	require.NoError(t, gs.Add(ctx, propA))
	require.NoError(t, gs.Add(ctx, propB))

	ids, err := svc.Sync(ctx, "user-1", guestID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{propA, propB}, ids)
	require.Len(t, repo.inserts, 1)
	assert.Equal(t, []string{propA}, repo.inserts[0])

	// guest file cleared; re-running must not re-insert A
	assert.Empty(t, guests.Read(guestID))
	ids, err = svc.Sync(ctx, "user-1", guestID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{propA, propB}, ids)
	assert.Len(t, repo.inserts, 1)
}

func TestSyncEmptyGuestSetDoesNotInsert(t *testing.T) {
	svc, repo, _ := newSvc(t)
	ids, err := svc.Sync(context.Background(), "user-1", guestID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, repo.inserts)
}

func TestSyncConcurrentCallsMergeOnce(t *testing.T) {
	svc, repo, guests := newSvc(t)
	ctx := context.Background()
	gs := favorites.NewStore(guests.Backend(guestID))
	require.NoError(t, gs.Add(ctx, propA))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Sync(ctx, "user-1", guestID)
		}()
	}
	wg.Wait()

	ids, err := repo.ListIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{propA}, ids)
	// overlapping passes either skipped or merged; no batch may repeat A
	for _, batch := range repo.inserts {
		assert.NotContains(t, batch[1:], propA)
	}
	assert.LessOrEqual(t, len(repo.inserts), 1)
}

func TestStoreForPicksBackend(t *testing.T) {
	svc, repo, _ := newSvc(t)
	ctx := context.Background()

	user := svc.StoreFor("user-1", "")
	require.NoError(t, user.Add(ctx, propA))
	ids, err := repo.ListIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{propA}, ids)

	guest := svc.StoreFor("", guestID)
	require.NoError(t, guest.Add(ctx, propB))
	ids, err = repo.ListIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{propA}, ids) // guest writes never hit the repo
}
