package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore persists guest favorite sets as JSON files under a data
// directory, one file per guest id. It stands in for the browser's local
// storage: contents are validated on read and discarded wholesale when
// malformed, and writes are best-effort.
type LocalStore struct {
	dir string
}

var errBadGuestID = errors.New("favorites: invalid guest id")

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (l *LocalStore) path(guestID string) (string, error) {
	// Guest ids come from a cookie; only UUID-shaped ones touch the disk.
	if _, err := uuid.Parse(guestID); err != nil {
		return "", errBadGuestID
	}
	return filepath.Join(l.dir, "guest-"+guestID+".json"), nil
}

// Read returns the validated favorite list for a guest. A missing file, a
// broken JSON document or any non-UUID entry yields an empty list.
func (l *LocalStore) Read(guestID string) []string {
	p, err := l.path(guestID)
	if err != nil {
		return nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil
		}
	}
	return ids
}

func (l *LocalStore) write(guestID string, ids []string) {
	p, err := l.path(guestID)
	if err != nil {
		return
	}
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	// Best-effort: a failed write loses nothing the next request can't redo.
	_ = os.WriteFile(p, b, 0o644)
}

// Clear deletes the guest's file. Called after a successful merge so stale
// entries can never be merged twice.
func (l *LocalStore) Clear(guestID string) {
	if p, err := l.path(guestID); err == nil {
		_ = os.Remove(p)
	}
}

// Backend returns a store Backend bound to one guest id.
func (l *LocalStore) Backend(guestID string) Backend {
	return &localBackend{store: l, guestID: guestID}
}

type localBackend struct {
	store   *LocalStore
	guestID string
}

func (b *localBackend) Load(ctx context.Context) ([]string, error) {
	return b.store.Read(b.guestID), nil
}

func (b *localBackend) Add(ctx context.Context, id string) error {
	ids := b.store.Read(b.guestID)
	for _, v := range ids {
		if v == id {
			return nil
		}
	}
	b.store.write(b.guestID, append(ids, id))
	return nil
}

func (b *localBackend) Remove(ctx context.Context, id string) error {
	ids := b.store.Read(b.guestID)
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	b.store.write(b.guestID, out)
	return nil
}

func (b *localBackend) Clear(ctx context.Context) error {
	b.store.Clear(b.guestID)
	return nil
}
