package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend records writes; Fail makes every mutation return an error.
type memBackend struct {
	ids   []string
	fail  bool
	calls int
}

var errBoom = errors.New("backend down")

func (m *memBackend) Load(ctx context.Context) ([]string, error) {
	m.calls++
	if m.fail {
		return nil, errBoom
	}
	return append([]string(nil), m.ids...), nil
}

func (m *memBackend) Add(ctx context.Context, id string) error {
	m.calls++
	if m.fail {
		return errBoom
	}
	m.ids = append(m.ids, id)
	return nil
}

func (m *memBackend) Remove(ctx context.Context, id string) error {
	m.calls++
	if m.fail {
		return errBoom
	}
	out := m.ids[:0]
	for _, v := range m.ids {
		if v != id {
			out = append(out, v)
		}
	}
	m.ids = out
	return nil
}

func (m *memBackend) Clear(ctx context.Context) error {
	m.calls++
	if m.fail {
		return errBoom
	}
	m.ids = nil
	return nil
}

func TestStoreAddRemoveToggle(t *testing.T) {
	ctx := context.Background()
	b := &memBackend{}
	s := NewStore(b)

	require.NoError(t, s.Add(ctx, "prop-1"))
	assert.True(t, s.IsFavorite("prop-1"))
	assert.Equal(t, []string{"prop-1"}, s.List())

	// adding an existing id is a no-op, including at the backend
	before := b.calls
	require.NoError(t, s.Add(ctx, "prop-1"))
	assert.Equal(t, before, b.calls)

	on, err := s.Toggle(ctx, "prop-2")
	require.NoError(t, err)
	assert.True(t, on)
	on, err = s.Toggle(ctx, "prop-2")
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, s.Remove(ctx, "prop-1"))
	assert.Empty(t, s.List())

	// removing an absent id is a no-op
	before = b.calls
	require.NoError(t, s.Remove(ctx, "prop-1"))
	assert.Equal(t, before, b.calls)
}

func TestStoreRollbackIsExact(t *testing.T) {
	ctx := context.Background()
	b := &memBackend{}
	s := NewStore(b)
	require.NoError(t, s.Add(ctx, "a"))
	require.NoError(t, s.Add(ctx, "b"))

	before := s.List()
	b.fail = true

	err := s.Add(ctx, "c")
	require.Error(t, err)
	assert.Equal(t, before, s.List())
	assert.False(t, s.IsFavorite("c"))

	err = s.Remove(ctx, "a")
	require.Error(t, err)
	assert.Equal(t, before, s.List())
	assert.True(t, s.IsFavorite("a"))

	err = s.Clear(ctx)
	require.Error(t, err)
	assert.Equal(t, before, s.List())
}

func TestStoreLoadDeduplicates(t *testing.T) {
	b := &memBackend{ids: []string{"a", "b", "a"}}
	s := NewStore(b)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"a", "b"}, s.List())
}

const (
	guestID = "3f1a2b94-8a61-4a0e-9d13-6a1f4c7e9b20"
	propA   = "0b54d7a1-2c3e-4f58-9a6b-1d2e3f4a5b6c"
	propB   = "9e8d7c6b-5a49-4838-b271-605f4e3d2c1b"
)

func TestLocalStoreGuestLifecycle(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStore(dir)
	require.NoError(t, err)

	// no prior favorites: empty without touching anything remote
	s := NewStore(ls.Backend(guestID))
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.List())

	require.NoError(t, s.Add(context.Background(), propA))

	// exactly [propA] under the fixed per-guest key
	raw, err := os.ReadFile(filepath.Join(dir, "guest-"+guestID+".json"))
	require.NoError(t, err)
	var onDisk []string
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, []string{propA}, onDisk)

	require.NoError(t, s.Remove(context.Background(), propA))
	raw, err = os.ReadFile(filepath.Join(dir, "guest-"+guestID+".json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, []string{}, onDisk)
}

func TestLocalStoreDiscardsMalformedData(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "guest-"+guestID+".json")

	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))
	assert.Empty(t, ls.Read(guestID))

	// one non-UUID entry poisons the whole document
	require.NoError(t, os.WriteFile(path, []byte(`["`+propA+`","nope"]`), 0o644))
	assert.Empty(t, ls.Read(guestID))

	require.NoError(t, os.WriteFile(path, []byte(`["`+propA+`","`+propB+`"]`), 0o644))
	assert.Equal(t, []string{propA, propB}, ls.Read(guestID))
}

func TestLocalStoreRejectsNonUUIDGuest(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStore(dir)
	require.NoError(t, err)

	assert.Empty(t, ls.Read("../../etc/passwd"))
	require.NoError(t, ls.Backend("not-a-uuid").Add(context.Background(), propA))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
