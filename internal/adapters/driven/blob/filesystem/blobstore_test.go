package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *BlobStore {
	t.Helper()
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestBlobStoreUploadDownload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "polityka.txt", []byte("Urlop wynosi 26 dni.")))

	data, etag, err := store.Download(ctx, "polityka.txt")
	require.NoError(t, err)
	assert.Equal(t, "Urlop wynosi 26 dni.", string(data))
	assert.Len(t, etag, 64)
}

func TestBlobStoreEtagTracksContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "a.txt", []byte("wersja pierwsza")))
	_, etag1, err := store.Download(ctx, "a.txt")
	require.NoError(t, err)

	// Same content, same etag.
	require.NoError(t, store.Upload(ctx, "a.txt", []byte("wersja pierwsza")))
	_, etag2, err := store.Download(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, etag1, etag2)

	require.NoError(t, store.Upload(ctx, "a.txt", []byte("wersja druga")))
	_, etag3, err := store.Download(ctx, "a.txt")
	require.NoError(t, err)
	assert.NotEqual(t, etag1, etag3)
}

func TestBlobStoreDownloadMissing(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.Download(context.Background(), "brak.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlobStoreListSkipsHiddenFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "docs/a.txt", []byte("a")))
	require.NoError(t, store.Upload(ctx, "docs/b.txt", []byte("b")))
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), ".ukryty"), []byte("x"), 0o600))

	infos, err := store.List(ctx, "")
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"docs/a.txt", "docs/b.txt"}, names)
}

func TestBlobStoreListPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "hr/urlopy.txt", []byte("a")))
	require.NoError(t, store.Upload(ctx, "it/vpn.txt", []byte("b")))

	infos, err := store.List(ctx, "hr/")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "hr/urlopy.txt", infos[0].Name)
}

func TestBlobStoreDeleteMissingIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), "brak.txt"))
}

func TestBlobStoreRejectsEscapingNames(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.Download(context.Background(), "../poza.txt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBlobStoreWatch(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx, "")
	require.NoError(t, err)

	require.NoError(t, store.Upload(ctx, "nowy.txt", []byte("treść")))

	ev := waitForEvent(t, events, "nowy.txt", driven.BlobUpserted)
	assert.Equal(t, driven.BlobUpserted, ev.Type)

	require.NoError(t, store.Delete(ctx, "nowy.txt"))
	ev = waitForEvent(t, events, "nowy.txt", driven.BlobDeleted)
	assert.Equal(t, driven.BlobDeleted, ev.Type)

	cancel()
	// The channel closes once the watcher goroutine exits.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel did not close after cancel")
		}
	}
}

// waitForEvent drains the channel until the expected event arrives.
// Filesystems may emit several events for a single write.
func waitForEvent(t *testing.T, events <-chan driven.BlobEvent, name string, typ driven.BlobEventType) driven.BlobEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed waiting for %s", name)
			}
			if ev.Name == name && ev.Type == typ {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event on %s", name)
		}
	}
}
