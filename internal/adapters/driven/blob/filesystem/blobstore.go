// Package filesystem provides a BlobStore backed by a local directory.
// Blob names are slash-separated paths relative to the root; the etag is
// the SHA-256 of the file content, so renames with identical bytes still
// read as unchanged.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore serves blobs from a directory tree.
type BlobStore struct {
	root string
}

// NewBlobStore creates a store rooted at dir. The directory is created
// if it does not exist.
func NewBlobStore(dir string) (*BlobStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: corpus path is required", domain.ErrMissingConfig)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, fmt.Errorf("create corpus directory: %w", err)
	}
	return &BlobStore{root: abs}, nil
}

// Root returns the absolute corpus directory.
func (s *BlobStore) Root() string {
	return s.root
}

// List returns all blobs under the given prefix, hidden files excluded.
func (s *BlobStore) List(_ context.Context, prefix string) ([]driven.BlobInfo, error) {
	var infos []driven.BlobInfo
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		name, err := s.blobName(path)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, driven.BlobInfo{Name: name, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", domain.ErrSourceUnavailable, s.root, err)
	}
	return infos, nil
}

// Download returns the blob content and a content-hash etag.
func (s *BlobStore) Download(_ context.Context, name string) ([]byte, string, error) {
	path, err := s.blobPath(name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: blob %s", domain.ErrNotFound, name)
		}
		return nil, "", fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, name, err)
	}
	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]), nil
}

// Upload writes a blob, creating parent directories as needed.
func (s *BlobStore) Upload(_ context.Context, name string, data []byte) error {
	path, err := s.blobPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}
	return nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *BlobStore) Delete(_ context.Context, name string) error {
	path, err := s.blobPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", name, err)
	}
	return nil
}

// Watch emits change events for the corpus directory until ctx is
// cancelled. Writes and creates map to upserts, removes and renames to
// deletes. Editors that write via rename deliver both a delete and an
// upsert; the consumer's triggers are idempotent so the order does not
// matter.
func (s *BlobStore) Watch(ctx context.Context, prefix string) (<-chan driven.BlobEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the root and every existing subdirectory.
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: watch %s: %v", domain.ErrSourceUnavailable, s.root, err)
	}

	events := make(chan driven.BlobEvent)
	go func() {
		defer close(events)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.handleFsEvent(ctx, watcher, ev, prefix, events)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watcher: %v", err)
			}
		}
	}()
	return events, nil
}

func (s *BlobStore) handleFsEvent(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	ev fsnotify.Event,
	prefix string,
	events chan<- driven.BlobEvent,
) {
	name, err := s.blobName(ev.Name)
	if err != nil || !strings.HasPrefix(name, prefix) {
		return
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return
	}

	// New directories must be added to the watch set; fsnotify does not
	// recurse on its own.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := watcher.Add(ev.Name); err != nil {
				logger.Warn("watch new directory %s: %v", ev.Name, err)
			}
			return
		}
	}

	var out driven.BlobEvent
	switch {
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		out = driven.BlobEvent{Type: driven.BlobUpserted, Name: name}
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		out = driven.BlobEvent{Type: driven.BlobDeleted, Name: name}
	default:
		return
	}

	select {
	case events <- out:
	case <-ctx.Done():
	}
}

// blobName converts an absolute path to a slash-separated blob name.
func (s *BlobStore) blobName(path string) (string, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", fmt.Errorf("relativise %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

// blobPath converts a blob name to an absolute path, rejecting names
// that escape the root.
func (s *BlobStore) blobPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty blob name", domain.ErrInvalidInput)
	}
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: blob name escapes root: %s", domain.ErrInvalidInput, name)
	}
	return path, nil
}
