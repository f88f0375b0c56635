// Package persistence saves and restores a tree.Tree's edit state as a
// named, schema-versioned JSON document in a blob store, along with a
// small "most recently used" marker so a nameless save/load can find its
// way back without the caller repeating the name.
package persistence

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"

	"github.com/shyptr/gqt/tree"
)

const (
	latestMarkerKey = ".latest"
	keyPrefix       = "queries/"
	keySuffix       = ".json"
)

// Store persists named tree snapshots in a gocloud.dev/blob bucket opened
// from a URL. This package registers only the file:// driver; other
// schemes open only if their driver is linked in elsewhere. Keys depend
// on the query name alone, not on the endpoint. The bucket is opened
// lazily on first use and kept open for the Store's lifetime.
type Store struct {
	bucketURL string
	bucket    *blob.Bucket
	Logger    *log.Logger
}

func NewStore(bucketURL string) *Store {
	return &Store{bucketURL: bucketURL, Logger: log.New(os.Stderr, "", 0)}
}

func (s *Store) ensureOpen(ctx context.Context) (*blob.Bucket, error) {
	if s.bucket != nil {
		return s.bucket, nil
	}
	b, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, fmt.Errorf("persistence: open bucket %q: %w", s.bucketURL, err)
	}
	s.bucket = b
	return b, nil
}

func (s *Store) Close() error {
	if s.bucket == nil {
		return nil
	}
	return s.bucket.Close()
}

func keyFor(name string) string {
	return keyPrefix + name + keySuffix
}

// Save writes t's snapshot under name, and, as a side effect, records
// name as the most recently saved query so a later nameless Load can find
// it.
func (s *Store) Save(ctx context.Context, name string, t *tree.Tree) error {
	data, err := t.ToJSON()
	if err != nil {
		return fmt.Errorf("persistence: encode snapshot: %w", err)
	}
	bucket, err := s.ensureOpen(ctx)
	if err != nil {
		return err
	}
	if err := bucket.WriteAll(ctx, keyFor(name), data, nil); err != nil {
		return fmt.Errorf("persistence: write %q: %w", name, err)
	}
	return bucket.WriteAll(ctx, keyPrefix+latestMarkerKey, []byte(name), nil)
}

// Load restores name into t. If name is empty, the most recently saved
// query's name is used instead; ErrNoRecentQuery is returned if there is
// none.
func (s *Store) Load(ctx context.Context, name string, t *tree.Tree) error {
	bucket, err := s.ensureOpen(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		latest, err := bucket.ReadAll(ctx, keyPrefix+latestMarkerKey)
		if err != nil {
			s.Logger.Printf("persistence: no recent query marker in %q", s.bucketURL)
			return ErrNoRecentQuery
		}
		name = string(latest)
	}
	data, err := bucket.ReadAll(ctx, keyFor(name))
	if err != nil {
		return fmt.Errorf("persistence: read %q: %w", name, err)
	}
	return t.FromJSON(data)
}

// Delete removes a single saved query, clearing the "most recent" marker
// if it pointed at the one being removed.
func (s *Store) Delete(ctx context.Context, name string) error {
	bucket, err := s.ensureOpen(ctx)
	if err != nil {
		return err
	}
	if latest, err := bucket.ReadAll(ctx, keyPrefix+latestMarkerKey); err == nil && string(latest) == name {
		_ = bucket.Delete(ctx, keyPrefix+latestMarkerKey)
		s.Logger.Printf("persistence: cleared most-recent marker pointing at deleted query %q", name)
	}
	return bucket.Delete(ctx, keyFor(name))
}

// Clear removes every saved query and the "most recent" marker.
func (s *Store) Clear(ctx context.Context) error {
	names, err := s.List(ctx)
	if err != nil {
		return err
	}
	bucket, err := s.ensureOpen(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		if err := bucket.Delete(ctx, keyFor(n)); err != nil {
			return err
		}
	}
	_ = bucket.Delete(ctx, keyPrefix+latestMarkerKey)
	return nil
}

// List enumerates saved query names, alphabetically.
func (s *Store) List(ctx context.Context) ([]string, error) {
	bucket, err := s.ensureOpen(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	iter := bucket.List(&blob.ListOptions{Prefix: keyPrefix})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("persistence: list: %w", err)
		}
		base := strings.TrimPrefix(obj.Key, keyPrefix)
		if base == latestMarkerKey || !strings.HasSuffix(base, keySuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(base, keySuffix))
	}
	sort.Strings(names)
	return names, nil
}

// ErrNoRecentQuery is returned by Load("", ...) when the bucket holds no
// "most recent" marker: nothing was saved yet, or Delete/Clear removed it.
var ErrNoRecentQuery = fmt.Errorf("persistence: no recently saved query")
