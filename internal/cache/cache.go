// Package cache provides an opt-in, caller-owned cache in front of table and
// link sources. It uses patrickmn/go-cache for TTL-based expiry; nothing is
// cached unless a source is explicitly wrapped.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/kolmap/pkg/constants"
	"github.com/agentstation/kolmap/pkg/links"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/table"
)

// Cache wraps go-cache with the TTL and invalidation used by the sources.
type Cache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		store: gocache.New(ttl, constants.CacheCleanupInterval),
		ttl:   ttl,
	}
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value in the cache with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Invalidate removes all items so the next read goes to the source.
func (c *Cache) Invalidate() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Source caches the tables of a pipeline.TableSource. Cached tables are
// shared between callers and must be treated as read-only.
type Source struct {
	*Cache
	next pipeline.TableSource
}

// NewSource wraps next with a cache of the given TTL.
func NewSource(next pipeline.TableSource, ttl time.Duration) *Source {
	return &Source{Cache: New(ttl), next: next}
}

// Name returns the wrapped source's name.
func (s *Source) Name() string {
	return s.next.Name()
}

// FetchTable returns the cached table or fetches and caches it. Failures are
// not cached.
func (s *Source) FetchTable(ctx context.Context, name string) (*table.Raw, error) {
	key := "table:" + name
	if v, ok := s.Get(key); ok {
		logging.FromContext(ctx).Debug().Str("key", key).Msg("cache hit")
		return v.(*table.Raw), nil
	}
	raw, err := s.next.FetchTable(ctx, name)
	if err != nil {
		return nil, err
	}
	s.Set(key, raw)
	return raw, nil
}

// Lister caches folder listings of a links.Lister.
type Lister struct {
	*Cache
	next links.Lister
}

// NewLister wraps next with a cache of the given TTL.
func NewLister(next links.Lister, ttl time.Duration) *Lister {
	return &Lister{Cache: New(ttl), next: next}
}

// ListFiles returns the cached listing or lists the folder and caches it.
// Failures are not cached.
func (l *Lister) ListFiles(ctx context.Context, folderID string, kind links.Kind) ([]links.File, error) {
	key := "files:" + string(kind) + ":" + folderID
	if v, ok := l.Get(key); ok {
		return v.([]links.File), nil
	}
	files, err := l.next.ListFiles(ctx, folderID, kind)
	if err != nil {
		return nil, err
	}
	l.Set(key, files)
	return files, nil
}
