package catalog

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/gamelist/pkg/constants"
)

// Cached memoizes lookups against a wrapped Client for the lifetime of one
// process. Duplicate titles in a sheet cost a single upstream call. Errors are
// never cached.
type Cached struct {
	next  Client
	store *gocache.Cache
}

// NewCached wraps next with a TTL cache. A zero ttl uses the default.
func NewCached(next Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = constants.LookupCacheTTL
	}
	return &Cached{
		next:  next,
		store: gocache.New(ttl, constants.LookupCacheCleanupInterval),
	}
}

// LookupByTitle implements Client.
func (c *Cached) LookupByTitle(ctx context.Context, title string) ([]Entry, error) {
	key := "title:" + strings.ToLower(strings.TrimSpace(title))
	if v, ok := c.store.Get(key); ok {
		return v.([]Entry), nil
	}

	entries, err := c.next.LookupByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, entries, gocache.DefaultExpiration)
	return entries, nil
}

// LookupByID implements Client. A not-found answer is cached as well.
func (c *Cached) LookupByID(ctx context.Context, id string) (*Entry, error) {
	key := "id:" + strings.TrimSpace(id)
	if v, ok := c.store.Get(key); ok {
		return v.(*Entry), nil
	}

	entry, err := c.next.LookupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, entry, gocache.DefaultExpiration)
	return entry, nil
}

// Len returns the number of cached lookups.
func (c *Cached) Len() int {
	return c.store.ItemCount()
}
