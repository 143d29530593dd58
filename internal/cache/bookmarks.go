package cache

import (
	"context"
	"sync"
	"time"

	"github.com/linktracker/linktracker/internal/domain"
	"github.com/linktracker/linktracker/internal/logger"
)

// DefaultTTL is the staleness window before GetAll re-fetches.
const DefaultTTL = 8 * time.Hour

// Fetcher produces the full current set of bookmarks from the source
// of truth. Implemented by the GitHub client.
type Fetcher interface {
	FetchBookmarks(ctx context.Context) ([]domain.Bookmark, error)
}

// BookmarkCache is the single source of truth for what the UI sees.
// It refreshes lazily from the Fetcher when the TTL expires and keeps
// answering from the last-known-good snapshot when a refresh fails.
//
// The mutex is held across the whole check-fetch-replace sequence so
// two concurrent refreshes cannot interleave their writes.
type BookmarkCache struct {
	mu      sync.Mutex
	fetcher Fetcher
	logger  logger.Logger
	ttl     time.Duration
	now     func() time.Time

	items       []domain.Bookmark
	lastRefresh time.Time
}

func New(fetcher Fetcher, log logger.Logger, ttl time.Duration) *BookmarkCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BookmarkCache{
		fetcher: fetcher,
		logger:  log,
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetAll returns the bookmark set, fetching from upstream only when
// forced, empty, or stale. A failed refresh over a non-empty cache is
// logged and the stale snapshot returned; with nothing to fall back to
// the error propagates.
func (c *BookmarkCache) GetAll(ctx context.Context, forceRefresh bool) ([]domain.Bookmark, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !forceRefresh && len(c.items) > 0 && now.Sub(c.lastRefresh) < c.ttl {
		return c.snapshot(), nil
	}

	c.logger.Info("fetching bookmarks from github")
	items, err := c.fetcher.FetchBookmarks(ctx)
	if err != nil {
		if len(c.items) == 0 {
			return nil, err
		}
		c.logger.Warn("bookmark refresh failed, serving last known snapshot",
			logger.Int("cached", len(c.items)),
			logger.Time("last_refresh", c.lastRefresh),
			logger.Error(err))
		return c.snapshot(), nil
	}

	c.items = items
	c.lastRefresh = now
	c.logger.Info("bookmarks refreshed",
		logger.Int("count", len(items)))
	return c.snapshot(), nil
}

// Insert prepends a bookmark. The caller has already created the
// backing issue; this only reconciles the local view.
func (c *BookmarkCache) Insert(b domain.Bookmark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]domain.Bookmark{b}, c.items...)
}

// Replace overwrites the bookmark with the same id in place. A miss is
// a no-op: the authoritative update already happened upstream.
func (c *BookmarkCache) Replace(id int, b domain.Bookmark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i] = b
			return
		}
	}
}

// Remove drops the bookmark with the given id. Idempotent.
func (c *BookmarkCache) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, b := range c.items {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.items = kept
}

// Len returns the number of cached bookmarks.
func (c *BookmarkCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// LastRefresh returns when the cache last completed a fetch. Zero
// means never.
func (c *BookmarkCache) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastRefresh
}

// SetClock overrides the time source. Test helper.
func (c *BookmarkCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

func (c *BookmarkCache) snapshot() []domain.Bookmark {
	out := make([]domain.Bookmark, len(c.items))
	copy(out, c.items)
	return out
}
