package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linktracker/linktracker/internal/domain"
	"github.com/linktracker/linktracker/internal/logger"
)

// fakeFetcher counts calls and serves canned results or an error.
type fakeFetcher struct {
	calls   int
	results []domain.Bookmark
	err     error
}

func (f *fakeFetcher) FetchBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func bookmark(id int, title string) domain.Bookmark {
	return domain.Bookmark{ID: id, Title: title, Link: "https://example.com", Tags: []string{}}
}

func newTestCache(f Fetcher) *BookmarkCache {
	return New(f, logger.NewNop(), DefaultTTL)
}

func TestGetAllFetchesWhenEmpty(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	items, err := c.GetAll(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("items = %v", items)
	}
}

func TestGetAllFreshCacheSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	items, err := c.GetAll(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 (fresh cache must not refetch)", fetcher.calls)
	}
	if len(items) != 1 {
		t.Errorf("items = %v", items)
	}
}

func TestGetAllExpiredCacheRefetches(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	now := time.Now()
	c.SetClock(func() time.Time { return now })
	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	fetcher.results = []domain.Bookmark{bookmark(2, "b")}
	c.SetClock(func() time.Time { return now.Add(DefaultTTL + time.Minute) })

	items, err := c.GetAll(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("items = %v, want replaced set", items)
	}
}

func TestGetAllForceRefreshIgnoresTTL(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}
	if _, err := c.GetAll(context.Background(), true); err != nil {
		t.Fatalf("forced GetAll() error = %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}
}

func TestGetAllFallsBackOnFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	fetcher.err = errors.New("github is down")
	items, err := c.GetAll(context.Background(), true)
	if err != nil {
		t.Fatalf("GetAll() with non-empty cache should swallow fetch failure, got %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("items = %v, want pre-failure snapshot", items)
	}
}

func TestGetAllPropagatesFailureWhenEmpty(t *testing.T) {
	fetchErr := errors.New("github is down")
	fetcher := &fakeFetcher{err: fetchErr}
	c := newTestCache(fetcher)

	if _, err := c.GetAll(context.Background(), false); !errors.Is(err, fetchErr) {
		t.Errorf("GetAll() error = %v, want %v (nothing to fall back to)", err, fetchErr)
	}
}

func TestInsertPrependsWithoutFetch(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	c.Insert(bookmark(2, "new"))

	items, err := c.GetAll(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 (Insert must not touch the network)", fetcher.calls)
	}
	if len(items) != 2 || items[0].ID != 2 {
		t.Errorf("items = %v, want inserted bookmark first", items)
	}
}

func TestReplaceOverwritesInPlace(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a"), bookmark(2, "b")}}
	c := newTestCache(fetcher)
	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	c.Replace(1, bookmark(1, "renamed"))

	items, _ := c.GetAll(context.Background(), false)
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 (Replace must not touch the network)", fetcher.calls)
	}
	if items[0].Title != "renamed" || items[1].Title != "b" {
		t.Errorf("items = %v, want id 1 renamed in place", items)
	}
}

func TestReplaceMissIsNoOp(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)
	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	c.Replace(99, bookmark(99, "ghost"))

	items, _ := c.GetAll(context.Background(), false)
	if len(items) != 1 || items[0].ID != 1 || items[0].Title != "a" {
		t.Errorf("items = %v, want untouched single bookmark", items)
	}
}

func TestRemoveFiltersAndIsIdempotent(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a"), bookmark(2, "b")}}
	c := newTestCache(fetcher)
	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("warmup GetAll() error = %v", err)
	}

	c.Remove(1)
	c.Remove(1)

	items, _ := c.GetAll(context.Background(), false)
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 (Remove must not touch the network)", fetcher.calls)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("items = %v, want only id 2", items)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	items, err := c.GetAll(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	items[0].Title = "mutated by caller"

	again, _ := c.GetAll(context.Background(), false)
	if again[0].Title != "a" {
		t.Error("GetAll must return a copy, caller mutation leaked into the cache")
	}
}

func TestLastRefreshZeroUntilFetch(t *testing.T) {
	fetcher := &fakeFetcher{results: []domain.Bookmark{bookmark(1, "a")}}
	c := newTestCache(fetcher)

	if !c.LastRefresh().IsZero() {
		t.Error("LastRefresh() should be zero before any fetch")
	}
	if _, err := c.GetAll(context.Background(), false); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if c.LastRefresh().IsZero() {
		t.Error("LastRefresh() should be set after a successful fetch")
	}
}
