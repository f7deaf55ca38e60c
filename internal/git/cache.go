package git

import (
	"sync"
	"time"
)

// CachedService wraps an Engine with a TTL cache for the reads a single
// refresh cycle repeats: Branch, Status and NumStat. Write operations
// invalidate the cache so the next read is fresh, and the session calls
// Invalidate at the start of every refresh.
//
// Without the cache, StageAll re-runs status right after the refresh that
// drew the screen, and each section's numstat is requested once per entry
// instead of once per pass.
type CachedService struct {
	inner Engine
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	val    interface{}
	err    error
	expiry time.Time
}

// Compile-time check.
var _ Engine = (*CachedService)(nil)

// NewCachedService wraps an existing Engine with a TTL cache.
func NewCachedService(inner Engine, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cacheEntry, 8),
	}
}

// Invalidate clears all cached entries.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 8)
	c.mu.Unlock()
}

func (c *CachedService) get(key string) (val interface{}, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || c.now().After(e.expiry) {
		return nil, false, nil
	}
	return e.val, true, e.err
}

func (c *CachedService) set(key string, val interface{}, err error) {
	c.mu.Lock()
	c.cache[key] = cacheEntry{val: val, err: err, expiry: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// invalidateAndReturn is a helper for write methods. Failed writes may
// still have touched the index, so the cache is dropped either way.
func (c *CachedService) invalidateAndReturn(err error) error {
	c.Invalidate()
	return err
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot delegates to the inner engine.
func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

// GitDir delegates to the inner engine.
func (c *CachedService) GitDir() string { return c.inner.GitDir() }

// Branch returns the HEAD description (cached).
func (c *CachedService) Branch() BranchInfo {
	if v, ok, _ := c.get("branch"); ok {
		return v.(BranchInfo)
	}
	v := c.inner.Branch()
	c.set("branch", v, nil)
	return v
}

// ── Raw status & diff ───────────────────────────────────────────────────────

// Status returns the raw status records (cached).
func (c *CachedService) Status() ([]StatusRecord, error) {
	if v, ok, err := c.get("status"); ok {
		return v.([]StatusRecord), err
	}
	v, err := c.inner.Status()
	c.set("status", v, err)
	return v, err
}

// NumStat returns the section's line statistics (cached).
func (c *CachedService) NumStat(section Section) (map[string]NumStat, error) {
	key := "numstat:" + section.String()
	if v, ok, err := c.get(key); ok {
		return v.(map[string]NumStat), err
	}
	v, err := c.inner.NumStat(section)
	c.set(key, v, err)
	return v, err
}

// Diff delegates to the inner engine; patches are requested once per
// selection change and are not worth holding.
func (c *CachedService) Diff(section Section, path, oldPath string) (string, error) {
	return c.inner.Diff(section, path, oldPath)
}

// ReadWorktreeFile delegates to the inner engine.
func (c *CachedService) ReadWorktreeFile(path string) ([]byte, error) {
	return c.inner.ReadWorktreeFile(path)
}

// ── Mutations (invalidate) ──────────────────────────────────────────────────

// Stage delegates and invalidates.
func (c *CachedService) Stage(paths ...string) error {
	return c.invalidateAndReturn(c.inner.Stage(paths...))
}

// Unstage delegates and invalidates.
func (c *CachedService) Unstage(paths ...string) error {
	return c.invalidateAndReturn(c.inner.Unstage(paths...))
}

// DiscardWorktree delegates and invalidates.
func (c *CachedService) DiscardWorktree(paths ...string) error {
	return c.invalidateAndReturn(c.inner.DiscardWorktree(paths...))
}

// RemoveUntracked delegates and invalidates.
func (c *CachedService) RemoveUntracked(paths ...string) error {
	return c.invalidateAndReturn(c.inner.RemoveUntracked(paths...))
}
