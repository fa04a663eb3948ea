package gardenpub

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested note does not exist.
var ErrNotFound = sql.ErrNoRows

// NoteCache is an in-memory cache of published notes and tags with TTL.
type NoteCache struct {
	mu      sync.RWMutex
	notes   []PublishedNote
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewNoteCache creates a NoteCache backed by the given Store.
func NewNoteCache(s *Store, ttl time.Duration) *NoteCache {
	return &NoteCache{store: s, ttl: ttl}
}

func (c *NoteCache) valid() bool {
	return c.notes != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *NoteCache) Invalidate() {
	c.mu.Lock()
	c.notes = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *NoteCache) load() error {
	if c.valid() {
		return nil
	}
	notes, err := c.store.ListNotes("")
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	c.notes = notes
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached notes and tags after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock on reload.
func (c *NoteCache) ensureLoaded() ([]PublishedNote, []string, error) {
	c.mu.RLock()
	if c.valid() {
		notes, tags := c.notes, c.tags
		c.mu.RUnlock()
		return notes, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.notes, c.tags, nil
}

// ListNotes returns published notes, optionally filtered by tag.
func (c *NoteCache) ListNotes(tag string) ([]PublishedNote, error) {
	notes, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return notes, nil
	}
	normalized := normalizeTag(tag)
	var filtered []PublishedNote
	for _, n := range notes {
		for _, t := range n.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, n)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns all unique tags from published notes.
func (c *NoteCache) ListTags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// GetNote returns a single published note by permalink from the cache.
func (c *NoteCache) GetNote(permalink string) (PublishedNote, error) {
	notes, _, err := c.ensureLoaded()
	if err != nil {
		return PublishedNote{}, err
	}
	for _, n := range notes {
		if n.Permalink == permalink {
			return n, nil
		}
	}
	return PublishedNote{}, ErrNotFound
}

// Entry returns the garden's entry note (the one tagged as home), if any.
func (c *NoteCache) Entry() (PublishedNote, bool, error) {
	notes, _, err := c.ensureLoaded()
	if err != nil {
		return PublishedNote{}, false, err
	}
	for _, n := range notes {
		if n.Home() {
			return n, true, nil
		}
	}
	return PublishedNote{}, false, nil
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
