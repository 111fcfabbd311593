package draftkings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fetcher produces fresh lines for a board; *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, board Board) (*Lines, error)
}

// Store holds cached lines. Load reports a miss with ok == false.
type Store interface {
	Load(ctx context.Context, board Board) (lines *Lines, ok bool, err error)
	Save(ctx context.Context, lines *Lines, ttl time.Duration) error
	Delete(ctx context.Context, board Board) error
}

// Cache serves lines from a Store and refetches them once they expire.
type Cache struct {
	fetch Fetcher
	store Store
	ttl   time.Duration
	log   *zap.Logger

	mu sync.Mutex
}

// NewCache wraps f. A nil store keeps lines in process memory.
func NewCache(f Fetcher, store Store, ttl time.Duration, log *zap.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{fetch: f, store: store, ttl: ttl, log: log.With(zap.String("component", "lines_cache"))}
}

// Get returns cached lines for board, fetching them on a miss.
func (c *Cache) Get(ctx context.Context, board Board) (*Lines, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines, ok, err := c.store.Load(ctx, board)
	if err != nil {
		// A broken backend only costs a refetch.
		c.log.Warn("cache load failed", zap.String("board", string(board)), zap.Error(err))
	}
	if ok {
		return lines, nil
	}
	return c.refresh(ctx, board)
}

// Refresh fetches board now and replaces the cached entry.
func (c *Cache) Refresh(ctx context.Context, board Board) (*Lines, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh(ctx, board)
}

func (c *Cache) refresh(ctx context.Context, board Board) (*Lines, error) {
	lines, err := c.fetch.Fetch(ctx, board)
	if err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, lines, c.ttl); err != nil {
		c.log.Warn("cache save failed", zap.String("board", string(board)), zap.Error(err))
	}
	return lines, nil
}

// Invalidate drops the cached entries for boards, or for every board when none are named.
func (c *Cache) Invalidate(ctx context.Context, boards ...Board) error {
	if len(boards) == 0 {
		boards = []Board{Pitchers, Batters}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range boards {
		if err := c.store.Delete(ctx, b); err != nil {
			return fmt.Errorf("invalidate %s: %w", b, err)
		}
	}
	return nil
}

type memoryEntry struct {
	lines   *Lines
	expires time.Time
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Board]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[Board]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, board Board) (*Lines, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[board]
	if !ok || !s.now().Before(e.expires) {
		delete(s.entries, board)
		return nil, false, nil
	}
	return e.lines, true, nil
}

func (s *MemoryStore) Save(_ context.Context, lines *Lines, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[lines.Board] = memoryEntry{lines: lines, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, board Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, board)
	return nil
}
