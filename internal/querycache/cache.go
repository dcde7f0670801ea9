// Package querycache holds read results keyed by Key until a mutation invalidates them.
//
// Concurrent reads of one key share a single fetch. A fetch that completes after
// its key was invalidated is handed to its waiters but not stored.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"artisanhub/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("querycache: closed")

type Cache struct {
	mu      sync.Mutex
	entries map[Key]any
	closed  bool

	// epochs holds the generation each read key was first fetched under; an
	// invalidation bumps gen and forgets the covered keys, so a fill started
	// earlier no longer matches and is dropped.
	epochs map[Key]uint64
	gen    uint64

	group  singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

func New(logger *zap.Logger) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		entries: make(map[Key]any),
		epochs:  make(map[Key]uint64),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logging.OrNop(logger).Named("querycache"),
	}
}

// Get returns the cached value of key or runs fetch to fill it. fetch runs under
// the cache's own context, so one waiter giving up does not fail the others;
// Close cancels it.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v.(T), nil
	}
	epoch, seen := c.epochs[key]
	if !seen {
		epoch = c.gen
		c.epochs[key] = epoch
	}
	c.mu.Unlock()

	ch := c.group.DoChan(string(key)+"@"+strconv.FormatUint(epoch, 10), func() (any, error) {
		v, err := fetch(c.ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, epoch, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("querycache: %s holds %T", key, res.Val)
		}
		return v, nil
	}
}

func (c *Cache) store(key Key, epoch uint64, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.epochs[key]; c.closed || !ok || cur != epoch {
		c.logger.Debug("dropping stale fill", zap.String("key", string(key)))
		return
	}
	c.entries[key] = v
}

// Invalidate drops every entry at or below each prefix. In-flight fills of those
// keys will not be stored.
func (c *Cache) Invalidate(prefixes ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.gen++
	for _, prefix := range prefixes {
		for k := range c.entries {
			if k.Covers(prefix) {
				delete(c.entries, k)
			}
		}
		for k := range c.epochs {
			if k.Covers(prefix) {
				delete(c.epochs, k)
			}
		}
		c.logger.Debug("invalidated", zap.String("prefix", string(prefix)))
	}
}

// Peek returns the stored value of key without fetching.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Close drops all entries and cancels running fills. It is idempotent.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.entries = nil
	c.epochs = nil
	c.cancel()
}
