// Package lookup keeps the option lists of selection fields (clients,
// services, pieces) in memory and refreshes them periodically.
package lookup

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Option is one selectable entity.
type Option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Source fetches a full option list.
type Source func(ctx context.Context) ([]Option, error)

type Cache struct {
	mu     sync.RWMutex
	lists  map[string][]Option
	byID   map[string]map[int64]Option
	logger *zap.SugaredLogger
}

// New fetches every source once and, with a positive interval, refreshes
// them in the background until ctx is done. A failed refresh keeps the
// previous list.
func New(ctx context.Context, sources map[string]Source, interval time.Duration, logger *zap.SugaredLogger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &Cache{lists: map[string][]Option{}, byID: map[string]map[int64]Option{}, logger: logger}
	for name, src := range sources {
		opts, err := src(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s options: %w", name, err)
		}
		c.set(name, opts)
	}
	if interval > 0 {
		go c.start(ctx, sources, interval)
	}
	return c, nil
}

func (c *Cache) start(ctx context.Context, sources map[string]Source, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for name, src := range sources {
				opts, err := src(ctx)
				if err != nil {
					c.logger.Warnw("refresh options failed", "list", name, "error", err)
					continue
				}
				c.set(name, opts)
			}
		}
	}
}

func (c *Cache) set(name string, opts []Option) {
	sorted := append([]Option(nil), opts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })
	idx := make(map[int64]Option, len(sorted))
	for _, o := range sorted {
		idx[o.ID] = o
	}
	c.mu.Lock()
	c.lists[name] = sorted
	c.byID[name] = idx
	c.mu.Unlock()
}

// Options returns a copy of a list sorted by label.
func (c *Cache) Options(name string) []Option {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Option(nil), c.lists[name]...)
}

// Label returns the label of id in a list.
func (c *Cache) Label(name string, id int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.byID[name][id]
	return o.Label, ok
}

// Lists returns the list names in order.
func (c *Cache) Lists() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.lists))
	for n := range c.lists {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
