package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"certbank-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ExportLoader fetches the latest export from the backing store.
type ExportLoader interface {
	Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error)
}

// ExportCache caches the latest export per certification with TTL to avoid
// repeated store hits. Exports are immutable, so entries only go stale when a
// new row is created, which invalidates them.
type ExportCache struct {
	loader ExportLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[int64]cachedExport
}

type cachedExport struct {
	file      domain.JsonlFile
	expiresAt time.Time
}

func NewExportCache(loader ExportLoader, ttl time.Duration) *ExportCache {
	return &ExportCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int64]cachedExport),
	}
}

func (c *ExportCache) Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[certificacaoID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		file := entry.file
		return &file, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(strconv.FormatInt(certificacaoID, 10), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[certificacaoID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			file := entry.file
			return &file, nil
		}
		c.mu.RUnlock()

		file, err := c.loader.Latest(ctx, certificacaoID)
		if err != nil {
			return nil, err
		}
		if file == nil {
			// Nothing to cache; a certification with no exports stays a miss.
			return (*domain.JsonlFile)(nil), nil
		}

		c.mu.Lock()
		c.cache[certificacaoID] = cachedExport{
			file:      *file,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return file, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.JsonlFile), nil
}

func (c *ExportCache) Invalidate(ctx context.Context, certificacaoID int64) error {
	c.mu.Lock()
	delete(c.cache, certificacaoID)
	c.mu.Unlock()
	return nil
}

func (c *ExportCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
