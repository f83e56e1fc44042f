package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"certbank-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ExportLoader fetches the latest export from the backing store.
type ExportLoader interface {
	Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error)
}

// ExportCache keeps the latest export per certification in Redis as:
// SET jsonl:latest:{certificacaoID} {json-encoded row} EX ttl
// and falls back to the loader on cache miss. Creating a new export deletes
// the key so the next lookup loads the fresh row.
type ExportCache struct {
	client *redis.Client
	loader ExportLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewExportCache(client *redis.Client, loader ExportLoader, ttl time.Duration) *ExportCache {
	return &ExportCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ExportCache) Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error) {
	key := c.key(certificacaoID)

	if file, ok := c.getCached(ctx, key); ok {
		return file, nil
	}

	result, err, _ := c.sf.Do(strconv.FormatInt(certificacaoID, 10), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if file, ok := c.getCached(ctx, key); ok {
			return file, nil
		}

		file, err := c.loader.Latest(ctx, certificacaoID)
		if err != nil {
			return nil, err
		}
		if file == nil {
			return (*domain.JsonlFile)(nil), nil
		}

		if raw, err := json.Marshal(file); err == nil {
			// best-effort fill
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return file, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.JsonlFile), nil
}

func (c *ExportCache) Invalidate(ctx context.Context, certificacaoID int64) error {
	return c.client.Del(ctx, c.key(certificacaoID)).Err()
}

func (c *ExportCache) getCached(ctx context.Context, key string) (*domain.JsonlFile, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both count as a miss; the loader answers.
		return nil, false
	}
	var file domain.JsonlFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, false
	}
	return &file, true
}

func (c *ExportCache) key(certificacaoID int64) string {
	return "jsonl:latest:" + strconv.FormatInt(certificacaoID, 10)
}

func (c *ExportCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
