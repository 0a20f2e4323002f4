package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
)

// TagCacheStore caches the distinct ingredient and type lists that feed the
// filter dropdowns. Entries expire on their own; writes to recipes also
// invalidate them eagerly.
type TagCacheStore struct {
	rdb     *redis.Client
	listTTL time.Duration
}

var _ contract.ITagCache = (*TagCacheStore)(nil)

func NewTagCacheStore(rdb *redis.Client) *TagCacheStore {
	return &TagCacheStore{
		rdb:     rdb,
		listTTL: 30 * time.Minute,
	}
}

func (c *TagCacheStore) GetList(ctx context.Context, key string) ([]string, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		// Treat a corrupt entry as a miss.
		return nil, false, nil
	}
	return values, true, nil
}

func (c *TagCacheStore) SetList(ctx context.Context, key string, values []string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.listTTL).Err()
}

func (c *TagCacheStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
