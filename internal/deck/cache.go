package deck

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultIndexTTL matches the public Cache-Control max-age on index reads.
const defaultIndexTTL = 60 * time.Second

// Cache is the Redis-backed IndexCache. Resolution results depend only on
// persisted deck/question state, so a short shared TTL is safe.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ IndexCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultIndexTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(slug string) string {
	return "deckindex:" + slug
}

func (c *Cache) Get(ctx context.Context, slug string) (*IndexResponse, error) {
	data, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var resp IndexResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Cache) Set(ctx context.Context, slug string, resp IndexResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(slug), data, c.ttl).Err()
}
