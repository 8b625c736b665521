package request

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheTTL = 5 * time.Minute

// Cache keeps fetched request lists per organisation in Redis so repeated
// list loads skip the platform round trip. Any mutation invalidates the
// organisation's entry.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func listKey(orgID string) string {
	return "requests:org:" + orgID
}

// GetList returns the cached request list for an organisation, or nil on a
// miss. Cache errors degrade to a miss.
func (c *Cache) GetList(ctx context.Context, orgID string) []*Request {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, listKey(orgID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ request cache read failed: %v", err)
		}
		return nil
	}

	var requests []*Request
	if err := json.Unmarshal([]byte(data), &requests); err != nil {
		return nil
	}
	return requests
}

// SetList stores the request list for an organisation.
func (c *Cache) SetList(ctx context.Context, orgID string, requests []*Request) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(requests)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(orgID), data, listCacheTTL).Err(); err != nil {
		log.Printf("⚠️ request cache write failed: %v", err)
	}
}

// InvalidateList drops the cached list for an organisation.
func (c *Cache) InvalidateList(ctx context.Context, orgID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listKey(orgID)).Err(); err != nil {
		log.Printf("⚠️ request cache invalidation failed: %v", err)
	}
}
