package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Storefront listing per branch: storefront:{branch_id} -> []ProductResponse
	keyStorefront = "storefront:%s"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Storefront caches branch product listings. A nil client disables
// caching entirely, so the service layer never has to branch on it.
type Storefront struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStorefront(rdb *redis.Client, ttl time.Duration) *Storefront {
	return &Storefront{rdb: rdb, ttl: ttl}
}

func (c *Storefront) Get(ctx context.Context, branchID uuid.UUID) ([]model.ProductResponse, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyStorefront, branchID)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []model.ProductResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *Storefront) Set(ctx context.Context, branchID uuid.UUID, items []model.ProductResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, fmt.Sprintf(keyStorefront, branchID), raw, c.ttl).Err()
}

func (c *Storefront) Invalidate(ctx context.Context, branchID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, fmt.Sprintf(keyStorefront, branchID)).Err()
}
