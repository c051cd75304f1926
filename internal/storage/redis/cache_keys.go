package redis

import (
	"context"
	"fmt"
	"time"
)

const RateLimitWindowTTL = 1 * time.Minute

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:user:%d", userID)
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	key := RateLimitKey(userID)
	return c.IncrementWithExpiry(ctx, key, RateLimitWindowTTL)
}

func (c *Cache) GetUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	key := RateLimitKey(userID)
	return c.GetInt(ctx, key)
}
