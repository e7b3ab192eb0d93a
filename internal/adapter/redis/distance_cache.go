package redis

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/fare"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
)

const keyPrefix = "cabshare:distance:"

// DistanceCache remembers live distances per unordered place pair.
// Redis failures never fail a lookup; they only skip the cache.
type DistanceCache struct {
	client *goredis.Client
	next   fare.LiveDistance
	ttl    time.Duration
	log    logger.Logger
}

func NewDistanceCache(client *goredis.Client, next fare.LiveDistance, ttl time.Duration, log logger.Logger) *DistanceCache {
	return &DistanceCache{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    log,
	}
}

func (c *DistanceCache) DistanceKm(ctx context.Context, from, to string) (float64, error) {
	key := distanceKey(from, to)

	km, err := c.get(ctx, key)
	switch {
	case err == nil:
		metrics.DistanceCacheLookups.WithLabelValues("hit").Inc()
		return km, nil
	case errors.Is(err, goredis.Nil):
		metrics.DistanceCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.DistanceCacheLookups.WithLabelValues("error").Inc()
		c.log.Warn(wrap.WithAction(ctx, types.ActionExternalServiceFailed), "distance cache read failed", "key", key, "error", err.Error())
	}

	km, err = c.next.DistanceKm(ctx, from, to)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatFloat(km, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.log.Warn(wrap.WithAction(ctx, types.ActionExternalServiceFailed), "distance cache write failed", "key", key, "error", err.Error())
	}

	return km, nil
}

func (c *DistanceCache) get(ctx context.Context, key string) (float64, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	km, err := strconv.ParseFloat(raw, 64)
	if err != nil || km <= 0 {
		// unreadable entries count as a miss and get overwritten
		return 0, goredis.Nil
	}
	return km, nil
}

// distanceKey is direction independent: A->B and B->A share an entry.
func distanceKey(from, to string) string {
	a := strings.ToLower(strings.TrimSpace(from))
	b := strings.ToLower(strings.TrimSpace(to))
	if b < a {
		a, b = b, a
	}
	return keyPrefix + a + "|" + b
}
