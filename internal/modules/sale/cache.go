package sale

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// HistoryCache holds a store's sales history between writes. Cache failures are
// logged and treated as misses; they never fail a request.
//
// Entries are versioned by a per-store generation. Get reports the generation it
// looked under and Set only fills that generation, so a list read before an
// Invalidate can never be served after it.
type HistoryCache interface {
	Get(ctx context.Context, storeID uuid.UUID) (sales []*Sale, gen int64, ok bool)
	Set(ctx context.Context, storeID uuid.UUID, gen int64, sales []*Sale)
	Invalidate(ctx context.Context, storeID uuid.UUID)
}

// noGeneration tells Set to skip the fill, used when the generation could not be read.
const noGeneration int64 = -1

type RedisHistoryCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisHistoryCache(rdb redis.Cmdable, ttl time.Duration) *RedisHistoryCache {
	return &RedisHistoryCache{rdb: rdb, ttl: ttl}
}

func generationKey(storeID uuid.UUID) string {
	return "sales:store:" + storeID.String() + ":gen"
}

func historyKey(storeID uuid.UUID, gen int64) string {
	return "sales:store:" + storeID.String() + ":" + strconv.FormatInt(gen, 10)
}

func (c *RedisHistoryCache) generation(ctx context.Context, storeID uuid.UUID) int64 {
	key := generationKey(storeID)
	gen, err := c.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to read sales history generation from redis")
		return noGeneration
	}
	return gen
}

func (c *RedisHistoryCache) Get(ctx context.Context, storeID uuid.UUID) ([]*Sale, int64, bool) {
	gen := c.generation(ctx, storeID)
	if gen == noGeneration {
		return nil, noGeneration, false
	}

	key := historyKey(storeID, gen)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Error().Err(err).Str("key", key).Msg("failed to load sales history from redis")
		}
		return nil, gen, false
	}

	var sales []*Sale
	if err := json.Unmarshal(b, &sales); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("dropping unreadable sales history entry")
		c.rdb.Del(ctx, key)
		return nil, gen, false
	}
	return sales, gen, true
}

func (c *RedisHistoryCache) Set(ctx context.Context, storeID uuid.UUID, gen int64, sales []*Sale) {
	if gen == noGeneration {
		return
	}
	key := historyKey(storeID, gen)
	b, err := json.Marshal(sales)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to encode sales history")
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store sales history in redis")
	}
}

// Invalidate moves the store to a new generation; entries of older generations expire on their own.
func (c *RedisHistoryCache) Invalidate(ctx context.Context, storeID uuid.UUID) {
	key := generationKey(storeID)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to bump sales history generation in redis")
	}
}

// NopHistoryCache never caches.
type NopHistoryCache struct{}

func (NopHistoryCache) Get(context.Context, uuid.UUID) ([]*Sale, int64, bool) {
	return nil, noGeneration, false
}
func (NopHistoryCache) Set(context.Context, uuid.UUID, int64, []*Sale) {}
func (NopHistoryCache) Invalidate(context.Context, uuid.UUID)          {}
