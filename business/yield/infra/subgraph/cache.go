package subgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/logger"
)

// PairDayDataFetcher is the call being cached.
type PairDayDataFetcher interface {
	LatestPairDayData(ctx context.Context, amm domain.AMM, pair common.Address) (*domain.TradingPairSnapshot, error)
}

// CachedClient keeps successful pair day data for a TTL. Failures are not
// cached.
type CachedClient struct {
	next   PairDayDataFetcher
	cache  *ristretto.Cache
	ttl    time.Duration
	logger logger.LoggerInterface
}

// NewCachedClient wraps next with a cache of at most maxEntries snapshots.
func NewCachedClient(next PairDayDataFetcher, ttl time.Duration, maxEntries int64, log logger.LoggerInterface) (*CachedClient, error) {
	if maxEntries <= 0 {
		maxEntries = 1024
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries, // every entry costs 1
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create pair day data cache: %w", err)
	}

	return &CachedClient{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}, nil
}

func cacheKey(amm domain.AMM, pair common.Address) string {
	return amm.String() + ":" + pair.Hex()
}

// LatestPairDayData serves from cache when possible.
func (c *CachedClient) LatestPairDayData(ctx context.Context, amm domain.AMM, pair common.Address) (*domain.TradingPairSnapshot, error) {
	key := cacheKey(amm, pair)

	if v, ok := c.cache.Get(key); ok {
		if snap, ok := v.(domain.TradingPairSnapshot); ok {
			c.logger.Debug(ctx, "pair day data cache hit", "amm", amm.String(), "pair", pair.Hex())
			return &snap, nil
		}
	}

	snap, err := c.next.LatestPairDayData(ctx, amm, pair)
	if err != nil {
		return nil, err
	}

	// Store a copy so callers cannot mutate cached state.
	c.cache.SetWithTTL(key, *snap, 1, c.ttl)
	c.cache.Wait()
	return snap, nil
}

// Close releases the cache goroutines.
func (c *CachedClient) Close() {
	c.cache.Close()
}

// Ping delegates to the wrapped client when it supports health checks.
func (c *CachedClient) Ping(ctx context.Context) error {
	if p, ok := c.next.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
