package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"civic-quiz/internal/cache"
	"civic-quiz/internal/domain"
)

// DefaultParseCacheTTL applies when no TTL is configured.
const DefaultParseCacheTTL = 24 * time.Hour

// ParseCache memoizes parse results by a hash of the raw text. Concurrent
// requests for the same text share one parse. A nil cache only deduplicates.
type ParseCache struct {
	cache  domain.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

func NewParseCache(c domain.Cache, ttl time.Duration, logger *zap.Logger) *ParseCache {
	if ttl <= 0 {
		ttl = DefaultParseCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParseCache{cache: c, ttl: ttl, logger: logger}
}

type cachedParse struct {
	parsed domain.ParsedContent
	hit    bool
}

// GetOrParse returns the cached result for raw, or runs parse and stores its
// outcome. Cache failures are logged and never surface to the caller.
func (pc *ParseCache) GetOrParse(ctx context.Context, raw string, parse func(string) domain.ParsedContent) (domain.ParsedContent, bool) {
	key := cache.ParsedContentKey(raw)
	v, _, _ := pc.group.Do(key, func() (interface{}, error) {
		if parsed, ok := pc.lookup(ctx, key); ok {
			return cachedParse{parsed: parsed, hit: true}, nil
		}
		parsed := parse(raw)
		pc.store(ctx, key, parsed)
		return cachedParse{parsed: parsed}, nil
	})
	res := v.(cachedParse)
	return res.parsed, res.hit
}

func (pc *ParseCache) lookup(ctx context.Context, key string) (domain.ParsedContent, bool) {
	var parsed domain.ParsedContent
	if pc.cache == nil {
		return parsed, false
	}
	data, err := pc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			pc.logger.Warn("Parse cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return parsed, false
	}
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		pc.logger.Warn("Discarding undecodable parse cache entry", zap.String("key", key), zap.Error(err))
		return parsed, false
	}
	pc.logger.Debug("Parse cache hit", zap.String("key", key))
	return parsed, true
}

func (pc *ParseCache) store(ctx context.Context, key string, parsed domain.ParsedContent) {
	if pc.cache == nil {
		return
	}
	data, err := json.Marshal(parsed)
	if err != nil {
		pc.logger.Warn("Failed to encode parse result for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := pc.cache.Set(ctx, key, string(data), pc.ttl); err != nil {
		pc.logger.Warn("Parse cache store failed", zap.String("key", key), zap.Error(err))
	}
}
