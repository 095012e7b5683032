package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"civic-quiz/internal/cache"
	"civic-quiz/internal/domain"
)

func countingParse(calls *int32) func(string) domain.ParsedContent {
	return func(raw string) domain.ParsedContent {
		atomic.AddInt32(calls, 1)
		return domain.ParsedContent{
			IsValid:  true,
			Content:  map[string]interface{}{"topic": raw},
			Errors:   []string{"direct: ok"},
			Strategy: "direct",
		}
	}
}

func TestParseCache_MissThenHit(t *testing.T) {
	store := newMemoryCache()
	pc := NewParseCache(store, time.Hour, zap.NewNop())
	var calls int32
	ctx := context.Background()

	first, hit := pc.GetOrParse(ctx, "payload", countingParse(&calls))
	assert.False(t, hit)
	assert.True(t, first.IsValid)

	second, hit := pc.GetOrParse(ctx, "payload", countingParse(&calls))
	assert.True(t, hit)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Strategy, second.Strategy)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err := store.Get(ctx, cache.ParsedContentKey("payload"))
	assert.NoError(t, err)
}

func TestParseCache_CacheErrorsFallBackToParsing(t *testing.T) {
	mockCache := new(MockCache)
	pc := NewParseCache(mockCache, time.Minute, zap.NewNop())
	key := cache.ParsedContentKey("payload")

	mockCache.On("Get", mock.Anything, key).Return("", errors.New("redis: connection refused")).Once()
	mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), time.Minute).Return(errors.New("redis: connection refused")).Once()

	var calls int32
	parsed, hit := pc.GetOrParse(context.Background(), "payload", countingParse(&calls))

	assert.False(t, hit)
	assert.True(t, parsed.IsValid)
	assert.Equal(t, int32(1), calls)
	mockCache.AssertExpectations(t)
}

func TestParseCache_UndecodableEntryIsReplaced(t *testing.T) {
	store := newMemoryCache()
	ctx := context.Background()
	key := cache.ParsedContentKey("payload")
	require.NoError(t, store.Set(ctx, key, "not json", 0))
	pc := NewParseCache(store, 0, nil)

	var calls int32
	_, hit := pc.GetOrParse(ctx, "payload", countingParse(&calls))

	assert.False(t, hit)
	assert.Equal(t, int32(1), calls)
	stored, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.NotEqual(t, "not json", stored)
}

func TestParseCache_NilCache(t *testing.T) {
	pc := NewParseCache(nil, 0, nil)
	var calls int32

	pc.GetOrParse(context.Background(), "payload", countingParse(&calls))
	_, hit := pc.GetOrParse(context.Background(), "payload", countingParse(&calls))

	assert.False(t, hit)
	assert.Equal(t, int32(2), calls)
}

func TestParseCache_ConcurrentCallsShareOneParse(t *testing.T) {
	pc := NewParseCache(nil, 0, nil)
	release := make(chan struct{})
	var calls int32
	parse := func(raw string) domain.ParsedContent {
		atomic.AddInt32(&calls, 1)
		<-release
		return domain.ParsedContent{IsValid: true}
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parsed, _ := pc.GetOrParse(context.Background(), "same payload", parse)
			assert.True(t, parsed.IsValid)
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
