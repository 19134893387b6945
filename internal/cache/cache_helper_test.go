package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTest struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupCache(t *testing.T) *CacheHelper {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheHelper(client, "speaking:test:")
}

func TestCacheHelper_SetGetDelete(t *testing.T) {
	helper := setupCache(t)
	ctx := context.Background()

	value := cachedTest{ID: 1, Title: "Part 1"}
	require.NoError(t, helper.Set(ctx, "id:1", value, time.Minute))

	var got cachedTest
	require.NoError(t, helper.Get(ctx, "id:1", &got))
	assert.Equal(t, value, got)

	require.NoError(t, helper.Delete(ctx, "id:1"))
	err := helper.Get(ctx, "id:1", &got)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper := setupCache(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "list", []cachedTest{{ID: 1}}, time.Minute))
	require.NoError(t, helper.Set(ctx, "id:1", cachedTest{ID: 1}, time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "list*"))

	var listed []cachedTest
	assert.ErrorIs(t, helper.Get(ctx, "list", &listed), ErrCacheNotFound)

	// Keys outside the pattern survive.
	var got cachedTest
	assert.NoError(t, helper.Get(ctx, "id:1", &got))
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper := setupCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &cachedTest{ID: 2, Title: "Part 2"}, nil
	}

	var first cachedTest
	require.NoError(t, helper.CacheOrExecute(ctx, "id:2", &first, time.Minute, fetch))
	assert.Equal(t, uint(2), first.ID)
	assert.Equal(t, 1, calls)

	var second cachedTest
	require.NoError(t, helper.CacheOrExecute(ctx, "id:2", &second, time.Minute, fetch))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read should hit the cache")
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "speaking:test:")
	ctx := context.Background()

	assert.NoError(t, helper.Set(ctx, "id:1", cachedTest{ID: 1}, time.Minute))
	assert.ErrorIs(t, helper.Get(ctx, "id:1", &cachedTest{}), ErrCacheNotAvailable)
	assert.NoError(t, helper.Delete(ctx, "id:1"))
	assert.NoError(t, helper.InvalidatePattern(ctx, "*"))

	// Reads fall through to the fetch function every time.
	var got cachedTest
	require.NoError(t, helper.CacheOrExecute(ctx, "id:1", &got, time.Minute, func() (interface{}, error) {
		return &cachedTest{ID: 1, Title: "Fetched"}, nil
	}))
	assert.Equal(t, "Fetched", got.Title)
}
