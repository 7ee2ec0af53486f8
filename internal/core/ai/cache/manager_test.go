package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) *Manager {
	t.Helper()
	m := NewManager(&config.CacheConfig{
		Enabled:         true,
		Backend:         "memory",
		MaxSize:         maxSize,
		TTL:             ttl,
		CleanupInterval: time.Minute,
	})
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManagerSetAndGet(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt-a", "value-a"))

	got, err := m.Get(ctx, "prompt-a")
	require.NoError(t, err)
	assert.Equal(t, "value-a", got)
}

func TestManagerGetMiss(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)

	_, err := m.Get(context.Background(), "never-set")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManagerExpiry(t *testing.T) {
	m := newTestManager(t, 10, 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt-a", "value-a"))
	time.Sleep(50 * time.Millisecond)

	_, err := m.Get(ctx, "prompt-a")
	assert.Error(t, err)
}

func TestManagerEvictsWhenFull(t *testing.T) {
	m := newTestManager(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("prompt-%d", i), "value"))
	}

	// 滿容量時透過 LRU 騰出空間，寫入仍應成功
	require.NoError(t, m.Set(ctx, "prompt-new", "value"))

	got, err := m.Get(ctx, "prompt-new")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestManagerKeyedByPrompt(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt-a", "value-a"))
	require.NoError(t, m.Set(ctx, "prompt-b", "value-b"))

	got, err := m.Get(ctx, "prompt-b")
	require.NoError(t, err)
	assert.Equal(t, "value-b", got)
}

func TestNewDisabledReturnsNil(t *testing.T) {
	c, err := New(&config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, c)
}
