package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgpt-api/internal/pkg/common"
	"foodgpt-api/internal/storage"
)

func newEntry(userID, name string, createdAt time.Time) *common.StoredRecipeEntry {
	return &common.StoredRecipeEntry{
		GeneratedRecipe: common.GeneratedRecipe{RecipeName: name},
		UserID:          userID,
		CreatedAt:       createdAt,
	}
}

func TestAddAndGetByID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, err := store.Add(ctx, newEntry("alice", "Omelette", time.Now().UTC()))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entry, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Omelette", entry.RecipeName)
	assert.Equal(t, "alice", entry.UserID)
	assert.Equal(t, id, entry.ID)
}

func TestGetByIDUnknown(t *testing.T) {
	store := NewStore()

	entry, err := store.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestHistoryOrderAndLimit(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 寫入五筆，時間遞增
	for i := 0; i < 5; i++ {
		_, err := store.Add(ctx, newEntry("alice",
			fmt.Sprintf("Recipe %d", i),
			base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	history, err := store.History(ctx, "alice")
	require.NoError(t, err)

	// 只保留最新三筆，新的在前
	require.Len(t, history, storage.HistoryLimit)
	assert.Equal(t, "Recipe 4", history[0].RecipeName)
	assert.Equal(t, "Recipe 3", history[1].RecipeName)
	assert.Equal(t, "Recipe 2", history[2].RecipeName)
}

func TestHistoryFiltersByUser(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := store.Add(ctx, newEntry("alice", "Alice Recipe", now))
	require.NoError(t, err)
	_, err = store.Add(ctx, newEntry("bob", "Bob Recipe", now))
	require.NoError(t, err)

	history, err := store.History(ctx, "alice")
	require.NoError(t, err)

	require.Len(t, history, 1)
	assert.Equal(t, "Alice Recipe", history[0].RecipeName)
}

func TestHistoryEmpty(t *testing.T) {
	store := NewStore()

	history, err := store.History(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotNil(t, history)
}

func TestAddCancelledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Add(ctx, newEntry("alice", "Omelette", time.Now().UTC()))
	assert.Error(t, err)
}
