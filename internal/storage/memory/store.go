// Package memory 提供記憶體版的食譜儲存，供測試與未設定 Firestore 的本地環境使用。
package memory

import (
	"context"
	"sort"
	"sync"

	"foodgpt-api/internal/pkg/common"
	"foodgpt-api/internal/storage"
)

// Store 記憶體儲存
type Store struct {
	mu      sync.RWMutex
	entries map[string]common.StoredRecipeEntry
}

// NewStore 創建記憶體儲存
func NewStore() *Store {
	return &Store{
		entries: make(map[string]common.StoredRecipeEntry),
	}
}

// Add 寫入一筆新紀錄
func (s *Store) Add(ctx context.Context, entry *common.StoredRecipeEntry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := common.GenerateUUID()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *entry
	stored.ID = id
	s.entries[id] = stored

	return id, nil
}

// History 回傳使用者最近的紀錄，新的在前
func (s *Store) History(ctx context.Context, userID string) ([]common.StoredRecipeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]common.StoredRecipeEntry, 0)
	for _, entry := range s.entries {
		if entry.UserID == userID {
			matched = append(matched, entry)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if len(matched) > storage.HistoryLimit {
		matched = matched[:storage.HistoryLimit]
	}
	return matched, nil
}

// GetByID 以識別碼查詢單筆紀錄
func (s *Store) GetByID(ctx context.Context, id string) (*common.StoredRecipeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Close 實現 storage.RecipeStore 介面
func (s *Store) Close() error {
	return nil
}
