// Package recipe 實作食譜生成流程：
// 組提示詞 → 呼叫生成服務 → 正規化回應 → 寫入文件儲存。
package recipe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"foodgpt-api/internal/core/ai/cache"
	"foodgpt-api/internal/pkg/common"
	"foodgpt-api/internal/storage"
)

// Generator 文字生成能力介面，具體實作為 ollama.Client，測試時可代換
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result 一次生成呼叫的結果
// 儲存失敗時 ID 為空，但已生成的食譜仍會回傳
type Result struct {
	ID     string                 `json:"id"`
	Recipe common.GeneratedRecipe `json:"response"`
}

// Service 食譜生成服務，依賴全部由建構時注入
type Service struct {
	generator Generator
	store     storage.RecipeStore
	cache     cache.Cache // 可為 nil
}

// NewService 創建食譜生成服務
func NewService(generator Generator, store storage.RecipeStore, cacheSvc cache.Cache) *Service {
	return &Service{
		generator: generator,
		store:     store,
		cache:     cacheSvc,
	}
}

// Generate 執行完整生成流程
// 驗證失敗與生成服務失敗直接回報；儲存失敗不丟棄已生成的食譜
func (s *Service) Generate(ctx context.Context, req *common.RecipeRequest) (*Result, error) {
	req.Normalize()

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, cached := s.lookupCache(ctx, prompt)
	if !cached {
		raw, err = s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, prompt, raw)
		}
	}

	recipe := Normalize(raw)
	if recipe.IsFallback() {
		common.LogWarn("模型輸出非 JSON，以 fallback 形式保存",
			zap.String("user_id", req.UserID),
			zap.Int("raw_length", len(raw)),
		)
	}

	entry := &common.StoredRecipeEntry{
		GeneratedRecipe: recipe,
		OvenOption:      req.OvenOption,
		UserID:          req.UserID,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.store.Add(ctx, entry)
	if err != nil {
		// 已算出的結果不因儲存失敗而作廢，記錄錯誤後照常回應
		common.LogError("食譜紀錄寫入失敗",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		return &Result{Recipe: recipe}, nil
	}

	common.LogInfo("食譜已生成並寫入",
		zap.String("record_id", id),
		zap.String("user_id", req.UserID),
		zap.Bool("fallback", recipe.IsFallback()),
		zap.Bool("cache_hit", cached),
	)

	return &Result{ID: id, Recipe: recipe}, nil
}

// lookupCache 查詢生成結果快取
func (s *Service) lookupCache(ctx context.Context, prompt string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	value, err := s.cache.Get(ctx, prompt)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// History 回傳使用者最近的食譜紀錄，最多三筆，新的在前
func (s *Service) History(ctx context.Context, userID string) ([]common.StoredRecipeEntry, error) {
	return s.store.History(ctx, userID)
}

// GetByID 以識別碼查詢單筆食譜紀錄；不存在時回傳 (nil, nil)
func (s *Service) GetByID(ctx context.Context, id string) (*common.StoredRecipeEntry, error) {
	return s.store.GetByID(ctx, id)
}
