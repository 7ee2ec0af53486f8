// Package storage 定義食譜紀錄的文件儲存介面。
// 具體後端（Firestore、記憶體）可替換，核心流程不需更動。
package storage

import (
	"context"

	"foodgpt-api/internal/pkg/common"
)

// HistoryLimit 歷史查詢固定回傳筆數上限
const HistoryLimit = 3

// RecipeStore 文件儲存介面
type RecipeStore interface {
	// Add 寫入一筆新紀錄並回傳儲存端指派的識別碼
	Add(ctx context.Context, entry *common.StoredRecipeEntry) (string, error)

	// History 回傳指定使用者最近的紀錄，最多 HistoryLimit 筆，新的在前
	History(ctx context.Context, userID string) ([]common.StoredRecipeEntry, error)

	// GetByID 以識別碼查詢單筆紀錄；不存在時回傳 (nil, nil)，不視為錯誤
	GetByID(ctx context.Context, id string) (*common.StoredRecipeEntry, error)

	// Close 釋放後端連線
	Close() error
}
