// Package firestore 提供 Google Cloud Firestore 版的食譜儲存。
// 每次生成寫入一份文件到單一集合，寫入後不再更新。
package firestore

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
	"foodgpt-api/internal/storage"
)

// Store Firestore 儲存
type Store struct {
	client     *firestore.Client
	collection string
}

// NewStore 創建 Firestore 儲存
func NewStore(ctx context.Context, cfg *config.FirestoreConfig) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Store{
		client:     client,
		collection: cfg.Collection,
	}, nil
}

// Add 寫入一筆新紀錄，回傳 Firestore 指派的文件識別碼
func (s *Store) Add(ctx context.Context, entry *common.StoredRecipeEntry) (string, error) {
	ref, _, err := s.client.Collection(s.collection).Add(ctx, entry)
	if err != nil {
		return "", common.NewError(common.ErrCodePersistence, "寫入食譜紀錄失敗", http.StatusServiceUnavailable, err)
	}
	return ref.ID, nil
}

// History 回傳使用者最近的紀錄，依建立時間由新到舊
func (s *Store) History(ctx context.Context, userID string) ([]common.StoredRecipeEntry, error) {
	iter := s.client.Collection(s.collection).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Limit(storage.HistoryLimit).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]common.StoredRecipeEntry, 0, storage.HistoryLimit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, common.NewError(common.ErrCodePersistence, "查詢歷史紀錄失敗", http.StatusServiceUnavailable, err)
		}

		var entry common.StoredRecipeEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, common.NewError(common.ErrCodePersistence, "解析食譜紀錄失敗", http.StatusServiceUnavailable, err)
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetByID 以文件識別碼查詢單筆紀錄
func (s *Store) GetByID(ctx context.Context, id string) (*common.StoredRecipeEntry, error) {
	doc, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		// 查無資料屬正常結果
		return nil, nil
	}
	if err != nil {
		return nil, common.NewError(common.ErrCodePersistence, "查詢食譜紀錄失敗", http.StatusServiceUnavailable, err)
	}

	var entry common.StoredRecipeEntry
	if err := doc.DataTo(&entry); err != nil {
		return nil, common.NewError(common.ErrCodePersistence, "解析食譜紀錄失敗", http.StatusServiceUnavailable, err)
	}
	entry.ID = doc.Ref.ID
	return &entry, nil
}

// Close 關閉 Firestore 連線
func (s *Store) Close() error {
	return s.client.Close()
}
