// Package vision 從照片中辨識食材，用來預填食譜生成流程的輸入。
// 物件偵測模型視為不透明的外部能力，僅以 Detector 介面銜接。
package vision

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"foodgpt-api/internal/pkg/common"
)

// Detection 單筆偵測結果
type Detection struct {
	ClassID    int     `json:"class_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Detector 物件偵測介面：影像位元組 → 偵測結果
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

// foodClasses 可辨識的食材詞彙，封閉集合
// 通用偵測模型會回報大量非食物類別，僅保留這份清單內的標籤
var foodClasses = map[string]struct{}{
	"banana":   {},
	"apple":    {},
	"orange":   {},
	"tomato":   {},
	"broccoli": {},
	"carrot":   {},
	"egg":      {},
	"onion":    {},
	"lettuce":  {},
	"chicken":  {},
	"fish":     {},
	"bread":    {},
	"milk":     {},
	"cheese":   {},
	"rice":     {},
	"potato":   {},
	"pepper":   {},
	"mushroom": {},
}

// Service 食材辨識服務
type Service struct {
	detector Detector
}

// NewService 創建食材辨識服務
func NewService(detector Detector) *Service {
	return &Service{detector: detector}
}

// ExtractIngredients 對影像執行偵測並回傳可辨識的食材名稱
// 重複偵測只保留一筆，非食物標籤直接丟棄，不視為錯誤
func (s *Service) ExtractIngredients(ctx context.Context, image []byte) ([]string, error) {
	detections, err := s.detector.Detect(ctx, image)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, d := range detections {
		if _, ok := foodClasses[d.Label]; !ok {
			continue
		}
		seen[d.Label] = struct{}{}
	}

	ingredients := make([]string, 0, len(seen))
	for name := range seen {
		ingredients = append(ingredients, name)
	}
	sort.Strings(ingredients)

	common.LogInfo("食材辨識完成",
		zap.Int("detections", len(detections)),
		zap.Int("ingredients", len(ingredients)),
	)

	return ingredients, nil
}
