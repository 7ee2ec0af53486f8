package common

import (
	"strings"
	"time"
)

// Mode 選擇提示詞模板
type Mode string

const (
	ModeIngredients Mode = "ingredients" // 以食材為主的模板
	ModeDish        Mode = "dish"        // 以菜名為主的模板
)

// OvenOption 烤箱選項
type OvenOption string

const (
	OvenWith    OvenOption = "with"
	OvenWithout OvenOption = "without"
	OvenAbsent  OvenOption = "" // 未指定
)

// DefaultUserID 未登入使用者的識別
const DefaultUserID = "guest"

// RecipeRequest 食譜生成請求，僅存在於單次呼叫期間
type RecipeRequest struct {
	Mode          Mode       `json:"mode,omitempty"`
	Ingredients   []string   `json:"ingredients,omitempty"`
	DishName      string     `json:"dish_name,omitempty"`
	OvenOption    OvenOption `json:"oven_option,omitempty"`
	TimeOption    int        `json:"time_option,omitempty"`    // 分鐘，僅在有烤箱選項時有意義
	ServingOption int        `json:"serving_option,omitempty"` // 份量，預設 1
	UserID        string     `json:"user_id,omitempty"`
}

// Normalize 補上預設值並整理輸入
func (r *RecipeRequest) Normalize() {
	if r.Mode == "" {
		r.Mode = ModeIngredients
	}
	if r.ServingOption <= 0 {
		r.ServingOption = 1
	}
	if strings.TrimSpace(r.UserID) == "" {
		r.UserID = DefaultUserID
	}
	cleaned := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if s := strings.TrimSpace(ing); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	r.Ingredients = cleaned
	r.DishName = strings.TrimSpace(r.DishName)
}

// NutritionalValues 營養成分，固定欄位，數值一律不帶單位
type NutritionalValues struct {
	Protein       float64 `json:"protein" firestore:"protein"`
	Fat           float64 `json:"fat" firestore:"fat"`
	Carbohydrates float64 `json:"carbohydrates" firestore:"carbohydrates"`
	Sugar         float64 `json:"sugar" firestore:"sugar"`
	Fiber         float64 `json:"fiber" firestore:"fiber"`
}

// GeneratedRecipe 模型輸出正規化後的結果
// 結構化形式與 fallback 形式互斥：恰好其中一種存在
type GeneratedRecipe struct {
	RecipeName        string             `json:"recipe_name,omitempty" firestore:"recipe_name,omitempty"`
	Ingredients       []string           `json:"ingredients,omitempty" firestore:"ingredients,omitempty"`
	Instructions      []string           `json:"instructions,omitempty" firestore:"instructions,omitempty"`
	EstimatedCalories float64            `json:"estimated_calories,omitempty" firestore:"estimated_calories,omitempty"`
	NutritionalValues *NutritionalValues `json:"nutritional_values,omitempty" firestore:"nutritional_values,omitempty"`
	Serving           int                `json:"serving,omitempty" firestore:"serving,omitempty"`
	TimeOption        int                `json:"time_option,omitempty" firestore:"time_option,omitempty"`

	// RawResponse 僅在模型輸出無法解析為 JSON 時填入
	RawResponse string `json:"raw_response,omitempty" firestore:"raw_response,omitempty"`
}

// IsFallback 回傳是否為 fallback 形式
func (g *GeneratedRecipe) IsFallback() bool {
	return g.RawResponse != ""
}

// StoredRecipeEntry 持久化的食譜紀錄，寫入後不可變
type StoredRecipeEntry struct {
	GeneratedRecipe

	OvenOption OvenOption `json:"oven_option,omitempty" firestore:"oven_option,omitempty"`
	UserID     string     `json:"user_id" firestore:"user_id"`
	CreatedAt  time.Time  `json:"created_at" firestore:"created_at"` // UTC

	// ID 由儲存後端指派，不寫入文件本體
	ID string `json:"id,omitempty" firestore:"-"`
}
