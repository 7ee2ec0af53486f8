package recipe

import (
	"foodgpt-api/internal/pkg/common"
)

// Normalize 將生成服務的原始文字正規化為 GeneratedRecipe，永不失敗。
// 整段文字必須是一份完整的 JSON；解析失敗或缺少 recipe_name 時，
// 以 fallback 形式包住原文保存。模型輸出不合規是預期內的可恢復情況，不是錯誤。
func Normalize(raw string) common.GeneratedRecipe {
	var rec common.GeneratedRecipe
	if err := common.ParseJSON(raw, &rec); err != nil {
		return common.GeneratedRecipe{RawResponse: raw}
	}

	// 型別合法但欄位不齊的輸出同樣降級保存，避免半套資料流進固定欄位
	if rec.RecipeName == "" {
		return common.GeneratedRecipe{RawResponse: raw}
	}

	rec.RawResponse = ""
	return rec
}
