package recipe

import (
	"fmt"
	"strings"

	"foodgpt-api/internal/pkg/common"
)

// 提示詞是控制不透明生成模型的唯一手段，輸出格式的所有約束都靠措辭強制，
// 不在解析端做 schema 驗證。同樣輸入必須產生逐位元相同的提示詞。

// coreSchemaClause 兩種模板共用的 JSON 輸出約束
const coreSchemaClause = " Also include estimated calories and nutritional values." +
	" Respond with a single JSON object only, with no text before or after it, using exactly these fields:" +
	" recipe_name (string), ingredients (array of strings), instructions (array of strings)," +
	" estimated_calories (number), nutritional_values (object with numeric fields protein, fat, carbohydrates, sugar, fiber)."

const numericClause = " All numeric values must be plain numbers without units."

// BuildPrompt 由請求組出模型提示詞，純函數
// 所選模式缺少必要欄位時回傳 ValidationError，不會觸發生成呼叫
func BuildPrompt(req *common.RecipeRequest) (string, error) {
	switch req.Mode {
	case common.ModeDish:
		if req.DishName == "" {
			return "", common.NewValidationError("No dish name provided.")
		}
		return buildDishPrompt(req), nil
	case common.ModeIngredients:
		if len(req.Ingredients) == 0 {
			return "", common.NewValidationError("No ingredients provided.")
		}
		return buildIngredientsPrompt(req), nil
	default:
		return "", common.NewValidationError(fmt.Sprintf("Unknown mode: %s", req.Mode))
	}
}

// buildIngredientsPrompt 以食材為主的模板
func buildIngredientsPrompt(req *common.RecipeRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Suggest a healthy recipe using only the following ingredients: %s.",
		strings.Join(req.Ingredients, ", ")))
	sb.WriteString(" Do not use any ingredient that is not listed.")

	sb.WriteString(ovenClauses(req))

	sb.WriteString(" If no protein source is listed, assume the recipe is vegetarian.")
	sb.WriteString(" If an essential ingredient is missing, suggest a substitution for it in the instructions.")

	sb.WriteString(coreSchemaClause)
	sb.WriteString(numericClause)

	return sb.String()
}

// buildDishPrompt 以菜名為主的模板
func buildDishPrompt(req *common.RecipeRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Provide a recipe for %s that is strictly authentic to its traditional cuisine.",
		req.DishName))
	sb.WriteString(" Do not invent or add ingredients that do not belong to the traditional preparation.")
	sb.WriteString(" Use U.S. units for all measurements; for any quantity above 100 units, include the metric equivalent in parentheses.")

	sb.WriteString(ovenClauses(req))

	sb.WriteString(coreSchemaClause)
	sb.WriteString(" In addition, include the fields serving (number) and time_option (number, total minutes).")
	sb.WriteString(numericClause)

	return sb.String()
}

// ovenClauses 烤箱、時間、份量三個子句一律整組產生：
// oven_option 未指定時三者全部省略，即使 serving_option 有值也一樣
func ovenClauses(req *common.RecipeRequest) string {
	if req.OvenOption == common.OvenAbsent {
		return ""
	}

	var sb strings.Builder

	if req.OvenOption == common.OvenWith {
		sb.WriteString(" The recipe should use an oven.")
	} else {
		sb.WriteString(" The recipe must not require an oven.")
	}

	if req.TimeOption > 0 {
		sb.WriteString(fmt.Sprintf(" The total cooking time should be about %d minutes.", req.TimeOption))
	}

	if req.ServingOption == 1 {
		sb.WriteString(" The recipe should make 1 serving.")
	} else {
		sb.WriteString(fmt.Sprintf(" The recipe should make %d servings.", req.ServingOption))
	}

	return sb.String()
}
