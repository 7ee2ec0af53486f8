package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStructuredOutput(t *testing.T) {
	raw := `{
		"recipe_name": "Tomato Omelette",
		"ingredients": ["2 eggs", "1 tomato"],
		"instructions": ["Beat the eggs.", "Fry with tomato."],
		"estimated_calories": 220,
		"nutritional_values": {"protein": 14, "fat": 15, "carbohydrates": 6, "sugar": 4, "fiber": 1.5}
	}`

	rec := Normalize(raw)

	require.False(t, rec.IsFallback())
	assert.Equal(t, "Tomato Omelette", rec.RecipeName)
	assert.Equal(t, []string{"2 eggs", "1 tomato"}, rec.Ingredients)
	assert.Len(t, rec.Instructions, 2)
	assert.Equal(t, 220.0, rec.EstimatedCalories)
	require.NotNil(t, rec.NutritionalValues)
	assert.Equal(t, 14.0, rec.NutritionalValues.Protein)
	assert.Equal(t, 1.5, rec.NutritionalValues.Fiber)
	assert.Empty(t, rec.RawResponse)
}

// 空陣列仍是合法的結構化輸出
func TestNormalizeEmptyArrays(t *testing.T) {
	raw := `{"recipe_name": "Water", "ingredients": [], "instructions": []}`

	rec := Normalize(raw)

	require.False(t, rec.IsFallback())
	assert.Equal(t, "Water", rec.RecipeName)
	assert.Empty(t, rec.Ingredients)
}

func TestNormalizeFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "Here is a recipe for you: fry the eggs and add tomatoes."},
		{"json with trailing prose", `{"recipe_name": "Omelette"} Hope you enjoy it!`},
		{"markdown fenced json", "```json\n{\"recipe_name\": \"Omelette\"}\n```"},
		{"missing recipe name", `{"ingredients": ["egg"], "instructions": ["fry"]}`},
		{"wrong field type", `{"recipe_name": "Omelette", "ingredients": "egg"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(tt.raw)

			assert.True(t, rec.IsFallback())
			assert.Equal(t, tt.raw, rec.RawResponse)
			assert.Empty(t, rec.RecipeName)
			assert.Empty(t, rec.Ingredients)
		})
	}
}
