package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner-api/internal/pkg/common"
)

const validPlanJSON = `{
	"title": "Chicken Salad",
	"cuisine": "washoku",
	"total_time_min": 25,
	"nutrition": {"kcal": 560, "protein_g": 30, "fat_g": 20, "carb_g": 45, "salt_g": 2.5},
	"ingredients": [
		{"name": "鶏胸肉", "quantity": "200", "unit": "g"},
		{"name": "塩麹", "quantity": "大さじ1.5", "unit": ""}
	],
	"instructions": ["鶏胸肉を茹でる", "塩麹で和える"]
}`

func TestParseMealPlan(t *testing.T) {
	plan, err := ParseMealPlan(validPlanJSON)
	require.NoError(t, err)

	assert.Equal(t, "Chicken Salad", plan.Title)
	assert.Equal(t, "washoku", plan.Cuisine)
	assert.Equal(t, 25, plan.TotalTimeMin)
	assert.Equal(t, 560.0, plan.Nutrition.Kcal)
	assert.Equal(t, 2.5, plan.Nutrition.SaltG)
	require.Len(t, plan.Ingredients, 2)
	assert.Equal(t, "鶏胸肉", plan.Ingredients[0].Name)
	assert.Equal(t, "大さじ1.5", plan.Ingredients[1].Quantity)
	assert.Len(t, plan.Instructions, 2)
}

func TestParseMealPlanFenced(t *testing.T) {
	plan, err := ParseMealPlan("```json\n" + validPlanJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Salad", plan.Title)
}

func TestParseMealPlanNotJSON(t *testing.T) {
	_, err := ParseMealPlan("申し訳ありませんが、生成できませんでした。")
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeMalformedResponse, common.ErrorCode(err))
}

func TestParseMealPlanMissingKeys(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
	}{
		{
			name:    "missing title",
			input:   `{"cuisine": "washoku", "total_time_min": 25, "nutrition": {"kcal": 1, "protein_g": 1, "fat_g": 1, "carb_g": 1, "salt_g": 1}, "ingredients": [], "instructions": ["a"]}`,
			wantKey: "title",
		},
		{
			name:    "missing cuisine",
			input:   `{"title": "a", "total_time_min": 25, "nutrition": {"kcal": 1, "protein_g": 1, "fat_g": 1, "carb_g": 1, "salt_g": 1}, "ingredients": [], "instructions": ["a"]}`,
			wantKey: "cuisine",
		},
		{
			name:    "missing nutrition",
			input:   `{"title": "a", "cuisine": "b", "total_time_min": 25, "ingredients": [], "instructions": ["a"]}`,
			wantKey: "nutrition",
		},
		{
			name:    "missing nutrition sub key",
			input:   `{"title": "a", "cuisine": "b", "total_time_min": 25, "nutrition": {"kcal": 1, "protein_g": 1, "fat_g": 1, "carb_g": 1}, "ingredients": [], "instructions": ["a"]}`,
			wantKey: "nutrition.salt_g",
		},
		{
			name:    "ingredient missing unit",
			input:   `{"title": "a", "cuisine": "b", "total_time_min": 25, "nutrition": {"kcal": 1, "protein_g": 1, "fat_g": 1, "carb_g": 1, "salt_g": 1}, "ingredients": [{"name": "x", "quantity": "1"}], "instructions": ["a"]}`,
			wantKey: "ingredients.unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMealPlan(tt.input)
			require.Error(t, err)
			assert.Equal(t, common.ErrCodeSchemaViolation, common.ErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestParseMealPlanEmptyInstructions(t *testing.T) {
	input := `{"title": "a", "cuisine": "b", "total_time_min": 25, "nutrition": {"kcal": 1, "protein_g": 1, "fat_g": 1, "carb_g": 1, "salt_g": 1}, "ingredients": [], "instructions": []}`
	_, err := ParseMealPlan(input)
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeSchemaViolation, common.ErrorCode(err))
}
