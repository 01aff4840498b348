package menu

import (
	"encoding/json"

	"meal-planner-api/internal/pkg/common"
)

var requiredKeys = []string{"title", "cuisine", "total_time_min", "nutrition", "ingredients", "instructions"}

var requiredNutritionKeys = []string{"kcal", "protein_g", "fat_g", "carb_g", "salt_g"}

// ParseMealPlan 解析模型輸出為 MealPlan。
// 先剝除圍欄再解碼，缺少必要欄位時回報第一個缺失的鍵。
func ParseMealPlan(raw string) (*MealPlan, error) {
	cleaned := common.ExtractJSON(raw)

	var top map[string]json.RawMessage
	if err := common.ParseJSON(cleaned, &top); err != nil {
		return nil, common.NewMalformedResponseError(err, raw)
	}
	for _, key := range requiredKeys {
		if _, ok := top[key]; !ok {
			return nil, common.NewSchemaViolationError(key)
		}
	}

	var nutrition map[string]json.RawMessage
	if err := json.Unmarshal(top["nutrition"], &nutrition); err != nil {
		return nil, common.NewMalformedResponseError(err, raw)
	}
	for _, key := range requiredNutritionKeys {
		if _, ok := nutrition[key]; !ok {
			return nil, common.NewSchemaViolationError("nutrition." + key)
		}
	}

	var ingredients []map[string]json.RawMessage
	if err := json.Unmarshal(top["ingredients"], &ingredients); err != nil {
		return nil, common.NewMalformedResponseError(err, raw)
	}
	for _, ing := range ingredients {
		for _, key := range []string{"name", "quantity", "unit"} {
			if _, ok := ing[key]; !ok {
				return nil, common.NewSchemaViolationError("ingredients." + key)
			}
		}
	}

	var plan MealPlan
	if err := common.ParseJSON(cleaned, &plan); err != nil {
		return nil, common.NewMalformedResponseError(err, raw)
	}
	if len(plan.Instructions) == 0 {
		return nil, common.NewSchemaViolationError("instructions")
	}
	return &plan, nil
}
