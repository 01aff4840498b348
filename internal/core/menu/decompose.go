package menu

// Decompose 將 MealPlan 拆成落庫用的表頭、營養、材料與步驟紀錄。
// 步驟編號一律重排為 1..N。
func Decompose(plan *MealPlan) Records {
	instructions := make([]InstructionRecord, 0, len(plan.Instructions))
	for i, text := range plan.Instructions {
		instructions = append(instructions, InstructionRecord{Step: i + 1, Text: text})
	}
	return Records{
		Header: HeaderRecord{
			Title:        plan.Title,
			Cuisine:      plan.Cuisine,
			TotalTimeMin: plan.TotalTimeMin,
		},
		Nutrition:    plan.Nutrition,
		Ingredients:  plan.Ingredients,
		Instructions: instructions,
	}
}
