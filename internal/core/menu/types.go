package menu

// MealPlan 一回分の献立。必要欄位驗證通過後的強類型表示，
// 下游不再處理欄位缺失的情況。
type MealPlan struct {
	Title        string       `json:"title"`
	Cuisine      string       `json:"cuisine"`
	TotalTimeMin int          `json:"total_time_min"`
	Nutrition    Nutrition    `json:"nutrition"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Notes        string       `json:"notes,omitempty"`
}

// Nutrition 栄養値（五欄全部必須）
type Nutrition struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbG    float64 `json:"carb_g"`
	SaltG    float64 `json:"salt_g"`
}

// Ingredient 材料（name/quantity/unit 三欄必須；quantity 保持字串，
// 「大さじ1.5」這類非數值也原樣保留）
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// HeaderRecord 献立基本情報
type HeaderRecord struct {
	Title        string `json:"title"`
	Cuisine      string `json:"cuisine"`
	TotalTimeMin int    `json:"total_time_min"`
}

// InstructionRecord 手順一行，step 從 1 開始連續編號
type InstructionRecord struct {
	Step int    `json:"step"`
	Text string `json:"text"`
}

// Records 献立分解後的四組正規化記錄
type Records struct {
	Header       HeaderRecord        `json:"header"`
	Nutrition    Nutrition           `json:"nutrition"`
	Ingredients  []Ingredient        `json:"ingredients"`
	Instructions []InstructionRecord `json:"instructions"`
}
