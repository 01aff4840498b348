package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"go.uber.org/zap"

	"meal-planner-api/internal/core/flyer"
	"meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/pkg/common"
)

// MenuRow menus 表的一筆菜單表頭
type MenuRow struct {
	MenuID       string    `bigquery:"menu_id"`
	UserID       string    `bigquery:"user_id"`
	Title        string    `bigquery:"title"`
	Cuisine      string    `bigquery:"cuisine"`
	TotalTimeMin int       `bigquery:"total_time_min"`
	Kcal         float64   `bigquery:"kcal"`
	ProteinG     float64   `bigquery:"protein_g"`
	FatG         float64   `bigquery:"fat_g"`
	CarbG        float64   `bigquery:"carb_g"`
	SaltG        float64   `bigquery:"salt_g"`
	CreatedAt    time.Time `bigquery:"created_at"`
}

// MenuIngredientRow menu_ingredients 表的一筆材料
type MenuIngredientRow struct {
	MenuID    string    `bigquery:"menu_id"`
	UserID    string    `bigquery:"user_id"`
	Name      string    `bigquery:"name"`
	Quantity  string    `bigquery:"quantity"`
	Unit      string    `bigquery:"unit"`
	CreatedAt time.Time `bigquery:"created_at"`
}

// MenuInstructionRow menu_instructions 表的一筆步驟
type MenuInstructionRow struct {
	MenuID    string    `bigquery:"menu_id"`
	UserID    string    `bigquery:"user_id"`
	Step      int       `bigquery:"step"`
	Text      string    `bigquery:"text"`
	CreatedAt time.Time `bigquery:"created_at"`
}

// FlyerRow flyer_data 表的一筆商品
type FlyerRow struct {
	Name     string `bigquery:"name"`
	Quantity string `bigquery:"quantity"`
	Price    string `bigquery:"price"`
	SaleDate string `bigquery:"sale_date"`
}

// LegacyMenuRow created_menu 表的一筆菜單（舊版配置，無 user_id）
type LegacyMenuRow struct {
	MenuID       string               `bigquery:"menu_id"`
	Title        string               `bigquery:"title"`
	TotalTimeMin bigquery.NullInt64   `bigquery:"total_time_min"`
	Kcal         bigquery.NullFloat64 `bigquery:"kcal"`
	ProteinG     bigquery.NullFloat64 `bigquery:"protein_g"`
	FatG         bigquery.NullFloat64 `bigquery:"fat_g"`
	CarbG        bigquery.NullFloat64 `bigquery:"carb_g"`
	FiberG       bigquery.NullFloat64 `bigquery:"fiber_g"`
	SaltG        bigquery.NullFloat64 `bigquery:"salt_g"`
	CreatedAt    time.Time            `bigquery:"created_at"`
}

// LegacyIngredientRow ingredients 表的一筆材料（舊版配置）
type LegacyIngredientRow struct {
	MenuID   string `bigquery:"menu_id"`
	Name     string `bigquery:"name"`
	Quantity string `bigquery:"quantity"`
	Unit     string `bigquery:"unit"`
}

// LegacyInstructionRow instructions 表的一筆步驟（舊版配置）
type LegacyInstructionRow struct {
	MenuID string `bigquery:"menu_id"`
	Step   int    `bigquery:"step"`
	Text   string `bigquery:"text"`
}

// SaveMenu 將獻立紀錄寫入 menus / menu_ingredients / menu_instructions 三張表，
// 回傳新產生的菜單編號
func (c *Client) SaveMenu(ctx context.Context, rec menu.Records, userID string) (string, error) {
	if userID == "" {
		userID = c.defaultUserID
	}
	now := time.Now().UTC()
	menuID := MenuID(now)

	menuRow := &MenuRow{
		MenuID:       menuID,
		UserID:       userID,
		Title:        rec.Header.Title,
		Cuisine:      rec.Header.Cuisine,
		TotalTimeMin: rec.Header.TotalTimeMin,
		Kcal:         rec.Nutrition.Kcal,
		ProteinG:     rec.Nutrition.ProteinG,
		FatG:         rec.Nutrition.FatG,
		CarbG:        rec.Nutrition.CarbG,
		SaltG:        rec.Nutrition.SaltG,
		CreatedAt:    now,
	}
	if err := c.bq.Dataset(c.dataset).Table("menus").Inserter().Put(ctx, menuRow); err != nil {
		return "", common.NewPersistenceError("寫入 menus 失敗", err)
	}

	ingredientRows := make([]*MenuIngredientRow, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		ingredientRows = append(ingredientRows, &MenuIngredientRow{
			MenuID:    menuID,
			UserID:    userID,
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			CreatedAt: now,
		})
	}
	if len(ingredientRows) > 0 {
		if err := c.bq.Dataset(c.dataset).Table("menu_ingredients").Inserter().Put(ctx, ingredientRows); err != nil {
			return "", common.NewPersistenceError("寫入 menu_ingredients 失敗", err)
		}
	}

	instructionRows := make([]*MenuInstructionRow, 0, len(rec.Instructions))
	for _, ins := range rec.Instructions {
		instructionRows = append(instructionRows, &MenuInstructionRow{
			MenuID:    menuID,
			UserID:    userID,
			Step:      ins.Step,
			Text:      ins.Text,
			CreatedAt: now,
		})
	}
	if len(instructionRows) > 0 {
		if err := c.bq.Dataset(c.dataset).Table("menu_instructions").Inserter().Put(ctx, instructionRows); err != nil {
			return "", common.NewPersistenceError("寫入 menu_instructions 失敗", err)
		}
	}

	common.LogInfo("獻立已落庫", zap.String("menu_id", menuID), zap.String("user_id", userID))
	return menuID, nil
}

// AppendLegacyMenu 將外部傳入的菜單寫入舊版 created_menu / ingredients / instructions 三張表。
// 表頭與營養值以弱型別地圖傳入，缺失或非數值欄位落為 NULL。
func (c *Client) AppendLegacyMenu(ctx context.Context, header, nutrition map[string]any, ingredients []menu.Ingredient, instructions []menu.InstructionRecord) (string, error) {
	now := time.Now().UTC()
	menuID := MenuID(now)

	menuRow := &LegacyMenuRow{
		MenuID:       menuID,
		Title:        stringField(header, "title"),
		TotalTimeMin: nullInt64(header, "total_time_min"),
		Kcal:         nullFloat64(nutrition, "kcal"),
		ProteinG:     nullFloat64(nutrition, "protein_g"),
		FatG:         nullFloat64(nutrition, "fat_g"),
		CarbG:        nullFloat64(nutrition, "carb_g"),
		FiberG:       nullFloat64(nutrition, "fiber_g"),
		SaltG:        nullFloat64(nutrition, "salt_g"),
		CreatedAt:    now,
	}
	if err := c.bq.Dataset(c.dataset).Table("created_menu").Inserter().Put(ctx, menuRow); err != nil {
		return "", common.NewPersistenceError("寫入 created_menu 失敗", err)
	}

	ingredientRows := make([]*LegacyIngredientRow, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientRows = append(ingredientRows, &LegacyIngredientRow{
			MenuID:   menuID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	if len(ingredientRows) > 0 {
		if err := c.bq.Dataset(c.dataset).Table("ingredients").Inserter().Put(ctx, ingredientRows); err != nil {
			return "", common.NewPersistenceError("寫入 ingredients 失敗", err)
		}
	}

	instructionRows := make([]*LegacyInstructionRow, 0, len(instructions))
	for _, ins := range instructions {
		instructionRows = append(instructionRows, &LegacyInstructionRow{
			MenuID: menuID,
			Step:   ins.Step,
			Text:   ins.Text,
		})
	}
	if len(instructionRows) > 0 {
		if err := c.bq.Dataset(c.dataset).Table("instructions").Inserter().Put(ctx, instructionRows); err != nil {
			return "", common.NewPersistenceError("寫入 instructions 失敗", err)
		}
	}

	common.LogInfo("菜單已落庫（舊版配置）", zap.String("menu_id", menuID))
	return menuID, nil
}

// ReplaceFlyerData 以辨識結果覆寫 flyer_data：先清空再寫入
func (c *Client) ReplaceFlyerData(ctx context.Context, items []flyer.Item) error {
	job, err := c.bq.Query(fmt.Sprintf(`TRUNCATE TABLE %s`, c.table("flyer_data"))).Run(ctx)
	if err != nil {
		return common.NewPersistenceError("清空 flyer_data 失敗", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return common.NewPersistenceError("清空 flyer_data 失敗", err)
	}
	if err := status.Err(); err != nil {
		return common.NewPersistenceError("清空 flyer_data 失敗", err)
	}

	if len(items) == 0 {
		return nil
	}
	rows := make([]*FlyerRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, &FlyerRow{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			SaleDate: item.SaleDate,
		})
	}
	if err := c.bq.Dataset(c.dataset).Table("flyer_data").Inserter().Put(ctx, rows); err != nil {
		return common.NewPersistenceError("寫入 flyer_data 失敗", err)
	}

	common.LogInfo("flyer_data 已更新", zap.Int("items", len(rows)))
	return nil
}

func stringField(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func nullInt64(row map[string]any, key string) bigquery.NullInt64 {
	f, ok := numericField(row, key)
	if !ok {
		return bigquery.NullInt64{}
	}
	return bigquery.NullInt64{Int64: int64(f), Valid: true}
}

func nullFloat64(row map[string]any, key string) bigquery.NullFloat64 {
	f, ok := numericField(row, key)
	if !ok {
		return bigquery.NullFloat64{}
	}
	return bigquery.NullFloat64{Float64: f, Valid: true}
}

func numericField(row map[string]any, key string) (float64, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
