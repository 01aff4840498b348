package warehouse

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/pkg/common"
)

// InventoryUpdateRow inventory_updates 表的一筆庫存增減
type InventoryUpdateRow struct {
	UserID         string    `bigquery:"user_id"`
	IngredientName string    `bigquery:"ingredient_name"`
	QuantityChange float64   `bigquery:"quantity_change"`
	Unit           string    `bigquery:"unit"`
	CreatedAt      time.Time `bigquery:"created_at"`
}

// BuildInventoryUpdates 將菜單材料換算成庫存扣減紀錄。
// 數量無法解析為數值的材料（如「大さじ1.5」）直接略過。
func BuildInventoryUpdates(ingredients []menu.Ingredient, userID string, now time.Time) []*InventoryUpdateRow {
	rows := make([]*InventoryUpdateRow, 0, len(ingredients))
	for _, ing := range ingredients {
		qty, ok := parseQuantity(ing.Quantity)
		if !ok {
			continue
		}
		rows = append(rows, &InventoryUpdateRow{
			UserID:         userID,
			IngredientName: ing.Name,
			QuantityChange: -qty,
			Unit:           ing.Unit,
			CreatedAt:      now,
		})
	}
	return rows
}

// AppendInventoryUpdates 依生成的菜單扣減庫存
func (c *Client) AppendInventoryUpdates(ctx context.Context, ingredients []menu.Ingredient, userID string) error {
	if userID == "" {
		userID = c.defaultUserID
	}
	rows := BuildInventoryUpdates(ingredients, userID, time.Now().UTC())
	if len(rows) == 0 {
		return nil
	}
	if err := c.bq.Dataset(c.dataset).Table("inventory_updates").Inserter().Put(ctx, rows); err != nil {
		return common.NewPersistenceError("寫入 inventory_updates 失敗", err)
	}
	common.LogInfo("庫存扣減已落庫", zap.Int("rows", len(rows)), zap.String("user_id", userID))
	return nil
}

// parseQuantity 剝除常見單位後綴後解析數量字串
func parseQuantity(quantity string) (float64, bool) {
	s := strings.ReplaceAll(quantity, "g", "")
	s = strings.ReplaceAll(s, "ml", "")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
