package main

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/bigquery"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"meal-planner-api/internal/core/gemini"
	"meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/core/warehouse"
	"meal-planner-api/internal/infrastructure/config"
	"meal-planner-api/internal/pkg/common"
)

// 一次性批次：以冷蔵庫在庫・レシピ材料・チラシデータ生成獻立並落庫，
// 同時寫入對應的庫存扣減。
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx := context.Background()

	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		fmt.Printf("Failed to initialize gemini client: %v\n", err)
		os.Exit(1)
	}
	defer geminiClient.Close()

	bqClient, err := bigquery.NewClient(ctx, cfg.Warehouse.ProjectID, option.WithCredentialsFile(cfg.Storage.CredentialsPath))
	if err != nil {
		fmt.Printf("Failed to initialize bigquery client: %v\n", err)
		os.Exit(1)
	}
	defer bqClient.Close()
	wh := warehouse.New(bqClient, cfg.Warehouse.ProjectID, cfg.Warehouse.Dataset, cfg.Warehouse.DefaultUserID)

	menuSvc := menu.NewService(geminiClient, wh)

	result, err := menuSvc.GeneratePlanFromInventory(ctx)
	if err != nil {
		fmt.Printf("Failed to generate menu: %v\n", err)
		os.Exit(1)
	}

	rec := result.Records
	fmt.Printf("メニュー: %s（%s、%d分）\n", rec.Header.Title, rec.Header.Cuisine, rec.Header.TotalTimeMin)
	fmt.Printf("栄養: %.0fkcal たんぱく質%.1fg 脂質%.1fg 炭水化物%.1fg 塩分%.1fg\n",
		rec.Nutrition.Kcal, rec.Nutrition.ProteinG, rec.Nutrition.FatG, rec.Nutrition.CarbG, rec.Nutrition.SaltG)
	fmt.Println("材料:")
	for _, ing := range rec.Ingredients {
		fmt.Printf("  - %s %s%s\n", ing.Name, ing.Quantity, ing.Unit)
	}
	fmt.Println("手順:")
	for _, ins := range rec.Instructions {
		fmt.Printf("  %d. %s\n", ins.Step, ins.Text)
	}

	menuID, err := wh.SaveMenu(ctx, rec, cfg.Warehouse.DefaultUserID)
	if err != nil {
		fmt.Printf("Failed to save menu: %v\n", err)
		os.Exit(1)
	}
	if err := wh.AppendInventoryUpdates(ctx, rec.Ingredients, cfg.Warehouse.DefaultUserID); err != nil {
		fmt.Printf("Failed to update inventory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("保存しました: %s\n", menuID)
}
