package menu

import (
	"context"

	"go.uber.org/zap"

	"meal-planner-api/internal/pkg/common"
)

// TextGenerator 文字生成模型介面
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, humanPrompt string) (string, error)
}

// ContextReader 讀取倉儲中的提示文脈資料
type ContextReader interface {
	DemographicSnapshot(ctx context.Context) ([]map[string]any, error)
	TableRows(ctx context.Context, table string) ([]map[string]any, error)
}

// Service 獻立生成服務
type Service struct {
	model  TextGenerator
	reader ContextReader
}

// NewService 建立獻立生成服務
func NewService(model TextGenerator, reader ContextReader) *Service {
	return &Service{model: model, reader: reader}
}

// GenerateInput 生成選項。Products 非 nil 時改用チラシ商品リスト付きのプロンプト。
type GenerateInput struct {
	Products []string
}

// GenerateResult 生成結果：解析後的獻立、落庫紀錄與當次使用的人口統計快照
type GenerateResult struct {
	Plan    *MealPlan
	Records Records
	Demo    []map[string]any
}

// GeneratePlan 讀取最新人口統計快照、呼叫模型並解析為結構化獻立
func (s *Service) GeneratePlan(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	demo, err := s.reader.DemographicSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	common.LogInfo("取得人口統計快照", zap.Int("rows", len(demo)))

	var human string
	if in.Products != nil {
		human = FlyerPrompt(demo, in.Products)
	} else {
		human = GeneratePrompt(demo)
	}

	raw, err := s.model.GenerateText(ctx, SystemPrompt, human)
	if err != nil {
		return nil, err
	}

	plan, err := ParseMealPlan(raw)
	if err != nil {
		return nil, err
	}
	common.LogInfo("獻立生成完成", zap.String("title", plan.Title))

	return &GenerateResult{Plan: plan, Records: Decompose(plan), Demo: demo}, nil
}

// GeneratePlanFromInventory 以冷蔵庫在庫・レシピ材料・チラシデータ為文脈生成獻立
func (s *Service) GeneratePlanFromInventory(ctx context.Context) (*GenerateResult, error) {
	fridge, err := s.reader.TableRows(ctx, "fridge_items")
	if err != nil {
		return nil, err
	}
	recipe, err := s.reader.TableRows(ctx, "recipe_ingredients")
	if err != nil {
		return nil, err
	}
	flyer, err := s.reader.TableRows(ctx, "flyer_data")
	if err != nil {
		return nil, err
	}

	raw, err := s.model.GenerateText(ctx, SystemPrompt, InventoryPrompt(fridge, recipe, flyer))
	if err != nil {
		return nil, err
	}

	plan, err := ParseMealPlan(raw)
	if err != nil {
		return nil, err
	}
	common.LogInfo("獻立生成完成", zap.String("title", plan.Title))

	return &GenerateResult{Plan: plan, Records: Decompose(plan)}, nil
}
