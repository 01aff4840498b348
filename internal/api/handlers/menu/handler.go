package menu

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	flyercore "meal-planner-api/internal/core/flyer"
	menucore "meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/pkg/common"
)

// PlanGenerator 獻立生成服務介面
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, in menucore.GenerateInput) (*menucore.GenerateResult, error)
}

// FlyerRecognizer チラシ辨識服務介面
type FlyerRecognizer interface {
	Recognize(ctx context.Context) ([]flyercore.Item, error)
	RecognizeAndStore(ctx context.Context) error
}

// FoodImageGenerator 料理写真生成介面
type FoodImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// LegacyRecipeSaver 舊版菜單落庫介面
type LegacyRecipeSaver interface {
	AppendLegacyMenu(ctx context.Context, header, nutrition map[string]any, ingredients []menucore.Ingredient, instructions []menucore.InstructionRecord) (string, error)
}

// Handler 獻立相關請求處理器
type Handler struct {
	planner PlanGenerator
	flyer   FlyerRecognizer
	images  FoodImageGenerator
	saver   LegacyRecipeSaver
}

// NewHandler 建立獻立請求處理器
func NewHandler(planner PlanGenerator, flyer FlyerRecognizer, images FoodImageGenerator, saver LegacyRecipeSaver) *Handler {
	return &Handler{planner: planner, flyer: flyer, images: images, saver: saver}
}

// respondError 記錄並回傳統一的錯誤格式
func respondError(c *gin.Context, err error) {
	common.LogError("請求處理失敗",
		zap.String("path", c.Request.URL.Path),
		zap.String("code", common.ErrorCode(err)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
