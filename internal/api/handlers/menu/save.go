package menu

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	menucore "meal-planner-api/internal/core/menu"
)

// SaveRecipeRequest 外部落庫請求。Header 與 Nutrition 沿用生成回應的
// 單元素陣列形式，UserID 目前僅接收、不落庫。
type SaveRecipeRequest struct {
	Header       []map[string]any             `json:"header"`
	Nutrition    []map[string]any             `json:"nutrition"`
	Ingredients  []menucore.Ingredient        `json:"ingredients"`
	Instructions []menucore.InstructionRecord `json:"instructions"`
	UserID       string                       `json:"user_id"`
}

// HandleSaveRecipe 將外部傳入的菜單寫入舊版配置的三張表
func (h *Handler) HandleSaveRecipe(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("failed to parse request body: %w", err))
		return
	}

	var header, nutrition map[string]any
	if len(req.Header) > 0 {
		header = req.Header[0]
	}
	if len(req.Nutrition) > 0 {
		nutrition = req.Nutrition[0]
	}

	if _, err := h.saver.AppendLegacyMenu(c.Request.Context(), header, nutrition, req.Ingredients, req.Instructions); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}
