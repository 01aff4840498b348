package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"

	menucore "meal-planner-api/internal/core/menu"
)

// HandleGenerate 依最新的人口統計快照生成獻立。
// 請求體可帶任意 JSON，但內容不影響生成（文脈一律取自倉儲）。
func (h *Handler) HandleGenerate(c *gin.Context) {
	result, err := h.planner.GeneratePlan(c.Request.Context(), menucore.GenerateInput{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"header":       []menucore.HeaderRecord{result.Records.Header},
		"nutrition":    []menucore.Nutrition{result.Records.Nutrition},
		"ingredients":  result.Records.Ingredients,
		"instructions": result.Records.Instructions,
	})
}
