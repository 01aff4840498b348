package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"

	flyercore "meal-planner-api/internal/core/flyer"
	menucore "meal-planner-api/internal/core/menu"
)

// HandleGenerateFromFlyer 辨識最新チラシ後生成活用商品的獻立，並附上料理写真
func (h *Handler) HandleGenerateFromFlyer(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.flyer.Recognize(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	products := flyercore.ProductNames(items)

	result, err := h.planner.GeneratePlan(ctx, menucore.GenerateInput{Products: products})
	if err != nil {
		respondError(c, err)
		return
	}

	names := make([]string, 0, len(result.Records.Ingredients))
	for _, ing := range result.Records.Ingredients {
		names = append(names, ing.Name)
	}
	imageBase64, err := h.images.GenerateImage(ctx, menucore.FoodImagePrompt(result.Records.Header.Title, names))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"header":         []menucore.HeaderRecord{result.Records.Header},
		"nutrition":      []menucore.Nutrition{result.Records.Nutrition},
		"ingredients":    result.Records.Ingredients,
		"instructions":   result.Records.Instructions,
		"image_base64":   imageBase64,
		"demo":           result.Demo,
		"flyer_products": items,
	})
}

// HandleFlyerImageProcessor 辨識最新チラシ並覆寫倉儲中的商品資料
func (h *Handler) HandleFlyerImageProcessor(c *gin.Context) {
	if err := h.flyer.RecognizeAndStore(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nil)
}
