package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-planner-api/internal/infrastructure/config"
	"meal-planner-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const generativeLanguageBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ImageClient 圖片生成客戶端。
// 圖片生成模型需要 responseModalities，SDK 的 GenerationConfig 沒有這個欄位，改走 REST。
type ImageClient struct {
	client  *resty.Client
	model   string
	options Options
}

// NewImageClient 創建圖片生成客戶端
func NewImageClient(cfg *config.Config) *ImageClient {
	client := resty.New().
		SetBaseURL(generativeLanguageBaseURL).
		SetQueryParam("key", cfg.Gemini.APIKey).
		SetHeader("Content-Type", "application/json")

	opts := DefaultOptions()
	opts.ResponseMIMEType = "" // 圖片回應不是 JSON

	return &ImageClient{
		client:  client,
		model:   cfg.Gemini.ImageModel,
		options: opts,
	}
}

// generateContentRequest REST generateContent 請求體
type generateContentRequest struct {
	Contents         []restContent        `json:"contents"`
	GenerationConfig restGenerationConfig `json:"generationConfig"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *restInlineData `json:"inlineData,omitempty"`
}

type restInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// generateContentResponse REST generateContent 回應體
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []restPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateImage 以自由文字指示生成一張圖片，返回第一個帶二進制資料的部分（base64 編碼）
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	req := generateContentRequest{
		Contents: []restContent{
			{Parts: []restPart{{Text: prompt}}},
		},
		GenerationConfig: c.options.toRESTConfig([]string{"TEXT", "IMAGE"}),
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&generateContentResponse{}).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", common.NewModelInvocationError("failed to send image generation request", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("圖片生成 API 返回錯誤",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.model),
		)
		return "", common.NewModelInvocationError(fmt.Sprintf("image generation API returned status %d", resp.StatusCode()), nil)
	}

	result, ok := resp.Result().(*generateContentResponse)
	if !ok || len(result.Candidates) == 0 {
		return "", common.NewModelInvocationError("empty candidates in image generation response", nil)
	}

	// 取第一個帶 inlineData 的部分
	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			common.LogInfo("圖片生成成功",
				zap.String("mime_type", part.InlineData.MIMEType),
				zap.Duration("耗時", time.Since(start)),
			)
			return part.InlineData.Data, nil
		}
	}

	return "", common.NewNoImageInResponseError()
}
