package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meal-planner-api/internal/infrastructure/config"
	"meal-planner-api/internal/pkg/common"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client Gemini API 客戶端，文字與視覺模型各持有一個已配置的模型實例。
// 模型實例建立後只讀，不在調用之間保存狀態。
type Client struct {
	genai  *genai.Client
	text   *genai.GenerativeModel
	vision *genai.GenerativeModel
}

// NewClient 創建 Gemini 客戶端
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// 文字生成模型：溫度與輸出上限由設定覆蓋
	textOpts := DefaultOptions()
	textOpts.Temperature = cfg.Gemini.Temperature
	textOpts.MaxOutputTokens = cfg.Gemini.MaxOutputTokens
	text := client.GenerativeModel(cfg.Gemini.TextModel)
	textOpts.apply(text)

	// 視覺模型：チラシ認識用的低溫設定
	vision := client.GenerativeModel(cfg.Gemini.VisionModel)
	VisionOptions().apply(vision)

	return &Client{
		genai:  client,
		text:   text,
		vision: vision,
	}, nil
}

// GenerateText 以對話形式發送 system prompt 與 human prompt，返回模型的主要文字輸出
func (c *Client) GenerateText(ctx context.Context, systemPrompt, humanPrompt string) (string, error) {
	start := time.Now()

	chat := c.text.StartChat()
	if systemPrompt != "" {
		if _, err := chat.SendMessage(ctx, genai.Text(systemPrompt)); err != nil {
			return "", common.NewModelInvocationError("failed to send system prompt", err)
		}
	}

	resp, err := chat.SendMessage(ctx, genai.Text(humanPrompt))
	if err != nil {
		common.LogError("Gemini 文字生成失敗",
			zap.Error(err),
			zap.Duration("耗時", time.Since(start)),
		)
		return "", common.NewModelInvocationError("model call failed", err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return "", err
	}

	common.LogInfo("Gemini 文字生成成功",
		zap.Int("content_length", len(text)),
		zap.Duration("耗時", time.Since(start)),
	)
	return text, nil
}

// GenerateFromImage 單次視覺調用：一張圖片附件加一段文字指示
func (c *Client) GenerateFromImage(ctx context.Context, prompt string, image []byte, format string) (string, error) {
	start := time.Now()

	resp, err := c.vision.GenerateContent(ctx, genai.ImageData(format, image), genai.Text(prompt))
	if err != nil {
		common.LogError("Gemini 圖片認識失敗",
			zap.Error(err),
			zap.Duration("耗時", time.Since(start)),
		)
		return "", common.NewModelInvocationError("vision call failed", err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return "", err
	}

	common.LogInfo("Gemini 圖片認識成功",
		zap.Int("content_length", len(text)),
		zap.Duration("耗時", time.Since(start)),
	)
	return text, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	return c.genai.Close()
}

// candidateText 從回應中取出第一個候選的文字，檢查空候選與安全過濾
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", common.NewModelInvocationError("empty candidates in response", nil)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", common.NewModelInvocationError("response blocked by safety filter", nil)
	}
	if cand.Content == nil {
		return "", common.NewModelInvocationError("no content in response", nil)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", common.NewModelInvocationError("empty text in response", nil)
	}
	return sb.String(), nil
}
