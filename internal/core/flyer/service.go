package flyer

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"meal-planner-api/internal/pkg/common"
)

// FlyerRecognitionPrompt チラシ画像から食品のみを抽出させるプロンプト。
// 出力は JSON 配列のみで、説明文を含めないことをモデルに要求する。
const FlyerRecognitionPrompt = `このチラシ画像から食品の商品情報のみを抽出してください。
食品以外（日用品、衣料品など）は含めないでください。

各商品について、以下のキーを持つJSONオブジェクトの配列として出力してください：
- "商品": 商品名
- "数量": 数量や内容量
- "値段": 価格
- "特売日": 特売日や期間

値が不明な場合は空文字列にしてください。
JSON以外の文章は含めないでください。`

// Item 辨識出的チラシ商品。鍵名依模型輸出契約採日文。
type Item struct {
	Name     string `json:"商品"`
	Quantity string `json:"数量"`
	Price    string `json:"値段"`
	SaleDate string `json:"特売日"`
}

// VisionModel 影像理解模型介面
type VisionModel interface {
	GenerateFromImage(ctx context.Context, prompt string, image []byte, format string) (string, error)
}

// ImageSource 提供最近上傳的チラシ影像
type ImageSource interface {
	LatestImage(ctx context.Context, prefix string) ([]byte, string, error)
}

// FlyerStore 持久化辨識結果
type FlyerStore interface {
	ReplaceFlyerData(ctx context.Context, items []Item) error
}

// Service チラシ辨識服務
type Service struct {
	vision VisionModel
	images ImageSource
	store  FlyerStore
	prefix string
}

// NewService 建立チラシ辨識服務
func NewService(vision VisionModel, images ImageSource, store FlyerStore, prefix string) *Service {
	return &Service{vision: vision, images: images, store: store, prefix: prefix}
}

// ParseItems 解析模型輸出為商品列表。缺少任何必要鍵時回報缺失的鍵。
func ParseItems(raw string) ([]Item, error) {
	cleaned := common.ExtractJSON(raw)

	var rows []map[string]json.RawMessage
	if err := common.ParseJSON(cleaned, &rows); err != nil {
		return nil, common.NewMalformedResponseError(err, raw)
	}
	for _, row := range rows {
		for _, key := range []string{"商品", "数量", "値段", "特売日"} {
			if _, ok := row[key]; !ok {
				return nil, common.NewSchemaViolationError(key)
			}
		}
	}

	var items []Item
	if err := common.ParseJSON(cleaned, &items); err != nil {
		return nil, common.NewMalformedResponseError(err, raw)
	}
	return items, nil
}

// Recognize 取得最新チラシ影像並辨識出商品列表
func (s *Service) Recognize(ctx context.Context) ([]Item, error) {
	image, format, err := s.images.LatestImage(ctx, s.prefix)
	if err != nil {
		return nil, err
	}
	common.LogInfo("取得チラシ影像", zap.String("format", format), zap.Int("bytes", len(image)))

	raw, err := s.vision.GenerateFromImage(ctx, FlyerRecognitionPrompt, image, format)
	if err != nil {
		return nil, err
	}

	items, err := ParseItems(raw)
	if err != nil {
		return nil, err
	}
	common.LogInfo("チラシ辨識完成", zap.Int("items", len(items)))
	return items, nil
}

// RecognizeAndStore 辨識チラシ後覆寫倉儲中的 flyer_data
func (s *Service) RecognizeAndStore(ctx context.Context) error {
	items, err := s.Recognize(ctx)
	if err != nil {
		return err
	}
	return s.store.ReplaceFlyerData(ctx, items)
}

// ProductNames 取出商品名稱列表（供獻立プロンプト使用）
func ProductNames(items []Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
