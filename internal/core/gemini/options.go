package gemini

import (
	"github.com/google/generative-ai-go/genai"
)

// Options 模型生成參數（"全部入り"），對應每次調用的配置面
type Options struct {
	Temperature      float32
	TopP             float32
	TopK             int32
	CandidateCount   int32
	MaxOutputTokens  int32
	StopSequences    []string
	PresencePenalty  float32
	FrequencyPenalty float32

	// 追加選項
	SystemInstruction string
	SafetySettings    []*genai.SafetySetting
	ResponseMIMEType  string
	ResponseSchema    *genai.Schema
}

// DefaultOptions 一般文字生成的預設參數
func DefaultOptions() Options {
	return Options{
		Temperature:      0.7,
		TopP:             0.8,
		TopK:             40,
		CandidateCount:   1,
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
	}
}

// VisionOptions チラシ認識用的參數：低溫、單一候選，輸出力求決定論
func VisionOptions() Options {
	return Options{
		Temperature:      0.1,
		TopP:             1,
		TopK:             1,
		CandidateCount:   1,
		MaxOutputTokens:  65535,
		ResponseMIMEType: "application/json",
		SafetySettings:   blockNoneSafetySettings(),
	}
}

// apply 將參數套用到模型實例上（penalty 類參數 SDK 未暴露，僅在 REST 路徑生效）
func (o Options) apply(m *genai.GenerativeModel) {
	m.SetTemperature(o.Temperature)
	m.SetTopP(o.TopP)
	m.SetTopK(o.TopK)
	m.SetCandidateCount(o.CandidateCount)
	m.SetMaxOutputTokens(o.MaxOutputTokens)
	m.StopSequences = o.StopSequences
	m.ResponseMIMEType = o.ResponseMIMEType
	m.ResponseSchema = o.ResponseSchema
	m.SafetySettings = o.SafetySettings
	if o.SystemInstruction != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(o.SystemInstruction)},
		}
	}
}

// blockNoneSafetySettings チラシは広告圖片，全部類別放行（沿用原系統設定）
func blockNoneSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockNone,
		})
	}
	return settings
}

// restGenerationConfig REST 調用用的 generationConfig（圖片生成模型走 REST）
type restGenerationConfig struct {
	Temperature        float32  `json:"temperature,omitempty"`
	TopP               float32  `json:"topP,omitempty"`
	TopK               int32    `json:"topK,omitempty"`
	CandidateCount     int32    `json:"candidateCount,omitempty"`
	MaxOutputTokens    int32    `json:"maxOutputTokens,omitempty"`
	StopSequences      []string `json:"stopSequences,omitempty"`
	PresencePenalty    float32  `json:"presencePenalty,omitempty"`
	FrequencyPenalty   float32  `json:"frequencyPenalty,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// toRESTConfig 轉換為 REST generationConfig，附帶 response modalities
func (o Options) toRESTConfig(modalities []string) restGenerationConfig {
	return restGenerationConfig{
		Temperature:        o.Temperature,
		TopP:               o.TopP,
		TopK:               o.TopK,
		CandidateCount:     o.CandidateCount,
		MaxOutputTokens:    o.MaxOutputTokens,
		StopSequences:      o.StopSequences,
		PresencePenalty:    o.PresencePenalty,
		FrequencyPenalty:   o.FrequencyPenalty,
		ResponseModalities: modalities,
	}
}
