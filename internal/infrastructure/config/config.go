package config

import (
	"fmt"
	"strings"
	"time"

	"meal-planner-api/internal/pkg/common"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
	Storage   StorageConfig   `mapstructure:"storage"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GeminiConfig Gemini 模型配置
type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	TextModel       string  `mapstructure:"text_model"`
	VisionModel     string  `mapstructure:"vision_model"`
	ImageModel      string  `mapstructure:"image_model"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
}

// WarehouseConfig BigQuery 配置
type WarehouseConfig struct {
	ProjectID     string `mapstructure:"project_id"`
	Dataset       string `mapstructure:"dataset"`
	DefaultUserID string `mapstructure:"default_user_id"`
}

// StorageConfig 物件儲存（チラシ圖片）配置
type StorageConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時忽略）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量（沿用原系統的變數名）
	viper.BindEnv("gemini.api_key", "GOOGLE_API_KEY")
	viper.BindEnv("gemini.temperature", "GEMINI_TEMPERATURE")
	viper.BindEnv("gemini.max_output_tokens", "GEMINI_MAX_OUTPUT_TOKENS")
	viper.BindEnv("warehouse.project_id", "GOOGLE_CLOUD_PROJECT")
	viper.BindEnv("warehouse.dataset", "BIGQUERY_DATASET")
	viper.BindEnv("warehouse.default_user_id", "DEFAULT_USER_ID")
	viper.BindEnv("storage.credentials_path", "FIREBASE_CRED_PATH")
	viper.BindEnv("storage.bucket", "FIREBASE_STORAGE_BUCKET")
	viper.BindEnv("storage.prefix", "FLYER_IMAGE_PREFIX")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "google_api_key:", maskAPIKey(viper.GetString("gemini.api_key")), "project:", viper.GetString("warehouse.project_id"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "meal-planner-api")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Gemini 設定
	viper.SetDefault("gemini.text_model", "gemini-2.5-flash-preview-05-20")
	viper.SetDefault("gemini.vision_model", "gemini-2.5-flash-preview-05-20")
	viper.SetDefault("gemini.image_model", "gemini-2.0-flash-preview-image-generation")
	viper.SetDefault("gemini.temperature", 0.3)
	viper.SetDefault("gemini.max_output_tokens", 10000)

	// 資料倉儲設定
	viper.SetDefault("warehouse.default_user_id", "user_001")

	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定，缺少必要環境變數時啟動失敗
func validateConfig(config *Config) error {
	required := []struct {
		value string
		name  string
	}{
		{config.Gemini.APIKey, "GOOGLE_API_KEY"},
		{config.Warehouse.ProjectID, "GOOGLE_CLOUD_PROJECT"},
		{config.Warehouse.Dataset, "BIGQUERY_DATASET"},
		{config.Storage.CredentialsPath, "FIREBASE_CRED_PATH"},
		{config.Storage.Bucket, "FIREBASE_STORAGE_BUCKET"},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return common.NewConfigurationError("missing required environment variables: " + strings.Join(missing, ", "))
	}

	if config.Server.Port == 0 {
		return common.NewConfigurationError("server port is required")
	}

	return nil
}
