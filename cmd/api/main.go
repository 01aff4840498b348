package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/bigquery"
	gcs "cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"meal-planner-api/internal/api"
	"meal-planner-api/internal/core/flyer"
	"meal-planner-api/internal/core/gemini"
	"meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/core/storage"
	"meal-planner-api/internal/core/warehouse"
	"meal-planner-api/internal/infrastructure/config"
	"meal-planner-api/internal/pkg/common"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("text_model", cfg.Gemini.TextModel),
		zap.String("vision_model", cfg.Gemini.VisionModel),
		zap.String("image_model", cfg.Gemini.ImageModel),
		zap.String("project", cfg.Warehouse.ProjectID),
		zap.String("dataset", cfg.Warehouse.Dataset),
	)

	ctx := context.Background()

	// Gemini 客戶端
	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize gemini client", zap.Error(err))
	}
	defer geminiClient.Close()

	imageClient := gemini.NewImageClient(cfg)

	// 物件儲存（チラシ圖片）
	gcsClient, err := gcs.NewClient(ctx, option.WithCredentialsFile(cfg.Storage.CredentialsPath))
	if err != nil {
		common.LogFatal("Failed to initialize storage client", zap.Error(err))
	}
	defer gcsClient.Close()
	bucket := storage.NewBucket(gcsClient, cfg.Storage.Bucket)

	// 資料倉儲
	bqClient, err := bigquery.NewClient(ctx, cfg.Warehouse.ProjectID, option.WithCredentialsFile(cfg.Storage.CredentialsPath))
	if err != nil {
		common.LogFatal("Failed to initialize bigquery client", zap.Error(err))
	}
	defer bqClient.Close()
	wh := warehouse.New(bqClient, cfg.Warehouse.ProjectID, cfg.Warehouse.Dataset, cfg.Warehouse.DefaultUserID)

	// 服務
	menuSvc := menu.NewService(geminiClient, wh)
	flyerSvc := flyer.NewService(geminiClient, bucket, wh, cfg.Storage.Prefix)

	// 設置路由
	router := api.SetupRouter(cfg, api.Services{
		Planner: menuSvc,
		Flyer:   flyerSvc,
		Images:  imageClient,
		Saver:   wh,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
