package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-planner-api/internal/api/handlers/health"
	menuHandler "meal-planner-api/internal/api/handlers/menu"
	"meal-planner-api/internal/api/middleware"
	"meal-planner-api/internal/infrastructure/config"
	"meal-planner-api/internal/pkg/common"
)

const (
	// 模型鏈路較長，超時放寬到 120 秒
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// Services 路由依賴的服務集合
type Services struct {
	Planner menuHandler.PlanGenerator
	Flyer   menuHandler.FlyerRecognizer
	Images  menuHandler.FoodImageGenerator
	Saver   menuHandler.LegacyRecipeSaver
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svcs Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.NewString()
	})))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求級超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/health", health.HealthCheck)

	h := menuHandler.NewHandler(svcs.Planner, svcs.Flyer, svcs.Images, svcs.Saver)
	router.POST("/generate", h.HandleGenerate)
	router.POST("/generate_menu_from_flyer", h.HandleGenerateFromFlyer)
	router.POST("/flyer_image_processor", h.HandleFlyerImageProcessor)
	router.POST("/save_recipe", h.HandleSaveRecipe)

	common.LogInfo("Router setup completed successfully",
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}
