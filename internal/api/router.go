package api

import (
	"context"
	"net/http"
	"time"

	"foodgpt-api/internal/api/handlers/health"
	recipeHandler "foodgpt-api/internal/api/handlers/recipe"
	"foodgpt-api/internal/api/middleware"
	"foodgpt-api/internal/core/ai/cache"
	"foodgpt-api/internal/core/ai/ollama"
	recipeService "foodgpt-api/internal/core/recipe"
	"foodgpt-api/internal/core/vision"
	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
	"foodgpt-api/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置：生成一份食譜可能接近生成服務逾時上限，外層再放寬一倍
	timeoutDuration = 240 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store storage.RecipeStore, cacheSvc cache.Cache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("vision_enabled", cfg.Vision.Enabled),
		zap.String("model", cfg.Ollama.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化生成服務與食譜服務
	generator := ollama.NewClient(&cfg.Ollama)
	recipeSvc := recipeService.NewService(generator, store, cacheSvc)

	// 全局中間件：設置超時與配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
			return
		}
	})

	// 存活與健康檢查路由
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck)

	handler := recipeHandler.NewHandler(recipeSvc)

	// 食譜生成，短時間內的重複請求直接回拒
	router.POST("/generate-recipe/", middleware.Deduplication(cfg), handler.Generate)

	// 食譜紀錄查詢
	router.GET("/history/:user_id", handler.History)
	router.GET("/recipe/:recipe_id", handler.GetByID)

	// 食材辨識
	if cfg.Vision.Enabled {
		detector := vision.NewInferenceClient(&cfg.Vision)
		visionSvc := vision.NewService(detector)
		ingredientHandler := recipeHandler.NewIngredientHandler(visionSvc, cfg.Vision.MaxSizeBytes)
		router.POST("/detect-ingredients/", ingredientHandler.Detect)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
