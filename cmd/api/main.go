package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgpt-api/internal/api"
	"foodgpt-api/internal/core/ai/cache"
	"foodgpt-api/internal/infrastructure/config"
	"foodgpt-api/internal/pkg/common"
	"foodgpt-api/internal/storage"
	"foodgpt-api/internal/storage/firestore"
	"foodgpt-api/internal/storage/memory"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
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

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.String("ollama_base_url", cfg.Ollama.BaseURL),
		zap.String("ollama_model", cfg.Ollama.Model),
		zap.String("firestore_collection", cfg.Firestore.Collection),
	)

	// 初始化文件儲存
	store, err := newStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize recipe store", zap.Error(err))
	}
	defer store.Close()

	// 初始化快取
	cacheSvc, err := cache.New(&cfg.Cache)
	// 只在快取開啟但初始化失敗時才 Fatal
	if cfg.Cache.Enabled && err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if cacheSvc != nil {
		defer cacheSvc.Close()
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, store, cacheSvc)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
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

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// newStore 依設定選擇儲存後端：有專案識別時走 Firestore，否則退回記憶體儲存
func newStore(cfg *config.Config) (storage.RecipeStore, error) {
	if cfg.Firestore.ProjectID != "" {
		return firestore.NewStore(context.Background(), &cfg.Firestore)
	}

	common.LogWarn("FIRESTORE_PROJECT_ID 未設定，改用記憶體儲存，重啟後紀錄即消失")
	return memory.NewStore(), nil
}
