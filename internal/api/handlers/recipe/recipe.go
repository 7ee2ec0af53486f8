// Package recipe 食譜相關的 HTTP 處理器
package recipe

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodgpt-api/internal/core/recipe"
	"foodgpt-api/internal/pkg/common"
)

// Handler 食譜處理器
type Handler struct {
	service *recipe.Service
}

// NewHandler 創建食譜處理器
func NewHandler(service *recipe.Service) *Handler {
	return &Handler{service: service}
}

// Generate 處理食譜生成請求
// POST /generate-recipe/
func (h *Handler) Generate(c *gin.Context) {
	var req common.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式錯誤", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body.",
		})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError 將服務層錯誤轉換為 HTTP 回應
// 驗證錯誤回 400，上游錯誤依 CustomError 的狀態碼回應
func (h *Handler) respondError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		common.LogError("食譜生成失敗",
			zap.String("code", customErr.Code),
			zap.Error(err),
		)
		c.JSON(customErr.Status, gin.H{"error": customErr.Message})
		return
	}

	common.LogError("食譜生成發生未預期錯誤", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
}
