package recipe

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodgpt-api/internal/core/vision"
	"foodgpt-api/internal/pkg/common"
)

// IngredientHandler 食材辨識處理器
type IngredientHandler struct {
	service *vision.Service
	maxSize int64
}

// NewIngredientHandler 創建食材辨識處理器
func NewIngredientHandler(service *vision.Service, maxSize int64) *IngredientHandler {
	return &IngredientHandler{service: service, maxSize: maxSize}
}

// Detect 從上傳的照片中辨識食材
// POST /detect-ingredients/
func (h *IngredientHandler) Detect(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided."})
		return
	}
	defer file.Close()

	if h.maxSize > 0 && header.Size > h.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image file too large."})
		return
	}

	var reader io.Reader = file
	if h.maxSize > 0 {
		reader = io.LimitReader(file, h.maxSize)
	}
	image, err := io.ReadAll(reader)
	if err != nil {
		common.LogError("讀取上傳影像失敗", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file."})
		return
	}
	if len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty image file."})
		return
	}

	ingredients, err := h.service.ExtractIngredients(c.Request.Context(), image)
	if err != nil {
		h.respondDetectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// respondDetectError 偵測服務錯誤轉 HTTP 回應
func (h *IngredientHandler) respondDetectError(c *gin.Context, err error) {
	common.LogError("食材辨識失敗", zap.Error(err))
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingredient detection unavailable."})
}
