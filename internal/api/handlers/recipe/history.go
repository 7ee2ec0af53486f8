package recipe

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodgpt-api/internal/pkg/common"
)

// History 查詢使用者最近的食譜紀錄
// GET /history/:user_id
func (h *Handler) History(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		userID = common.DefaultUserID
	}

	entries, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 查無紀錄時回空陣列而非 null
	if entries == nil {
		entries = []common.StoredRecipeEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// GetByID 以識別碼查詢單筆食譜紀錄
// GET /recipe/:recipe_id
func (h *Handler) GetByID(c *gin.Context) {
	recipeID := c.Param("recipe_id")

	entry, err := h.service.GetByID(c.Request.Context(), recipeID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if entry == nil {
		common.LogInfo("查無食譜紀錄", zap.String("recipe_id", recipeID))
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found."})
		return
	}

	entry.ID = recipeID
	c.JSON(http.StatusOK, entry)
}
