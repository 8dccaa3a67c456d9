package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, actor.UserID).Error; err != nil {
		writeDBError(c, err, "user_not_found", "failed_to_get_user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"role":        actor.Role,
		"permissions": actor.Permissions(),
	})
}
