package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/auth"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type AuthHandler struct {
	db    *gorm.DB
	jwt   *auth.Manager
	audit *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, jwt *auth.Manager, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		httperr.Respond(c, err, "login_failed")
		return
	}

	if !user.Active || auth.ComparePassword(user.PasswordHash, req.Password) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, exp, err := h.jwt.Issue(user.ID, authz.Role(user.Role))
	if err != nil {
		httperr.Respond(c, err, "failed_to_generate_token")
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, User: user})
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, err, "failed_to_hash_password")
		return
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		Active:       true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		writeDBError(c, err, "user_not_found", "failed_to_create_user")
		return
	}

	recordAudit(h.audit, c, "user_created", "user", user.ID, map[string]any{"role": user.Role})
	httpresp.Created(c, user)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Order("username ASC").
		Find(&users).Error; err != nil {
		httperr.Respond(c, err, "failed_to_list_users")
		return
	}
	httpresp.List(c, users)
}
