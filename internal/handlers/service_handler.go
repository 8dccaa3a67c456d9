package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	ucCatalog "github.com/BruksfildServices01/skin-clinic/internal/usecase/catalog"
)

type ServiceHandler struct {
	db      *gorm.DB
	catalog *ucCatalog.ActiveCatalog
	audit   *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, catalog *ucCatalog.ActiveCatalog, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, catalog: catalog, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name             string  `json:"name" binding:"required,max=200"`
	Description      string  `json:"description"`
	Duration         int     `json:"duration" binding:"required,min=1"`
	Price            float64 `json:"price" binding:"min=0"`
	SessionsRequired int     `json:"sessions_required" binding:"omitempty,min=1"`
	IsActive         *bool   `json:"is_active"`
}

type UpdateServiceRequest struct {
	Name             *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	Description      *string  `json:"description,omitempty"`
	Duration         *int     `json:"duration,omitempty" binding:"omitempty,min=1"`
	Price            *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	SessionsRequired *int     `json:"sessions_required,omitempty" binding:"omitempty,min=1"`
	IsActive         *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	active := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	if active == "true" && query == "" {
		services, err := h.catalog.ActiveServices(ctx)
		if err != nil {
			httperr.Respond(c, err, "failed_to_list_services")
			return
		}
		httpresp.List(c, services)
		return
	}

	q := h.db.WithContext(ctx)
	switch active {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err, "failed_to_list_services")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var s models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&s, id).Error; err != nil {
		writeDBError(c, err, "service_not_found", "failed_to_get_service")
		return
	}
	httpresp.OK(c, s)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s := models.Service{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Duration:         req.Duration,
		Price:            req.Price,
		SessionsRequired: req.SessionsRequired,
		IsActive:         req.IsActive == nil || *req.IsActive,
	}
	if s.SessionsRequired == 0 {
		s.SessionsRequired = 1
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&s).Error; err != nil {
		writeDBError(c, err, "service_not_found", "failed_to_create_service")
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	recordAudit(h.audit, c, "service_created", "service", s.ID, nil)
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var s models.Service
	if err := h.db.WithContext(ctx).First(&s, id).Error; err != nil {
		writeDBError(c, err, "service_not_found", "failed_to_get_service")
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		s.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.Duration != nil {
		s.Duration = *req.Duration
	}
	if req.Price != nil {
		s.Price = *req.Price
	}
	if req.SessionsRequired != nil {
		s.SessionsRequired = *req.SessionsRequired
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(ctx).Save(&s).Error; err != nil {
		writeDBError(c, err, "service_not_found", "failed_to_update_service")
		return
	}

	h.catalog.Invalidate(ctx)
	recordAudit(h.audit, c, "service_updated", "service", s.ID, nil)
	httpresp.OK(c, s)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	res := h.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error, "failed_to_delete_service")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "service_not_found")
		return
	}

	h.catalog.Invalidate(ctx)
	recordAudit(h.audit, c, "service_deleted", "service", id, nil)
	httpresp.NoContent(c)
}
