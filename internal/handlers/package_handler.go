package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/skin-clinic/internal/usecase/catalog"
)

type PackageHandler struct {
	packages *ucCatalog.Packages
}

func NewPackageHandler(packages *ucCatalog.Packages) *PackageHandler {
	return &PackageHandler{packages: packages}
}

type PackageRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description"`
	ServiceIDs    []uint   `json:"service_ids" binding:"required"`
	TotalSessions int      `json:"total_sessions" binding:"required,min=1"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,min=0"`
	Price         float64  `json:"price" binding:"min=0"`
	IsActive      *bool    `json:"is_active"`
}

func (r PackageRequest) input() ucCatalog.PackageInput {
	return ucCatalog.PackageInput{
		Name:          r.Name,
		Description:   r.Description,
		ServiceIDs:    r.ServiceIDs,
		TotalSessions: r.TotalSessions,
		OriginalPrice: r.OriginalPrice,
		Price:         r.Price,
		IsActive:      r.IsActive == nil || *r.IsActive,
	}
}

func (h *PackageHandler) List(c *gin.Context) {
	out, err := h.packages.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_packages")
		return
	}
	httpresp.List(c, out)
}

func (h *PackageHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.packages.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_package")
		return
	}
	httpresp.OK(c, out)
}

func (h *PackageHandler) Create(c *gin.Context) {
	var req PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.packages.Save(c.Request.Context(), middleware.Actor(c), 0, req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_package")
		return
	}
	httpresp.Created(c, out)
}

func (h *PackageHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.packages.Save(c.Request.Context(), middleware.Actor(c), id, req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_package")
		return
	}
	httpresp.OK(c, out)
}

func (h *PackageHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.packages.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.Respond(c, err, "failed_to_delete_package")
		return
	}
	httpresp.NoContent(c)
}
