package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type ProductHandler struct {
	db                *gorm.DB
	audit             *audit.Dispatcher
	lowStockThreshold int
}

func NewProductHandler(db *gorm.DB, audit *audit.Dispatcher, lowStockThreshold int) *ProductHandler {
	return &ProductHandler{db: db, audit: audit, lowStockThreshold: lowStockThreshold}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description string  `json:"description"`
	SKU         string  `json:"sku" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"min=0"`
	StockQty    int     `json:"stock_qty" binding:"min=0"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	Description *string  `json:"description,omitempty"`
	SKU         *string  `json:"sku,omitempty" binding:"omitempty,max=100"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	StockQty    *int     `json:"stock_qty,omitempty" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// productView flags products under the low-stock threshold.
type productView struct {
	models.Product
	LowStock bool `json:"low_stock"`
}

func (h *ProductHandler) view(p models.Product) productView {
	return productView{Product: p, LowStock: catalog.IsLowStock(p.StockQty, h.lowStockThreshold)}
}

func (h *ProductHandler) views(products []models.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, h.view(p))
	}
	return out
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	active := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	switch active {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if c.Query("low_stock") == "true" {
		q = q.Where("stock_qty < ?", h.lowStockThreshold)
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		httperr.Respond(c, err, "failed_to_list_products")
		return
	}
	httpresp.List(c, h.views(products))
}

func (h *ProductHandler) LowStock(c *gin.Context) {
	var products []models.Product
	if err := h.db.WithContext(c.Request.Context()).
		Where("stock_qty < ?", h.lowStockThreshold).
		Order("stock_qty ASC, name ASC").
		Find(&products).Error; err != nil {
		httperr.Respond(c, err, "failed_to_list_products")
		return
	}
	httpresp.List(c, h.views(products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var p models.Product
	if err := h.db.WithContext(c.Request.Context()).First(&p, id).Error; err != nil {
		writeDBError(c, err, "product_not_found", "failed_to_get_product")
		return
	}
	httpresp.OK(c, h.view(p))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SKU:         strings.TrimSpace(req.SKU),
		Price:       req.Price,
		StockQty:    req.StockQty,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		writeDBError(c, err, "product_not_found", "failed_to_create_product")
		return
	}

	recordAudit(h.audit, c, "product_created", "product", p.ID, nil)
	httpresp.Created(c, h.view(p))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var p models.Product
	if err := h.db.WithContext(ctx).First(&p, id).Error; err != nil {
		writeDBError(c, err, "product_not_found", "failed_to_get_product")
		return
	}

	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.SKU != nil {
		p.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.StockQty != nil {
		p.StockQty = *req.StockQty
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(ctx).Save(&p).Error; err != nil {
		writeDBError(c, err, "product_not_found", "failed_to_update_product")
		return
	}

	recordAudit(h.audit, c, "product_updated", "product", p.ID, nil)
	httpresp.OK(c, h.view(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Product{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error, "failed_to_delete_product")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "product_not_found")
		return
	}

	recordAudit(h.audit, c, "product_deleted", "product", id, nil)
	httpresp.NoContent(c)
}
