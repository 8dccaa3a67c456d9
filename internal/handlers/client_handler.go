package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
	ucTracking "github.com/BruksfildServices01/skin-clinic/internal/usecase/tracking"
)

type ClientHandler struct {
	db      *gorm.DB
	profile *ucTracking.ClientProfile
	audit   *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, profile *ucTracking.ClientProfile, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, profile: profile, audit: audit}
}

type ClientRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number" binding:"max=20"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,date"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

func (r ClientRequest) apply(cl *models.Client) {
	cl.FirstName = strings.TrimSpace(r.FirstName)
	cl.LastName = strings.TrimSpace(r.LastName)
	cl.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	cl.Address = r.Address
	cl.Notes = r.Notes
	cl.DateOfBirth = nil
	if r.DateOfBirth != "" {
		// already validated by the date tag
		d, _ := timezone.ParseDate(r.DateOfBirth)
		cl.DateOfBirth = &d
	}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone_number LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("last_name ASC, first_name ASC").
		Find(&clients).Error; err != nil {
		httperr.Respond(c, err, "failed_to_list_clients")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var cl models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&cl, id).Error; err != nil {
		writeDBError(c, err, "client_not_found", "failed_to_get_client")
		return
	}
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	var cl models.Client
	req.apply(&cl)
	if err := h.db.WithContext(c.Request.Context()).Create(&cl).Error; err != nil {
		writeDBError(c, err, "client_not_found", "failed_to_create_client")
		return
	}

	recordAudit(h.audit, c, "client_created", "client", cl.ID, nil)
	httpresp.Created(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var cl models.Client
	if err := h.db.WithContext(ctx).First(&cl, id).Error; err != nil {
		writeDBError(c, err, "client_not_found", "failed_to_get_client")
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	req.apply(&cl)

	if err := h.db.WithContext(ctx).Save(&cl).Error; err != nil {
		writeDBError(c, err, "client_not_found", "failed_to_update_client")
		return
	}

	recordAudit(h.audit, c, "client_updated", "client", cl.ID, nil)
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error, "failed_to_delete_client")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "client_not_found")
		return
	}

	recordAudit(h.audit, c, "client_deleted", "client", id, nil)
	httpresp.NoContent(c)
}

// Profile returns the client with tracked packages, service sessions and
// what can still be assigned.
func (h *ClientHandler) Profile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	out, err := h.profile.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_load_profile")
		return
	}
	httpresp.OK(c, out)
}
