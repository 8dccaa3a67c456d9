package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/skin-clinic/internal/usecase/appointment"
)

type StaffHandler struct {
	db    *gorm.DB
	slots *ucAppointment.GetAvailability
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, slots *ucAppointment.GetAvailability, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, slots: slots, audit: audit}
}

// --------- Requests ---------

type StaffRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" binding:"required,max=100"`
	PhoneNumber    string `json:"phone_number" binding:"max=20"`
	Specialization string `json:"specialization" binding:"max=200"`
	Bio            string `json:"bio"`
	IsActive       *bool  `json:"is_active"`
}

type AvailabilityDay struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time" binding:"omitempty,clock"`
	EndTime   string `json:"end_time" binding:"omitempty,clock"`
}

type AvailabilityUpdateRequest struct {
	Days []AvailabilityDay `json:"days" binding:"required,dive"`
}

// --------- Staff ---------

func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	switch c.Query("active") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	var staff []models.StaffMember
	if err := q.Order("first_name ASC, last_name ASC").Find(&staff).Error; err != nil {
		httperr.Respond(c, err, "failed_to_list_staff")
		return
	}
	httpresp.List(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var s models.StaffMember
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Availability", func(db *gorm.DB) *gorm.DB { return db.Order("weekday ASC") }).
		First(&s, id).Error; err != nil {
		writeDBError(c, err, "staff_not_found", "failed_to_get_staff")
		return
	}
	httpresp.OK(c, s)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	s := models.StaffMember{}
	applyStaff(&s, req)

	if err := h.db.WithContext(c.Request.Context()).Create(&s).Error; err != nil {
		writeDBError(c, err, "staff_not_found", "failed_to_create_staff")
		return
	}

	recordAudit(h.audit, c, "staff_created", "staff", s.ID, nil)
	httpresp.Created(c, s)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var s models.StaffMember
	if err := h.db.WithContext(ctx).First(&s, id).Error; err != nil {
		writeDBError(c, err, "staff_not_found", "failed_to_get_staff")
		return
	}

	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}
	applyStaff(&s, req)

	if err := h.db.WithContext(ctx).Save(&s).Error; err != nil {
		writeDBError(c, err, "staff_not_found", "failed_to_update_staff")
		return
	}

	recordAudit(h.audit, c, "staff_updated", "staff", s.ID, nil)
	httpresp.OK(c, s)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.StaffMember{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error, "failed_to_delete_staff")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "staff_not_found", "staff_not_found")
		return
	}

	recordAudit(h.audit, c, "staff_deleted", "staff", id, nil)
	httpresp.NoContent(c)
}

func applyStaff(s *models.StaffMember, req StaffRequest) {
	s.FirstName = strings.TrimSpace(req.FirstName)
	s.LastName = strings.TrimSpace(req.LastName)
	s.PhoneNumber = req.PhoneNumber
	s.Specialization = req.Specialization
	s.Bio = req.Bio
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	} else if s.ID == 0 {
		s.IsActive = true
	}
}

// --------- Availability ---------

func (h *StaffHandler) GetAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var days []models.StaffAvailability
	if err := h.db.WithContext(c.Request.Context()).
		Where("staff_id = ?", id).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		httperr.Respond(c, err, "failed_to_get_availability")
		return
	}
	httpresp.List(c, days)
}

// UpdateAvailability replaces the whole weekly schedule of a staff member.
func (h *StaffHandler) UpdateAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AvailabilityUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validateAvailability(req.Days); err != nil {
		httperr.Respond(c, err, "invalid_availability")
		return
	}

	rows := make([]models.StaffAvailability, 0, len(req.Days))
	for _, d := range req.Days {
		rows = append(rows, models.StaffAvailability{
			StaffID:   id,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.StaffMember{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("staff_id = ?", id).Delete(&models.StaffAvailability{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		writeDBError(c, err, "staff_not_found", "failed_to_save_availability")
		return
	}

	recordAudit(h.audit, c, "availability_updated", "staff", id, map[string]any{"days": len(rows)})
	httpresp.List(c, rows)
}

func validateAvailability(days []AvailabilityDay) error {
	seen := map[int]bool{}
	for _, d := range days {
		if seen[d.Weekday] {
			return httperr.ErrBusinessMsg("invalid_availability", "Each weekday may appear once.")
		}
		seen[d.Weekday] = true

		if !d.Active {
			continue
		}
		start, err := appt.ParseClock(d.StartTime)
		if err != nil {
			return err
		}
		end, err := appt.ParseClock(d.EndTime)
		if err != nil {
			return err
		}
		if end <= start {
			return httperr.ErrBusinessMsg("invalid_availability", "End time must be after start time.")
		}
	}
	return nil
}

// Slots lists the free start times of a service on one day.
func (h *StaffHandler) Slots(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}
	if serviceID == 0 {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required.")
		return
	}

	day, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), appt.AvailabilityInput{
		StaffID:   id,
		ServiceID: serviceID,
		Date:      day,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_slots")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     day.Format("2006-01-02"),
		"staff_id": id,
		"slots":    slots,
	})
}
