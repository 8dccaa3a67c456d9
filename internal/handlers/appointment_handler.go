package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/skin-clinic/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	status     *ucAppointment.UpdateAppointmentStatus
	reschedule *ucAppointment.RescheduleAppointment
	byDate     *ucAppointment.ListAppointmentsByDate
	byMonth    *ucAppointment.ListAppointmentsByMonth
	get        *ucAppointment.GetAppointment
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	status *ucAppointment.UpdateAppointmentStatus,
	reschedule *ucAppointment.RescheduleAppointment,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	get *ucAppointment.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		status:     status,
		reschedule: reschedule,
		byDate:     byDate,
		byMonth:    byMonth,
		get:        get,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	StaffID   uint   `json:"staff_id" binding:"required"`
	Date      string `json:"date" binding:"required,date"`
	Time      string `json:"time" binding:"required,clock"`
	Status    string `json:"status" binding:"omitempty,oneof=pending confirmed"`
	Notes     string `json:"notes"`

	ClientPackageID        *uint `json:"client_package_id"`
	ClientServiceSessionID *uint `json:"client_service_session_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

type RescheduleRequest struct {
	Date    string `json:"date" binding:"omitempty,date"`
	Time    string `json:"time" binding:"omitempty,clock"`
	StaffID uint   `json:"staff_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), ucAppointment.CreateAppointmentInput{
		ClientID:               req.ClientID,
		ServiceID:              req.ServiceID,
		StaffID:                req.StaffID,
		Date:                   req.Date,
		Time:                   req.Time,
		Status:                 req.Status,
		Notes:                  req.Notes,
		ClientPackageID:        req.ClientPackageID,
		ClientServiceSessionID: req.ClientServiceSessionID,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.status.Execute(c.Request.Context(), middleware.Actor(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_appointment")
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.Actor(c), id, ucAppointment.RescheduleInput{
		Date:    req.Date,
		Time:    req.Time,
		StaffID: req.StaffID,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_reschedule_appointment")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_appointment")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	out, err := h.byDate.Execute(c.Request.Context(), staffID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Year and month (1-12) are required.")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), staffID, year, month)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, out)
}
