package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/httpresp"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	ucTracking "github.com/BruksfildServices01/skin-clinic/internal/usecase/tracking"
)

var errAlreadyCompleted = httperr.ErrBusinessMsg("already_completed", "All sessions are already completed.")

type TrackingHandler struct {
	assign   *ucTracking.AssignPackage
	start    *ucTracking.StartServiceSession
	counters *ucTracking.Counters
}

func NewTrackingHandler(
	assign *ucTracking.AssignPackage,
	start *ucTracking.StartServiceSession,
	counters *ucTracking.Counters,
) *TrackingHandler {
	return &TrackingHandler{assign: assign, start: start, counters: counters}
}

// --------- Requests ---------

type AssignPackageRequest struct {
	PackageID uint   `json:"package_id" binding:"required"`
	Notes     string `json:"notes"`
}

type StartSessionRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Notes     string `json:"notes"`
}

// AdjustRequest carries either an action or an absolute count.
type AdjustRequest struct {
	Action            string `json:"action" binding:"omitempty,oneof=increment decrement"`
	SessionsCompleted *int   `json:"sessions_completed" binding:"omitempty,min=0"`
}

// --------- Assignment ---------

func (h *TrackingHandler) AssignPackage(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AssignPackageRequest
	if !bindJSON(c, &req) {
		return
	}

	cp, err := h.assign.Execute(c.Request.Context(), middleware.Actor(c), clientID, req.PackageID, req.Notes)
	if err != nil {
		httperr.Respond(c, err, "failed_to_assign_package")
		return
	}
	httpresp.Created(c, cp)
}

func (h *TrackingHandler) StartServiceSession(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req StartSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	ss, err := h.start.Execute(c.Request.Context(), middleware.Actor(c), clientID, req.ServiceID, req.Notes)
	if err != nil {
		httperr.Respond(c, err, "failed_to_start_service_session")
		return
	}
	httpresp.Created(c, ss)
}

// --------- Counters ---------

// AddSession returns a handler crediting one session to the counter kind.
func (h *TrackingHandler) AddSession(kind ucTracking.CounterKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		view, err := h.counters.AddSession(c.Request.Context(), middleware.Actor(c), kind, id)
		if err != nil {
			httperr.Respond(c, err, "failed_to_add_session")
			return
		}
		if !view.Changed {
			httperr.Respond(c, errAlreadyCompleted, "failed_to_add_session")
			return
		}
		httpresp.OK(c, view)
	}
}

func (h *TrackingHandler) Adjust(kind ucTracking.CounterKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req AdjustRequest
		if !bindJSON(c, &req) {
			return
		}

		view, err := h.counters.Adjust(c.Request.Context(), middleware.Actor(c), kind, id, ucTracking.Adjustment{
			Action:            req.Action,
			SessionsCompleted: req.SessionsCompleted,
		})
		if err != nil {
			httperr.Respond(c, err, "failed_to_adjust_sessions")
			return
		}
		if req.Action == "increment" && req.SessionsCompleted == nil && !view.Changed {
			httperr.Respond(c, errAlreadyCompleted, "failed_to_adjust_sessions")
			return
		}
		httpresp.OK(c, view)
	}
}

func (h *TrackingHandler) Delete(kind ucTracking.CounterKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := h.counters.Delete(c.Request.Context(), middleware.Actor(c), kind, id); err != nil {
			httperr.Respond(c, err, "failed_to_delete_counter")
			return
		}
		httpresp.NoContent(c)
	}
}
