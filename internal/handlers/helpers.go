package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/middleware"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

// paramID reads a positive numeric path parameter, writing a 400 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// dayRange turns the optional from/to dates into [from, to+1day) in the
// clinic location. Missing bounds stay zero.
func dayRange(c *gin.Context, loc *time.Location) (time.Time, time.Time, bool) {
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		d, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return from, to, false
		}
		from = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}
	if s := c.Query("to"); s != "" {
		d, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return from, to, false
		}
		to = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	}
	return from, to, true
}

// writeDBError maps plain gorm failures from the CRUD handlers.
func writeDBError(c *gin.Context, err error, notFoundCode, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, notFoundCode, notFoundCode)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		httperr.Respond(c, httperr.ErrBusinessMsg("duplicate", "A record with the same unique value already exists."), fallback)
	default:
		httperr.Respond(c, err, fallback)
	}
}

// recordAudit queues an audit event on behalf of the request's actor.
func recordAudit(d *audit.Dispatcher, c *gin.Context, action, entity string, entityID uint, meta any) {
	d.Dispatch(audit.Event{
		UserID:   middleware.Actor(c).UserID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}
