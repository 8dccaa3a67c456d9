package appointment

import (
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a status change and stamps the matching timestamp.
// It reports whether the appointment just became completed.
func Transition(ap *models.Appointment, to Status, now time.Time) (bool, error) {
	current := Status(ap.Status)

	switch to {
	case StatusConfirmed:
		if err := CanConfirm(current); err != nil {
			return false, err
		}
	case StatusCancelled:
		if err := CanCancel(current); err != nil {
			return false, err
		}
		ap.CancelledAt = &now
	case StatusCompleted:
		if err := CanComplete(current); err != nil {
			return false, err
		}
		ap.CompletedAt = &now
	default:
		return false, httperr.ErrBusiness("invalid_status")
	}

	ap.Status = string(to)
	return to == StatusCompleted, nil
}
