package appointment

import "github.com/BruksfildServices01/skin-clinic/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the appointment still holds its time slot.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// InitialStatus resolves the status a new appointment is created with.
func InitialStatus(requested string) (Status, error) {
	if requested == "" {
		return StatusPending, nil
	}
	s := Status(requested)
	if !s.IsActive() {
		return "", httperr.ErrBusinessMsg("invalid_status", "New appointments must be pending or confirmed.")
	}
	return s, nil
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
