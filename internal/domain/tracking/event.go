package tracking

import "time"

// AppointmentCompleted is emitted once, when an appointment moves into the
// completed status.
type AppointmentCompleted struct {
	AppointmentID          uint
	ClientID               uint
	ServiceID              uint
	ClientPackageID        *uint
	ClientServiceSessionID *uint
	CompletedAt            time.Time
}

type ResultKind string

const (
	ResultPackage        ResultKind = "package"
	ResultServiceSession ResultKind = "service_session"
	ResultNone           ResultKind = "none"
)

// Result tells the caller which counter (if any) absorbed the session.
type Result struct {
	Kind                   ResultKind `json:"kind"`
	ClientPackageID        *uint      `json:"client_package_id,omitempty"`
	ClientServiceSessionID *uint      `json:"client_service_session_id,omitempty"`
	Added                  bool       `json:"added"`
	SessionsCompleted      int        `json:"sessions_completed"`
	Target                 int        `json:"target"`
	Completed              bool       `json:"completed"`
}
