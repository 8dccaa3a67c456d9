package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/domain/tracking"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

// CompletionTracker credits a completed appointment to a session counter.
// It runs inside the caller's transaction.
type CompletionTracker interface {
	HandleAppointmentCompleted(ctx context.Context, ev tracking.AppointmentCompleted) (tracking.Result, error)
}

type StatusChangeResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Tracking    *tracking.Result    `json:"tracking,omitempty"`
}

type UpdateAppointmentStatus struct {
	repo    appt.Repository
	tx      domain.Transactor
	tracker CompletionTracker
	audit   *audit.Dispatcher
	loc     *time.Location
	now     func() time.Time
}

func NewUpdateAppointmentStatus(
	repo appt.Repository,
	tx domain.Transactor,
	tracker CompletionTracker,
	audit *audit.Dispatcher,
	loc *time.Location,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:    repo,
		tx:      tx,
		tracker: tracker,
		audit:   audit,
		loc:     loc,
		now:     time.Now,
	}
}

// Execute moves the appointment to the requested status. On the transition
// to completed the tracker is invoked in the same transaction, so either
// both the status and the counter change or neither does.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	actor authz.Actor,
	appointmentID uint,
	status string,
) (*StatusChangeResult, error) {

	if err := authz.Require(actor, authz.PermSchedule); err != nil {
		return nil, err
	}

	now := uc.now().In(uc.loc)
	out := &StatusChangeResult{}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		ap, err := uc.repo.LockAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		becameCompleted, err := appt.Transition(ap, appt.Status(status), now)
		if err != nil {
			return err
		}

		if becameCompleted {
			res, err := uc.tracker.HandleAppointmentCompleted(ctx, tracking.AppointmentCompleted{
				AppointmentID:          ap.ID,
				ClientID:               ap.ClientID,
				ServiceID:              ap.ServiceID,
				ClientPackageID:        ap.ClientPackageID,
				ClientServiceSessionID: ap.ClientServiceSessionID,
				CompletedAt:            timezone.DateOf(now),
			})
			if err != nil {
				return err
			}
			if res.ClientPackageID != nil {
				ap.ClientPackageID = res.ClientPackageID
			}
			if res.ClientServiceSessionID != nil {
				ap.ClientServiceSessionID = res.ClientServiceSessionID
			}
			out.Tracking = &res
		}

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		out.Appointment = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	meta := map[string]any{"status": status}
	if out.Tracking != nil {
		meta["tracking"] = out.Tracking.Kind
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "appointment_" + status,
		Entity:   "appointment",
		EntityID: appointmentID,
		Metadata: meta,
	})

	return out, nil
}
