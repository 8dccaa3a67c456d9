package appointment

import (
	"context"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

// RescheduleInput leaves unset fields unchanged.
type RescheduleInput struct {
	Date    string
	Time    string
	StaffID uint
}

type RescheduleAppointment struct {
	repo  appt.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo appt.Repository,
	tx domain.Transactor,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{repo: repo, tx: tx, audit: audit}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	appointmentID uint,
	in RescheduleInput,
) (*models.Appointment, error) {

	if err := authz.Require(actor, authz.PermSchedule); err != nil {
		return nil, err
	}
	if in.Date == "" && in.Time == "" && in.StaffID == 0 {
		return nil, httperr.ErrBusinessMsg("nothing_to_change", "Provide a new date, time or staff member.")
	}

	var ap *models.Appointment

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.repo.LockAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := appt.CanReschedule(appt.Status(ap.Status)); err != nil {
			return err
		}

		if in.Date != "" {
			d, err := timezone.ParseDate(in.Date)
			if err != nil {
				return httperr.ErrBusinessMsg("invalid_date", "Date must be YYYY-MM-DD.")
			}
			ap.AppointmentDate = d
		}
		if in.Time != "" {
			t, err := appt.ParseClock(in.Time)
			if err != nil {
				return err
			}
			ap.AppointmentTime = t
		}
		if in.StaffID != 0 {
			ap.StaffID = in.StaffID
			ap.Staff = models.StaffMember{}
		}

		staff, err := uc.repo.LockStaff(ctx, ap.StaffID)
		if err != nil {
			return err
		}
		if !staff.IsActive {
			return httperr.ErrBusinessMsg("staff_inactive", "This staff member is not currently active.")
		}

		existing, err := uc.repo.ListActiveForStaffDay(ctx, ap.StaffID, ap.AppointmentDate)
		if err != nil {
			return err
		}
		candidate := appt.NewInterval(ap.AppointmentTime, ap.Service.Duration)
		if err := appt.AssertNoOverlap(candidate, existing, ap.ID); err != nil {
			return err
		}

		return uc.repo.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: in,
	})

	return ap, nil
}
