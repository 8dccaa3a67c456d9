package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/audit"
	"github.com/BruksfildServices01/skin-clinic/internal/authz"
	"github.com/BruksfildServices01/skin-clinic/internal/domain"
	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	ServiceID uint
	StaffID   uint

	Date   string
	Time   string
	Status string
	Notes  string

	ClientPackageID        *uint
	ClientServiceSessionID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  appt.Repository
	tx    domain.Transactor
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo appt.Repository,
	tx domain.Transactor,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		tx:    tx,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := authz.Require(actor, authz.PermSchedule); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_date", "Date must be YYYY-MM-DD.")
	}
	start, err := appt.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}
	status, err := appt.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:               in.ClientID,
		ServiceID:              in.ServiceID,
		StaffID:                in.StaffID,
		AppointmentDate:        date,
		AppointmentTime:        start,
		Status:                 string(status),
		Notes:                  in.Notes,
		ClientPackageID:        in.ClientPackageID,
		ClientServiceSessionID: in.ClientServiceSessionID,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
			return err
		}

		service, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return err
		}
		if !service.IsActive {
			return httperr.ErrBusinessMsg("service_inactive", "This service is not currently offered.")
		}

		if err := checkLinks(ctx, uc.repo, ap); err != nil {
			return err
		}

		// --------------------------------------------------
		// Overlap guard, serialized per staff member
		// --------------------------------------------------
		staff, err := uc.repo.LockStaff(ctx, in.StaffID)
		if err != nil {
			return err
		}
		if !staff.IsActive {
			return httperr.ErrBusinessMsg("staff_inactive", "This staff member is not currently active.")
		}

		existing, err := uc.repo.ListActiveForStaffDay(ctx, in.StaffID, date)
		if err != nil {
			return err
		}
		if err := appt.AssertNoOverlap(appt.NewInterval(start, service.Duration), existing, 0); err != nil {
			return err
		}

		return uc.repo.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"staff_id": ap.StaffID,
			"date":     ap.AppointmentDate.Format(time.DateOnly),
			"time":     appt.FormatClock(time.Duration(ap.AppointmentTime)),
		},
	})

	return ap, nil
}

func checkLinks(ctx context.Context, repo appt.Repository, ap *models.Appointment) error {
	var (
		cp *models.ClientPackage
		ss *models.ClientServiceSession
	)
	if ap.ClientPackageID != nil {
		found, err := repo.GetClientPackage(ctx, *ap.ClientPackageID)
		if err != nil {
			return err
		}
		cp = found
	}
	if ap.ClientServiceSessionID != nil {
		found, err := repo.GetServiceSession(ctx, *ap.ClientServiceSessionID)
		if err != nil {
			return err
		}
		ss = found
	}
	return appt.ValidateLinks(ap, cp, ss)
}
