package appointment

import (
	"context"

	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/dto"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type ListAppointmentsByDate struct {
	repo appt.Repository
}

func NewListAppointmentsByDate(repo appt.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute lists one day. staffID 0 lists every staff member.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	staffID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListAppointmentsForPeriod(ctx, staffID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(aps), nil
}

type GetAppointment struct {
	repo appt.Repository
}

func NewGetAppointment(repo appt.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}
