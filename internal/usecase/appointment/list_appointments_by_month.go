package appointment

import (
	"context"
	"time"

	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/dto"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo appt.Repository
}

func NewListAppointmentsByMonth(
	repo appt.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.ErrBusinessMsg("invalid_month", "Year and month (1-12) are required.")
	}

	start, end := timezone.MonthRange(year, time.Month(month))

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		staffID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments), nil
}

func parseDay(date string) (time.Time, error) {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return time.Time{}, httperr.ErrBusinessMsg("invalid_date", "Date must be YYYY-MM-DD.")
	}
	return day, nil
}
