package appointment

import (
	"context"

	appt "github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
)

type GetAvailability struct {
	repo appt.Repository
}

func NewGetAvailability(repo appt.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists free slots for the service on the given date. A day without
// an availability window has no slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in appt.AvailabilityInput,
) ([]appt.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetStaff(ctx, in.StaffID); err != nil {
		return nil, err
	}

	window, err := uc.repo.GetAvailability(ctx, in.StaffID, int(in.Date.Weekday()))
	if httperr.IsNotFound(err) {
		return []appt.TimeSlot{}, nil
	}
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListActiveForStaffDay(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	return appt.FreeSlots(*window, service.Duration, booked), nil
}
