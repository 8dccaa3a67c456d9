package appointment

import (
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type AvailabilityInput struct {
	StaffID   uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots walks the availability window in steps of the service duration
// and keeps every slot that does not intersect an active appointment.
func FreeSlots(
	window models.StaffAvailability,
	durationMin int,
	booked []models.Appointment,
) []TimeSlot {

	slots := []TimeSlot{}
	if !window.Active || durationMin <= 0 {
		return slots
	}

	dayStart, err := ParseClock(window.StartTime)
	if err != nil {
		return slots
	}
	dayEnd, err := ParseClock(window.EndTime)
	if err != nil {
		return slots
	}

	step := time.Duration(durationMin) * time.Minute
	for cur := time.Duration(dayStart); cur+step <= time.Duration(dayEnd); cur += step {
		slot := Interval{Start: cur, End: cur + step}
		if FindConflict(slot, booked, 0) != nil {
			continue
		}
		slots = append(slots, TimeSlot{
			Start: FormatClock(slot.Start),
			End:   FormatClock(slot.End),
		})
	}

	return slots
}
