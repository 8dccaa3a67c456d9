package appointment

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// Interval is a half-open [Start, End) range measured from midnight.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

func NewInterval(start datatypes.Time, durationMin int) Interval {
	s := time.Duration(start)
	return Interval{Start: s, End: s + time.Duration(durationMin)*time.Minute}
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// IntervalOf needs ap.Service loaded.
func IntervalOf(ap models.Appointment) Interval {
	return NewInterval(ap.AppointmentTime, ap.Service.Duration)
}

// FindConflict returns the first active appointment among existing whose
// interval intersects candidate. Appointments with the skip ID are ignored.
func FindConflict(candidate Interval, existing []models.Appointment, skip uint) *models.Appointment {
	for i := range existing {
		ap := existing[i]
		if skip != 0 && ap.ID == skip {
			continue
		}
		if !Status(ap.Status).IsActive() {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap)) {
			return &existing[i]
		}
	}
	return nil
}

// AssertNoOverlap is the booking guard for one staff member's day.
func AssertNoOverlap(candidate Interval, existing []models.Appointment, skip uint) error {
	conflict := FindConflict(candidate, existing, skip)
	if conflict == nil {
		return nil
	}
	return httperr.ErrBusinessMsg(
		"time_conflict",
		fmt.Sprintf(
			"Appointment overlaps with existing appointment: %s - %s",
			FormatClock(time.Duration(conflict.AppointmentTime)),
			conflict.Service.Name,
		),
	)
}

func FormatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// ParseClock parses HH:MM into a time of day.
func ParseClock(hm string) (datatypes.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusinessMsg("invalid_time", "Time must be HH:MM.")
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}
