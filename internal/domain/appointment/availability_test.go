package appointment

import (
	"testing"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

func TestFreeSlots(t *testing.T) {
	window := models.StaffAvailability{StartTime: "09:00", EndTime: "12:00", Active: true}
	taken := []models.Appointment{
		booked(1, 10, 0, 60, StatusConfirmed),
		booked(2, 11, 0, 60, StatusCancelled),
	}

	slots := FreeSlots(window, 60, taken)

	want := []TimeSlot{{"09:00", "10:00"}, {"11:00", "12:00"}}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %v", len(want), slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], slots[i])
		}
	}
}

func TestFreeSlotsInactiveWindow(t *testing.T) {
	window := models.StaffAvailability{StartTime: "09:00", EndTime: "12:00"}
	if got := FreeSlots(window, 30, nil); len(got) != 0 {
		t.Fatalf("inactive window must have no slots, got %v", got)
	}
}
