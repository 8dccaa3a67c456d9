package dto

import (
	"time"

	"github.com/BruksfildServices01/skin-clinic/internal/domain/appointment"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	ClientID    uint      `json:"client_id"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	StaffID     uint      `json:"staff_id"`
	StaffName   string    `json:"staff_name"`
}

// NewAppointmentList expects Client, Service and Staff preloaded.
func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		iv := appointment.IntervalOf(ap)
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.AppointmentDate,
			StartTime:   appointment.FormatClock(iv.Start),
			EndTime:     appointment.FormatClock(iv.End),
			Status:      ap.Status,
			ClientID:    ap.ClientID,
			ClientName:  ap.Client.FullName(),
			ServiceName: ap.Service.Name,
			StaffID:     ap.StaffID,
			StaffName:   ap.Staff.FullName(),
		})
	}
	return out
}
