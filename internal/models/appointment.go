package models

import (
	"time"

	"gorm.io/datatypes"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnDelete:CASCADE;" json:"client"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnDelete:CASCADE;" json:"service"`

	StaffID uint        `gorm:"not null;index:idx_staff_day" json:"staff_id"`
	Staff   StaffMember `gorm:"constraint:OnDelete:CASCADE;" json:"staff"`

	AppointmentDate time.Time      `gorm:"type:date;not null;index:idx_staff_day" json:"appointment_date"`
	AppointmentTime datatypes.Time `gorm:"not null" json:"appointment_time"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	ClientPackageID *uint          `json:"client_package_id"`
	ClientPackage   *ClientPackage `gorm:"constraint:OnDelete:SET NULL;" json:"client_package,omitempty"`

	ClientServiceSessionID *uint                 `json:"client_service_session_id"`
	ClientServiceSession   *ClientServiceSession `gorm:"constraint:OnDelete:SET NULL;" json:"client_service_session,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
