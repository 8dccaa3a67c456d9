package models

import "time"

type StaffMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName      string `gorm:"size:100;not null" json:"first_name"`
	LastName       string `gorm:"size:100;not null" json:"last_name"`
	PhoneNumber    string `gorm:"size:20" json:"phone_number"`
	Specialization string `gorm:"size:200" json:"specialization"`
	Bio            string `gorm:"type:text" json:"bio"`
	IsActive       bool   `gorm:"not null" json:"is_active"`

	Availability []StaffAvailability `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE;" json:"availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s StaffMember) FullName() string {
	return s.FirstName + " " + s.LastName
}
