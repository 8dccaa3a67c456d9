package models

import "time"

// StaffAvailability is one weekday window (0 = Sunday) in HH:MM local clinic time.
type StaffAvailability struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_staff_weekday,unique;not null" json:"staff_id"`

	Weekday int `gorm:"index:idx_staff_weekday,unique;not null" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
