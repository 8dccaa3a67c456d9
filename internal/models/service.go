package models

import "time"

// Service is a bookable treatment (facial, laser, PRP...).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name             string  `gorm:"size:200;not null;index" json:"name"`
	Description      string  `gorm:"type:text" json:"description"`
	Duration         int     `gorm:"not null;check:duration > 0" json:"duration"`
	Price            float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	SessionsRequired int     `gorm:"not null;default:1;check:sessions_required >= 1" json:"sessions_required"`
	IsActive         bool    `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Service) RequiresMultipleSessions() bool {
	return s.SessionsRequired > 1
}
