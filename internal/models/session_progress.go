package models

import "time"

// SessionProgress is the counter shared by package and service-session tracking.
type SessionProgress struct {
	SessionsCompleted int        `gorm:"not null;default:0;check:sessions_completed >= 0" json:"sessions_completed"`
	IsCompleted       bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedDate     *time.Time `gorm:"type:date" json:"completed_date"`
}

type ClientPackage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID  uint    `gorm:"uniqueIndex:idx_client_package;not null" json:"client_id"`
	Client    Client  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	PackageID uint    `gorm:"uniqueIndex:idx_client_package;not null" json:"package_id"`
	Package   Package `gorm:"constraint:OnDelete:CASCADE;" json:"package"`

	SessionProgress `gorm:"embedded"`

	AssignedDate time.Time `gorm:"type:date;not null" json:"assigned_date"`
	Notes        string    `gorm:"type:text" json:"notes"`
}

func (cp ClientPackage) Target() int {
	return cp.Package.TotalSessions
}

type ClientServiceSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID  uint    `gorm:"uniqueIndex:idx_client_service;not null" json:"client_id"`
	Client    Client  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ServiceID uint    `gorm:"uniqueIndex:idx_client_service;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnDelete:CASCADE;" json:"service"`

	SessionProgress `gorm:"embedded"`

	StartedDate time.Time `gorm:"type:date;not null" json:"started_date"`
	Notes       string    `gorm:"type:text" json:"notes"`
}

func (s ClientServiceSession) Target() int {
	return s.Service.SessionsRequired
}
