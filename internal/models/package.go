package models

import "time"

type Package struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string    `gorm:"size:200;not null;index" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Services      []Service `gorm:"many2many:package_services;" json:"services"`
	TotalSessions int       `gorm:"not null" json:"total_sessions"`
	OriginalPrice *float64  `gorm:"type:decimal(10,2)" json:"original_price"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive      bool      `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Package) IncludesService(serviceID uint) bool {
	for _, s := range p.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}
