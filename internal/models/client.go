package models

import "time"

// Client is an information record only; clients never log in.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	PhoneNumber string     `gorm:"size:20" json:"phone_number"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	Address     string     `gorm:"type:text" json:"address"`
	Notes       string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
