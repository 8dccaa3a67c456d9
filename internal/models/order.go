package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// nil for walk-ins
	ClientID *uint   `gorm:"index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnDelete:SET NULL;" json:"client,omitempty"`

	TotalPrice    float64 `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	PaymentMethod string  `gorm:"size:20;default:'cash'" json:"payment_method"`
	PaymentStatus string  `gorm:"size:20;default:'paid'" json:"payment_status"`
	Notes         string  `gorm:"type:text" json:"notes"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	ProductID *uint    `json:"product_id"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE;" json:"product,omitempty"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnDelete:CASCADE;" json:"service,omitempty"`

	AppointmentID *uint        `json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	Quantity  int     `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

func (i OrderItem) Name() string {
	switch {
	case i.Product != nil:
		return i.Product.Name
	case i.Service != nil:
		return i.Service.Name
	}
	return ""
}
