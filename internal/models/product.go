package models

import "time"

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:200;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	SKU         string  `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQty    int     `gorm:"not null;default:0;check:stock_qty >= 0" json:"stock_qty"`
	IsActive    bool    `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
