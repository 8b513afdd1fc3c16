package models

import (
	"time"

	"gorm.io/gorm"
)

// Sale discount types
const (
	SaleTypePercent = "percent"
	SaleTypeFixed   = "fixed"
)

// Sale is a time-windowed automatic discount attached to a product.
// It contributes to the product's final price only while active and
// inside its window.
type Sale struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `json:"product_id" gorm:"index"`
	Product   Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Type      string         `json:"type"` // "percent" or "fixed"
	Value     float64        `json:"value"`
	StartAt   time.Time      `json:"start_at"`
	EndAt     time.Time      `json:"end_at"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
