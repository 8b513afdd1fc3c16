package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a homepage promotional image managed by admins
type Banner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `json:"title"`
	ImageURL  string         `json:"image_url"`
	LinkURL   string         `json:"link_url"`
	Position  int            `json:"position" gorm:"default:0"`
	Active    bool           `json:"active" gorm:"default:true"`
	StartAt   *time.Time     `json:"start_at"`
	EndAt     *time.Time     `json:"end_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
