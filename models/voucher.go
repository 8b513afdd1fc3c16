package models

import (
	"time"

	"gorm.io/gorm"
)

// Voucher discount types
const (
	VoucherTypePercent = "percent"
	VoucherTypeFixed   = "fixed"
)

type Voucher struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex" json:"code"`
	Type          string         `json:"type"` // "percent" or "fixed"
	Value         float64        `json:"value"`
	MaxDiscount   float64        `json:"max_discount"`
	MinOrderValue float64        `json:"min_order_value"`
	StartAt       time.Time      `json:"start_at"`
	EndAt         time.Time      `json:"end_at"`
	UsageLimit    int            `json:"usage_limit"`    // 0 = unlimited
	PerUserLimit  int            `json:"per_user_limit"` // 0 = unlimited
	UsedCount     int            `json:"used_count"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// VoucherUsage records one redemption per (voucher, user, order)
type VoucherUsage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VoucherID uint      `json:"voucher_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	OrderID   uint      `json:"order_id"`
	Amount    float64   `json:"amount"`
	UsedAt    time.Time `json:"used_at"`
}
