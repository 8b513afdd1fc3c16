package models

import (
	"time"
)

// Cart is owned by exactly one of a user or an anonymous session.
// On login the anonymous cart merges into the user cart and is deleted.
type Cart struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       *uint      `json:"user_id" gorm:"uniqueIndex"`
	SessionToken *string    `json:"-" gorm:"uniqueIndex"`
	VoucherID    *uint      `json:"voucher_id"`
	VoucherCode  string     `json:"voucher_code"`
	Items        []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	CartID    uint            `json:"cart_id" gorm:"not null;index;uniqueIndex:idx_cart_product_variant"`
	ProductID uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_product_variant"`
	Product   Product         `json:"product" gorm:"foreignKey:ProductID"`
	VariantID *uint           `json:"variant_id" gorm:"uniqueIndex:idx_cart_product_variant"`
	Variant   *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
	Quantity  int             `json:"quantity" gorm:"check:quantity >= 1"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
