package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusShipping  = "Shipping"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// Payment method constants
const (
	PaymentMethodCOD   = "cod"
	PaymentMethodVNPay = "vnpay"
	PaymentMethodMoMo  = "momo"
)

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Order is an immutable snapshot of a checkout. Only Status and
// PaymentStatus change after creation. Item rows carry denormalized
// product data so later catalog edits never alter history.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Code          string      `gorm:"uniqueIndex" json:"code"`
	UserID        uint        `json:"user_id"`
	User          User        `json:"user" gorm:"foreignKey:UserID"`
	AddressID     uint        `json:"address_id"`
	Address       Address     `json:"address" gorm:"foreignKey:AddressID"`
	Subtotal      float64     `json:"subtotal"`
	ShippingFee   float64     `json:"shipping_fee"`
	Discount      float64     `json:"discount"`
	VoucherID     *uint       `json:"voucher_id"`
	VoucherCode   string      `json:"voucher_code"`
	FinalTotal    float64     `json:"final_total"`
	PaymentMethod string      `json:"payment_method"`
	PaymentStatus string      `json:"payment_status"`
	Status        string      `json:"status"`
	Note          string      `json:"note"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	OrderItems    []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `json:"order_id" gorm:"index"`
	ProductID    uint    `json:"product_id"`
	VariantID    *uint   `json:"variant_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	VariantName  string  `json:"variant_name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
}

// Payment tracks the provider-side state of an order's payment
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"index"`
	Method     string    `json:"method"`
	Amount     float64   `json:"amount"`
	TxnRef     string    `json:"txn_ref" gorm:"uniqueIndex"`
	ProviderID string    `json:"provider_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
