package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront customer or an administrator
type User struct {
	gorm.Model
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	IsBlocked    bool      `json:"is_blocked"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	GoogleID     string    `gorm:"default:null" json:"google_id"`
	LastLoginAt  time.Time `json:"last_login_at"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Address is a user-owned shipping address using Vietnamese
// administrative levels (province/district/ward)
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Recipient string    `json:"recipient"`
	Phone     string    `json:"phone"`
	Line      string    `json:"line"`
	Ward      string    `json:"ward"`
	District  string    `json:"district"`
	Province  string    `json:"province"`
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
	Products    []Product `json:"products,omitempty"`
}

// Product represents an item in the catalog. Price is in VND.
type Product struct {
	gorm.Model
	Name        string           `json:"name"`
	Slug        string           `json:"slug" gorm:"uniqueIndex"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	CategoryID  uint             `json:"category_id"`
	Category    Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL    string           `json:"image_url"`
	Images      []ProductImage   `json:"images" gorm:"foreignKey:ProductID"`
	Variants    []ProductVariant `json:"variants" gorm:"foreignKey:ProductID"`
	IsActive    bool             `json:"is_active" gorm:"default:true"`
	IsFeatured  bool             `json:"is_featured" gorm:"default:false"`
	Views       int              `json:"views" gorm:"default:0"`
}

// ProductVariant is an optional size/color option under a product
type ProductVariant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductImage holds one image of a product. At most one image per
// product carries IsPrimary; setting a new primary clears the rest.
type ProductImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	URL       string    `json:"url"`
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
