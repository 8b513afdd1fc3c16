package utils

import (
	"time"

	"github.com/minhtran-dev/vietshop/models"
	"gorm.io/gorm"
)

// CalculateFinalPrice applies a sale discount to a unit price.
// Percent sales take value% off; fixed sales subtract value but never
// go below zero. An empty sale type returns the price unchanged.
func CalculateFinalPrice(price float64, saleType string, value float64) float64 {
	switch saleType {
	case models.SaleTypePercent:
		return price * (1 - value/100)
	case models.SaleTypeFixed:
		if value >= price {
			return 0
		}
		return price - value
	default:
		return price
	}
}

// GetActiveSaleForProduct returns the product's sale whose window covers
// now, or nil when the product has no running sale. Callers inside a
// transaction pass their tx so the sale is read under the same snapshot
// as the rest of the order.
func GetActiveSaleForProduct(db *gorm.DB, productID uint) (*models.Sale, error) {
	now := time.Now()
	var sale models.Sale
	err := db.Where("product_id = ? AND active = ? AND start_at <= ? AND end_at >= ?",
		productID, true, now, now).First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// FinalUnitPrice returns the sale-adjusted unit price for a product at
// this moment. Products without an active sale sell at list price.
func FinalUnitPrice(db *gorm.DB, product *models.Product) float64 {
	sale, err := GetActiveSaleForProduct(db, product.ID)
	if err != nil || sale == nil {
		return product.Price
	}
	return CalculateFinalPrice(product.Price, sale.Type, sale.Value)
}
