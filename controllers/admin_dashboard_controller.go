package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// AdminDashboard returns the back-office overview: counts, revenue and
// the current best sellers. Revenue only counts paid orders.
func AdminDashboard(c *gin.Context) {
	utils.LogInfo("AdminDashboard called")

	var userCount, productCount, orderCount, pendingOrders int64
	config.DB.Model(&models.User{}).Where("is_admin = ?", false).Count(&userCount)
	config.DB.Model(&models.Product{}).Count(&productCount)
	config.DB.Model(&models.Order{}).Count(&orderCount)
	config.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)

	var totalRevenue float64
	config.DB.Model(&models.Order{}).
		Where("payment_status = ? AND status != ?", models.PaymentStatusPaid, models.OrderStatusCancelled).
		Select("COALESCE(SUM(final_total), 0)").Scan(&totalRevenue)

	monthStart := time.Now().AddDate(0, 0, -30)
	var monthRevenue float64
	config.DB.Model(&models.Order{}).
		Where("payment_status = ? AND status != ? AND created_at >= ?",
			models.PaymentStatusPaid, models.OrderStatusCancelled, monthStart).
		Select("COALESCE(SUM(final_total), 0)").Scan(&monthRevenue)

	type bestSeller struct {
		ProductID   uint    `json:"product_id"`
		ProductName string  `json:"product_name"`
		Sold        int     `json:"sold"`
		Revenue     float64 `json:"revenue"`
	}
	var bestSellers []bestSeller
	config.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS sold, SUM(order_items.total) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status != ?", models.OrderStatusCancelled).
		Group("order_items.product_id, order_items.product_name").
		Order("sold DESC").
		Limit(5).
		Scan(&bestSellers)

	var lowStock []models.Product
	config.DB.Where("is_active = ? AND stock <= ?", true, 5).
		Order("stock ASC").Limit(10).Find(&lowStock)

	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"users":          userCount,
		"products":       productCount,
		"orders":         orderCount,
		"pending_orders": pendingOrders,
		"total_revenue":  fmt.Sprintf("%.0f", totalRevenue),
		"month_revenue":  fmt.Sprintf("%.0f", monthRevenue),
		"best_sellers":   bestSellers,
		"low_stock":      lowStock,
	})
}
