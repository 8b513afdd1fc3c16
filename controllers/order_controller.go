package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderSummaryResponse(order *models.Order) gin.H {
	return gin.H{
		"id":             order.ID,
		"code":           order.Code,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"payment_status": order.PaymentStatus,
		"subtotal":       fmt.Sprintf("%.0f", order.Subtotal),
		"shipping_fee":   fmt.Sprintf("%.0f", order.ShippingFee),
		"discount":       fmt.Sprintf("%.0f", order.Discount),
		"final_total":    fmt.Sprintf("%.0f", order.FinalTotal),
		"item_count":     len(order.OrderItems),
		"created_at":     order.CreatedAt,
	}
}

func orderDetailResponse(order *models.Order, address *models.Address) gin.H {
	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"product_id":   item.ProductID,
			"variant_id":   item.VariantID,
			"name":         item.ProductName,
			"image_url":    item.ProductImage,
			"variant_name": item.VariantName,
			"quantity":     item.Quantity,
			"unit_price":   fmt.Sprintf("%.0f", item.UnitPrice),
			"item_total":   fmt.Sprintf("%.0f", item.Total),
		})
	}

	response := orderSummaryResponse(order)
	response["items"] = items
	response["voucher_code"] = order.VoucherCode
	response["note"] = order.Note
	if address != nil {
		response["shipping_address"] = gin.H{
			"recipient": address.Recipient,
			"phone":     address.Phone,
			"line":      address.Line,
			"ward":      address.Ward,
			"district":  address.District,
			"province":  address.Province,
		}
	}
	return response
}

// ListOrders returns the user's order history, newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Preload("OrderItems").
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	response := make([]gin.H, 0, len(orders))
	for i := range orders {
		response = append(response, orderSummaryResponse(&orders[i]))
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", response, total, pagination.Page, pagination.Limit)
}

// GetOrderDetails returns one order, scoped to the requesting user
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	var address models.Address
	addrPtr := &address
	if err := config.DB.Unscoped().First(&address, order.AddressID).Error; err != nil {
		addrPtr = nil
	}

	utils.Success(c, "Order retrieved successfully", orderDetailResponse(&order, addrPtr))
}

// CancelOrder cancels an order that has not shipped yet and returns its
// stock. Restock happens in the same transaction as the status change.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("OrderItems").
			Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
			First(&order).Error; err != nil {
			return utils.NotFoundError("Order not found", err)
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return utils.BadRequestError(fmt.Sprintf("Order in status '%s' cannot be cancelled", order.Status), nil)
		}

		for _, item := range order.OrderItems {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
			if item.VariantID != nil {
				if err := tx.Model(&models.ProductVariant{}).Where("id = ?", *item.VariantID).
					UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelled
		return nil
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to cancel order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to cancel order", err.Error())
		return
	}

	utils.LogInfo("Order %s cancelled by user ID: %d", order.Code, user.ID)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_code": order.Code,
		"status":     order.Status,
	})
}
