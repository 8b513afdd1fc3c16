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

// validOrderTransitions defines the allowed forward moves for an order.
// Cancelled and delivered are terminal.
var validOrderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipping, models.OrderStatusCancelled},
	models.OrderStatusShipping:  {models.OrderStatusDelivered},
}

func isValidTransition(from, to string) bool {
	for _, allowed := range validOrderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AdminListOrders returns all orders with status and search filters
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", method)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("code ILIKE ?", "%"+search+"%")
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
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	response := make([]gin.H, 0, len(orders))
	for i := range orders {
		entry := orderSummaryResponse(&orders[i])
		entry["user_id"] = orders[i].UserID
		response = append(response, entry)
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", response, total, pagination.Page, pagination.Limit)
}

// AdminGetOrderDetails returns one order with its customer
func AdminGetOrderDetails(c *gin.Context) {
	utils.LogInfo("AdminGetOrderDetails called")

	var order models.Order
	if err := config.DB.Preload("OrderItems").First(&order, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	var address models.Address
	addrPtr := &address
	if err := config.DB.Unscoped().First(&address, order.AddressID).Error; err != nil {
		addrPtr = nil
	}

	response := orderDetailResponse(&order, addrPtr)

	var user models.User
	if err := config.DB.First(&user, order.UserID).Error; err == nil {
		response["customer"] = gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"phone":     user.Phone,
		}
	}

	utils.Success(c, "Order retrieved successfully", response)
}

// AdminUpdateOrderStatus moves an order along the fulfilment flow.
// Cancelling restocks the items; delivering a COD order marks it paid.
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("OrderItems").
			First(&order, c.Param("id")).Error; err != nil {
			return utils.NotFoundError("Order not found", err)
		}

		if !isValidTransition(order.Status, req.Status) {
			return utils.BadRequestError(fmt.Sprintf("Cannot move order from '%s' to '%s'", order.Status, req.Status), nil)
		}

		updates := map[string]interface{}{"status": req.Status}

		if req.Status == models.OrderStatusCancelled {
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
		}

		if req.Status == models.OrderStatusDelivered &&
			order.PaymentMethod == models.PaymentMethodCOD &&
			order.PaymentStatus == models.PaymentStatusPending {
			updates["payment_status"] = models.PaymentStatusPaid
			if err := tx.Model(&models.Payment{}).
				Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPending).
				Update("status", models.PaymentStatusPaid).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		order.Status = req.Status
		return nil
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to update order status: %v", err)
		utils.InternalServerError(c, "Failed to update order status", err.Error())
		return
	}

	utils.LogInfo("Order %s moved to status: %s", order.Code, order.Status)
	utils.Success(c, "Order status updated successfully", gin.H{
		"order_code": order.Code,
		"status":     order.Status,
	})
}

// AdminUpdatePaymentStatus sets an order's payment state manually, for
// bank-transfer reconciliation or gateway disputes. Paid is terminal.
func AdminUpdatePaymentStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdatePaymentStatus called")

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	switch req.PaymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		utils.BadRequest(c, "Payment status must be one of: pending, paid, failed", nil)
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, c.Param("id")).Error; err != nil {
			return utils.NotFoundError("Order not found", err)
		}
		if order.PaymentStatus == models.PaymentStatusPaid && req.PaymentStatus != models.PaymentStatusPaid {
			return utils.BadRequestError("A paid order cannot move back to an unpaid state", nil)
		}

		if err := tx.Model(&order).Update("payment_status", req.PaymentStatus).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{}).Where("order_id = ?", order.ID).
			Update("status", req.PaymentStatus).Error; err != nil {
			return err
		}
		order.PaymentStatus = req.PaymentStatus
		return nil
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to update payment status: %v", err)
		utils.InternalServerError(c, "Failed to update payment status", err.Error())
		return
	}

	utils.Success(c, "Payment status updated successfully", gin.H{
		"order_code":     order.Code,
		"payment_status": order.PaymentStatus,
	})
}
