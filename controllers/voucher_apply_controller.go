package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// ApplyVoucherRequest represents the request body for applying a voucher
type ApplyVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

func isVoucherRejection(err error) bool {
	return errors.Is(err, utils.ErrVoucherNotFound) ||
		errors.Is(err, utils.ErrVoucherInactive) ||
		errors.Is(err, utils.ErrVoucherNotStarted) ||
		errors.Is(err, utils.ErrVoucherExpired) ||
		errors.Is(err, utils.ErrVoucherExhausted) ||
		errors.Is(err, utils.ErrVoucherUserExhausted) ||
		errors.Is(err, utils.ErrVoucherMinOrder)
}

// ApplyVoucher attaches a voucher code to the user's cart. This is a
// preview; the binding redemption happens inside the order transaction.
func ApplyVoucher(c *gin.Context) {
	utils.LogInfo("ApplyVoucher called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ApplyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	utils.LogInfo("Attempting to apply voucher code: %s for user ID: %d", code, user.ID)

	uid := user.ID
	cart, err := utils.GetOrCreateCart(config.DB, &uid, nil)
	if err != nil {
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	details, err := utils.GetCartDetails(cart)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	if len(details.OrderItems) == 0 {
		utils.BadRequest(c, "Cannot apply a voucher to an empty cart", nil)
		return
	}

	voucher, discount, err := utils.ValidateVoucher(config.DB, code, user.ID, details.Subtotal, false)
	if err != nil {
		if isVoucherRejection(err) {
			utils.LogError("Voucher %s rejected for user ID: %d: %v", code, user.ID, err)
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		utils.LogError("Voucher validation failed for code %s: %v", code, err)
		utils.InternalServerError(c, "Failed to validate voucher", err.Error())
		return
	}

	if err := config.DB.Model(cart).Updates(map[string]interface{}{
		"voucher_id":   voucher.ID,
		"voucher_code": voucher.Code,
	}).Error; err != nil {
		utils.LogError("Failed to save voucher on cart ID: %d: %v", cart.ID, err)
		utils.InternalServerError(c, "Failed to apply voucher", err.Error())
		return
	}

	finalTotal := details.Subtotal + utils.ShippingFee(details.Subtotal) - discount
	utils.LogInfo("Applied voucher %s for user ID: %d, discount: %.0f", code, user.ID, discount)
	utils.Success(c, "Voucher applied successfully", gin.H{
		"voucher_code":     voucher.Code,
		"subtotal":         fmt.Sprintf("%.0f", details.Subtotal),
		"voucher_discount": fmt.Sprintf("%.0f", discount),
		"shipping_fee":     fmt.Sprintf("%.0f", utils.ShippingFee(details.Subtotal)),
		"final_total":      fmt.Sprintf("%.0f", finalTotal),
	})
}

// RemoveVoucher detaches the voucher from the user's cart
func RemoveVoucher(c *gin.Context) {
	utils.LogInfo("RemoveVoucher called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	uid := user.ID
	cart, err := utils.GetOrCreateCart(config.DB, &uid, nil)
	if err != nil {
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	if err := config.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{"voucher_id": nil, "voucher_code": ""}).Error; err != nil {
		utils.LogError("Failed to remove voucher from cart ID: %d: %v", cart.ID, err)
		utils.InternalServerError(c, "Failed to remove voucher", err.Error())
		return
	}

	utils.Success(c, "Voucher removed successfully", nil)
}
