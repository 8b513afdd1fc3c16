package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// VoucherRequest represents the create/update voucher body
type VoucherRequest struct {
	Code          string    `json:"code" binding:"required"`
	Type          string    `json:"type" binding:"required"`
	Value         float64   `json:"value" binding:"required"`
	MaxDiscount   float64   `json:"max_discount"`
	MinOrderValue float64   `json:"min_order_value"`
	StartAt       time.Time `json:"start_at" binding:"required"`
	EndAt         time.Time `json:"end_at" binding:"required"`
	UsageLimit    int       `json:"usage_limit"`
	PerUserLimit  int       `json:"per_user_limit"`
	Active        *bool     `json:"active"`
}

func validateVoucherRequest(c *gin.Context, req *VoucherRequest) bool {
	if req.Type != models.VoucherTypePercent && req.Type != models.VoucherTypeFixed {
		utils.BadRequest(c, "Voucher type must be 'percent' or 'fixed'", nil)
		return false
	}
	if req.Value <= 0 {
		utils.BadRequest(c, "Voucher value must be greater than zero", nil)
		return false
	}
	if req.Type == models.VoucherTypePercent && req.Value > 100 {
		utils.BadRequest(c, "Percent voucher value cannot exceed 100", nil)
		return false
	}
	if !req.EndAt.After(req.StartAt) {
		utils.BadRequest(c, "Voucher end time must be after its start time", nil)
		return false
	}
	if req.UsageLimit < 0 || req.PerUserLimit < 0 {
		utils.BadRequest(c, "Usage limits cannot be negative", nil)
		return false
	}
	return true
}

// AdminListVouchers returns all vouchers, newest first
func AdminListVouchers(c *gin.Context) {
	utils.LogInfo("AdminListVouchers called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Voucher{})
	if search := c.Query("search"); search != "" {
		query = query.Where("code ILIKE ?", "%"+search+"%")
	}
	if active := c.Query("active"); active == "true" {
		query = query.Where("active = ?", true)
	} else if active == "false" {
		query = query.Where("active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count vouchers", err.Error())
		return
	}

	var vouchers []models.Voucher
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&vouchers).Error; err != nil {
		utils.LogError("Failed to fetch vouchers: %v", err)
		utils.InternalServerError(c, "Failed to fetch vouchers", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Vouchers retrieved successfully", vouchers, total, pagination.Page, pagination.Limit)
}

// AdminCreateVoucher creates a voucher. Codes are stored uppercase.
func AdminCreateVoucher(c *gin.Context) {
	utils.LogInfo("AdminCreateVoucher called")

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !validateVoucherRequest(c, &req) {
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var existing models.Voucher
	if err := config.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.Conflict(c, "A voucher with this code already exists", nil)
		return
	}

	voucher := models.Voucher{
		Code:          code,
		Type:          req.Type,
		Value:         req.Value,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		UsageLimit:    req.UsageLimit,
		PerUserLimit:  req.PerUserLimit,
		Active:        true,
	}
	if req.Active != nil {
		voucher.Active = *req.Active
	}

	if err := config.DB.Create(&voucher).Error; err != nil {
		utils.LogError("Failed to create voucher: %v", err)
		utils.InternalServerError(c, "Failed to create voucher", err.Error())
		return
	}

	utils.LogInfo("Voucher created: %s (ID: %d)", voucher.Code, voucher.ID)
	utils.Created(c, "Voucher created successfully", voucher)
}

// AdminUpdateVoucher updates a voucher's terms. The used count is never
// writable from here.
func AdminUpdateVoucher(c *gin.Context) {
	utils.LogInfo("AdminUpdateVoucher called")

	var voucher models.Voucher
	if err := config.DB.First(&voucher, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Voucher not found")
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !validateVoucherRequest(c, &req) {
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var existing models.Voucher
	if err := config.DB.Where("code = ? AND id != ?", code, voucher.ID).
		First(&existing).Error; err == nil {
		utils.Conflict(c, "A voucher with this code already exists", nil)
		return
	}

	updates := map[string]interface{}{
		"code":            code,
		"type":            req.Type,
		"value":           req.Value,
		"max_discount":    req.MaxDiscount,
		"min_order_value": req.MinOrderValue,
		"start_at":        req.StartAt,
		"end_at":          req.EndAt,
		"usage_limit":     req.UsageLimit,
		"per_user_limit":  req.PerUserLimit,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := config.DB.Model(&voucher).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update voucher ID: %d: %v", voucher.ID, err)
		utils.InternalServerError(c, "Failed to update voucher", err.Error())
		return
	}

	utils.Success(c, "Voucher updated successfully", voucher)
}

// AdminDeleteVoucher soft-deletes a voucher. Usage records stay for
// order history.
func AdminDeleteVoucher(c *gin.Context) {
	utils.LogInfo("AdminDeleteVoucher called")

	var voucher models.Voucher
	if err := config.DB.First(&voucher, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Voucher not found")
		return
	}

	if err := config.DB.Delete(&voucher).Error; err != nil {
		utils.LogError("Failed to delete voucher ID: %d: %v", voucher.ID, err)
		utils.InternalServerError(c, "Failed to delete voucher", err.Error())
		return
	}

	utils.Success(c, "Voucher deleted successfully", nil)
}

// AdminListVoucherUsage returns the redemption history of one voucher
func AdminListVoucherUsage(c *gin.Context) {
	utils.LogInfo("AdminListVoucherUsage called")

	var voucher models.Voucher
	if err := config.DB.First(&voucher, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Voucher not found")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.VoucherUsage{}).Where("voucher_id = ?", voucher.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count voucher usage", err.Error())
		return
	}

	var usages []models.VoucherUsage
	if err := query.Order("used_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&usages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch voucher usage", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Voucher usage retrieved successfully", gin.H{
		"voucher": gin.H{
			"id":          voucher.ID,
			"code":        voucher.Code,
			"used_count":  voucher.UsedCount,
			"usage_limit": voucher.UsageLimit,
		},
		"usages": usages,
	}, total, pagination.Page, pagination.Limit)
}
