package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// SaleRequest represents the create/update sale body
type SaleRequest struct {
	ProductID uint      `json:"product_id" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	Value     float64   `json:"value" binding:"required"`
	StartAt   time.Time `json:"start_at" binding:"required"`
	EndAt     time.Time `json:"end_at" binding:"required"`
	Active    *bool     `json:"active"`
}

func validateSaleRequest(c *gin.Context, req *SaleRequest) bool {
	if req.Type != models.SaleTypePercent && req.Type != models.SaleTypeFixed {
		utils.BadRequest(c, "Sale type must be 'percent' or 'fixed'", nil)
		return false
	}
	if req.Value <= 0 {
		utils.BadRequest(c, "Sale value must be greater than zero", nil)
		return false
	}
	if req.Type == models.SaleTypePercent && req.Value > 100 {
		utils.BadRequest(c, "Percent sale value cannot exceed 100", nil)
		return false
	}
	if !req.EndAt.After(req.StartAt) {
		utils.BadRequest(c, "Sale end time must be after its start time", nil)
		return false
	}
	return true
}

// AdminListSales returns all sales with their products
func AdminListSales(c *gin.Context) {
	utils.LogInfo("AdminListSales called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Sale{})
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if active := c.Query("active"); active == "true" {
		query = query.Where("active = ?", true)
	} else if active == "false" {
		query = query.Where("active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count sales", err.Error())
		return
	}

	var sales []models.Sale
	if err := query.Preload("Product").Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&sales).Error; err != nil {
		utils.LogError("Failed to fetch sales: %v", err)
		utils.InternalServerError(c, "Failed to fetch sales", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Sales retrieved successfully", sales, total, pagination.Page, pagination.Limit)
}

// AdminCreateSale creates a product sale. Overlapping active windows
// for the same product are rejected so only one sale applies at a time.
func AdminCreateSale(c *gin.Context) {
	utils.LogInfo("AdminCreateSale called")

	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !validateSaleRequest(c, &req) {
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var overlap models.Sale
	if err := config.DB.Where("product_id = ? AND active = ? AND start_at < ? AND end_at > ?",
		req.ProductID, true, req.EndAt, req.StartAt).First(&overlap).Error; err == nil {
		utils.Conflict(c, "An active sale already covers this period for the product", nil)
		return
	}

	sale := models.Sale{
		ProductID: req.ProductID,
		Type:      req.Type,
		Value:     req.Value,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Active:    true,
	}
	if req.Active != nil {
		sale.Active = *req.Active
	}

	if err := config.DB.Create(&sale).Error; err != nil {
		utils.LogError("Failed to create sale: %v", err)
		utils.InternalServerError(c, "Failed to create sale", err.Error())
		return
	}

	utils.LogInfo("Sale created for product ID: %d (sale ID: %d)", sale.ProductID, sale.ID)
	utils.Created(c, "Sale created successfully", sale)
}

// AdminUpdateSale updates a sale's terms or toggles it
func AdminUpdateSale(c *gin.Context) {
	utils.LogInfo("AdminUpdateSale called")

	var sale models.Sale
	if err := config.DB.First(&sale, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Sale not found")
		return
	}

	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !validateSaleRequest(c, &req) {
		return
	}

	var overlap models.Sale
	if err := config.DB.Where("product_id = ? AND active = ? AND id != ? AND start_at < ? AND end_at > ?",
		req.ProductID, true, sale.ID, req.EndAt, req.StartAt).First(&overlap).Error; err == nil {
		utils.Conflict(c, "An active sale already covers this period for the product", nil)
		return
	}

	updates := map[string]interface{}{
		"product_id": req.ProductID,
		"type":       req.Type,
		"value":      req.Value,
		"start_at":   req.StartAt,
		"end_at":     req.EndAt,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := config.DB.Model(&sale).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update sale ID: %d: %v", sale.ID, err)
		utils.InternalServerError(c, "Failed to update sale", err.Error())
		return
	}

	utils.Success(c, "Sale updated successfully", sale)
}

// AdminDeleteSale soft-deletes a sale; products return to full price
func AdminDeleteSale(c *gin.Context) {
	utils.LogInfo("AdminDeleteSale called")

	var sale models.Sale
	if err := config.DB.First(&sale, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Sale not found")
		return
	}

	if err := config.DB.Delete(&sale).Error; err != nil {
		utils.LogError("Failed to delete sale ID: %d: %v", sale.ID, err)
		utils.InternalServerError(c, "Failed to delete sale", err.Error())
		return
	}

	utils.Success(c, "Sale deleted successfully", nil)
}
