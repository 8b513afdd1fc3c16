package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// ListCategories returns all unblocked categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.Success(c, "Categories retrieved successfully", gin.H{"categories": []models.Category{}})
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// ListProductsByCategory returns active products of one category
func ListProductsByCategory(c *gin.Context) {
	utils.LogInfo("ListProductsByCategory called")

	var category models.Category
	if err := config.DB.Where("(id::text = ? OR slug = ?) AND blocked = ?",
		c.Param("id"), c.Param("id"), false).First(&category).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", category.ID, true).
		Order("created_at desc")

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Preload("Images").Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for category ID: %d: %v", category.ID, err)
		utils.SuccessWithPagination(c, "Products retrieved successfully", []gin.H{}, 0, pagination.Page, pagination.Limit)
		return
	}

	items := make([]gin.H, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", items, total, pagination.Page, pagination.Limit)
}
