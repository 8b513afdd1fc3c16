package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

// CategoryRequest represents the create/update category body
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// AdminListCategories returns all categories including blocked ones
func AdminListCategories(c *gin.Context) {
	utils.LogInfo("AdminListCategories called")

	var categories []models.Category
	query := config.DB.Order("name ASC")
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// AdminCreateCategory creates a category. The slug is derived from the
// name when not supplied.
func AdminCreateCategory(c *gin.Context) {
	utils.LogInfo("AdminCreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if !utils.ValidateSlug(slug) {
		utils.BadRequest(c, "Invalid slug. Use lowercase letters, numbers and hyphens", nil)
		return
	}

	var existing models.Category
	if err := config.DB.Where("name = ? OR slug = ?", name, slug).First(&existing).Error; err == nil {
		utils.Conflict(c, "A category with this name or slug already exists", nil)
		return
	}

	category := models.Category{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.LogInfo("Category created: %s (ID: %d)", category.Name, category.ID)
	utils.Created(c, "Category created successfully", category)
}

// AdminUpdateCategory updates a category's name, slug or description
func AdminUpdateCategory(c *gin.Context) {
	utils.LogInfo("AdminUpdateCategory called")

	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if !utils.ValidateSlug(slug) {
		utils.BadRequest(c, "Invalid slug. Use lowercase letters, numbers and hyphens", nil)
		return
	}

	var existing models.Category
	if err := config.DB.Where("(name = ? OR slug = ?) AND id != ?", name, slug, category.ID).
		First(&existing).Error; err == nil {
		utils.Conflict(c, "A category with this name or slug already exists", nil)
		return
	}

	if err := config.DB.Model(&category).Updates(map[string]interface{}{
		"name":        name,
		"slug":        slug,
		"description": req.Description,
	}).Error; err != nil {
		utils.LogError("Failed to update category ID: %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Success(c, "Category updated successfully", category)
}

// AdminBlockCategory hides a category and its products from the
// storefront without deleting anything
func AdminBlockCategory(c *gin.Context) {
	utils.LogInfo("AdminBlockCategory called")
	setCategoryBlocked(c, true)
}

// AdminUnblockCategory makes a category visible again
func AdminUnblockCategory(c *gin.Context) {
	utils.LogInfo("AdminUnblockCategory called")
	setCategoryBlocked(c, false)
}

func setCategoryBlocked(c *gin.Context, blocked bool) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	if err := config.DB.Model(&category).Update("blocked", blocked).Error; err != nil {
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	utils.LogInfo("Category ID: %d %s", category.ID, action)
	utils.Success(c, "Category "+action+" successfully", gin.H{
		"id":      category.ID,
		"name":    category.Name,
		"blocked": blocked,
	})
}

// AdminDeleteCategory soft-deletes a category that has no products
func AdminDeleteCategory(c *gin.Context) {
	utils.LogInfo("AdminDeleteCategory called")

	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var productCount int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).
		Count(&productCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to check category products", err.Error())
		return
	}
	if productCount > 0 {
		utils.BadRequest(c, "Cannot delete a category that still has products", nil)
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category ID: %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}
