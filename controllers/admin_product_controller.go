package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

// ProductRequest represents the create/update product body
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	IsActive    *bool   `json:"is_active"`
	IsFeatured  *bool   `json:"is_featured"`

	Variants []struct {
		Name  string `json:"name" binding:"required"`
		Stock int    `json:"stock"`
	} `json:"variants"`
}

func validateProductRequest(c *gin.Context, req *ProductRequest) (string, bool) {
	if req.Price <= 0 {
		utils.BadRequest(c, "Price must be greater than zero", nil)
		return "", false
	}
	if req.Stock < 0 {
		utils.BadRequest(c, "Stock cannot be negative", nil)
		return "", false
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if !utils.ValidateSlug(slug) {
		utils.BadRequest(c, "Invalid slug. Use lowercase letters, numbers and hyphens", nil)
		return "", false
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.BadRequest(c, "Category not found", nil)
		return "", false
	}

	return slug, true
}

// AdminListProducts returns the catalog for the back office, including
// inactive products
func AdminListProducts(c *gin.Context) {
	utils.LogInfo("AdminListProducts called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Product{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if active := c.Query("active"); active == "true" {
		query = query.Where("is_active = ?", true)
	} else if active == "false" {
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count products", err.Error())
		return
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Variants").Preload("Images").
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, pagination.Page, pagination.Limit)
}

// AdminCreateProduct creates a product with optional variants
func AdminCreateProduct(c *gin.Context) {
	utils.LogInfo("AdminCreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	slug, ok := validateProductRequest(c, &req)
	if !ok {
		return
	}

	var existing models.Product
	if err := config.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		utils.Conflict(c, "A product with this slug already exists", nil)
		return
	}

	product := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Name:  strings.TrimSpace(v.Name),
			Stock: v.Stock,
		})
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Product created: %s (ID: %d)", product.Name, product.ID)
	utils.Created(c, "Product created successfully", product)
}

// AdminUpdateProduct updates product fields and replaces its variant
// set when variants are supplied
func AdminUpdateProduct(c *gin.Context) {
	utils.LogInfo("AdminUpdateProduct called")

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	slug, ok := validateProductRequest(c, &req)
	if !ok {
		return
	}

	var existing models.Product
	if err := config.DB.Where("slug = ? AND id != ?", slug, product.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "A product with this slug already exists", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        strings.TrimSpace(req.Name),
			"slug":        slug,
			"description": req.Description,
			"price":       req.Price,
			"stock":       req.Stock,
			"category_id": req.CategoryID,
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if req.IsFeatured != nil {
			updates["is_featured"] = *req.IsFeatured
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}

		if req.Variants != nil {
			if err := tx.Where("product_id = ?", product.ID).
				Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
			for _, v := range req.Variants {
				variant := models.ProductVariant{
					ProductID: product.ID,
					Name:      strings.TrimSpace(v.Name),
					Stock:     v.Stock,
				}
				if err := tx.Create(&variant).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to update product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	if err := config.DB.Preload("Variants").Preload("Images").First(&product, product.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to reload product", err.Error())
		return
	}
	utils.Success(c, "Product updated successfully", product)
}

// AdminSetProductActive toggles storefront visibility
func AdminSetProductActive(c *gin.Context) {
	utils.LogInfo("AdminSetProductActive called")

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Model(&product).Update("is_active", *req.IsActive).Error; err != nil {
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{
		"id":        product.ID,
		"name":      product.Name,
		"is_active": *req.IsActive,
	})
}

// AdminDeleteProduct soft-deletes a product. Existing order items keep
// their snapshots, so history is unaffected.
func AdminDeleteProduct(c *gin.Context) {
	utils.LogInfo("AdminDeleteProduct called")

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.LogError("Failed to delete product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}

	utils.LogInfo("Product deleted: %s (ID: %d)", product.Name, product.ID)
	utils.Success(c, "Product deleted successfully", nil)
}
