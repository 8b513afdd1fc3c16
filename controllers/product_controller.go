package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

func productResponse(p *models.Product) gin.H {
	finalPrice := utils.FinalUnitPrice(config.DB, p)
	resp := gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"final_price": finalPrice,
		"on_sale":     finalPrice < p.Price,
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"image_url":   p.ImageURL,
		"is_featured": p.IsFeatured,
	}
	if len(p.Images) > 0 {
		resp["images"] = p.Images
	}
	if len(p.Variants) > 0 {
		resp["variants"] = p.Variants
	}
	return resp
}

// ListProducts returns the public catalog with pagination, search,
// category filter and sorting. Database failures degrade to an empty
// list rather than failing the page.
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ? AND (categories.blocked = ? OR categories.id IS NULL)", true, false)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("products.name ILIKE ?", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("products.category_id = ?", categoryID)
	}
	if c.Query("featured") == "true" {
		query = query.Where("products.is_featured = ?", true)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "price_asc":
		query = query.Order("products.price asc")
	case "price_desc":
		query = query.Order("products.price desc")
	case "popular":
		query = query.Order("products.views desc")
	default:
		query = query.Order("products.created_at desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.SuccessWithPagination(c, "Products retrieved successfully", []gin.H{}, 0, pagination.Page, pagination.Limit)
		return
	}

	var products []models.Product
	if err := query.Preload("Images").Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.SuccessWithPagination(c, "Products retrieved successfully", []gin.H{}, 0, pagination.Page, pagination.Limit)
		return
	}

	items := make([]gin.H, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", items, total, pagination.Page, pagination.Limit)
}

// GetProductDetails returns one product by ID or slug and records a view
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	idOrSlug := c.Param("id")
	query := config.DB.Preload("Images").Preload("Variants").Preload("Category")
	var product models.Product
	var err error
	if id, convErr := strconv.Atoi(idOrSlug); convErr == nil {
		err = query.First(&product, id).Error
	} else {
		err = query.Where("slug = ?", idOrSlug).First(&product).Error
	}
	if err != nil {
		utils.LogError("Product not found: %s", idOrSlug)
		utils.NotFound(c, "Product not found")
		return
	}

	if !product.IsActive {
		utils.NotFound(c, "Product not found")
		return
	}

	config.DB.Model(&product).UpdateColumn("views", gorm.Expr("views + ?", 1))

	resp := productResponse(&product)
	resp["category"] = gin.H{"id": product.Category.ID, "name": product.Category.Name}
	resp["views"] = product.Views + 1

	// Surface the sale window so the storefront can show a countdown
	if sale, err := utils.GetActiveSaleForProduct(config.DB, product.ID); err == nil && sale != nil {
		resp["sale"] = gin.H{
			"type":   sale.Type,
			"value":  sale.Value,
			"end_at": sale.EndAt.Format("2006-01-02 15:04:05"),
		}
	}

	utils.Success(c, fmt.Sprintf("Product %d retrieved successfully", product.ID), resp)
}
