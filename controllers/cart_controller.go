package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

// resolveCart finds (or creates) the cart for this request: the user
// cart when authenticated, otherwise the anonymous session cart.
func resolveCart(c *gin.Context) (*models.Cart, error) {
	if userVal, exists := c.Get("user"); exists {
		if user, ok := userVal.(models.User); ok {
			uid := user.ID
			return utils.GetOrCreateCart(config.DB, &uid, nil)
		}
	}

	token, err := utils.CartSessionToken(c)
	if err != nil {
		return nil, err
	}
	return utils.GetOrCreateCart(config.DB, nil, &token)
}

func cartSummaryResponse(details *utils.CartDetails) gin.H {
	items := make([]gin.H, 0, len(details.OrderItems))
	for _, item := range details.OrderItems {
		items = append(items, gin.H{
			"product_id":    item.ProductID,
			"variant_id":    item.VariantID,
			"name":          item.ProductName,
			"image_url":     item.ProductImage,
			"variant_name":  item.VariantName,
			"quantity":      item.Quantity,
			"unit_price":    fmt.Sprintf("%.0f", item.UnitPrice),
			"item_total":    fmt.Sprintf("%.0f", item.Total),
		})
	}
	return gin.H{
		"items":            items,
		"subtotal":         fmt.Sprintf("%.0f", details.Subtotal),
		"voucher_code":     details.VoucherCode,
		"voucher_discount": fmt.Sprintf("%.0f", details.VoucherDiscount),
		"shipping_fee":     fmt.Sprintf("%.0f", details.ShippingFee),
		"final_total":      fmt.Sprintf("%.0f", details.FinalTotal),
	}
}

// AddToCartRequest represents the add-to-cart body
type AddToCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// AddToCart adds a product (optionally a specific variant) to the cart
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.Quantity > utils.MaxCartQuantity {
		req.Quantity = utils.MaxCartQuantity
	}

	cart, err := resolveCart(c)
	if err != nil {
		utils.LogError("Failed to resolve cart: %v", err)
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.LogError("Product not found: %d", req.ProductID)
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive {
		utils.BadRequest(c, "Product is not available", nil)
		return
	}

	stock := product.Stock
	if req.VariantID != nil {
		var variant models.ProductVariant
		if err := config.DB.Where("id = ? AND product_id = ?", *req.VariantID, product.ID).
			First(&variant).Error; err != nil {
			utils.NotFound(c, "Product variant not found")
			return
		}
		stock = variant.Stock
	}

	var item models.CartItem
	query := config.DB.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID)
	if req.VariantID != nil {
		query = query.Where("variant_id = ?", *req.VariantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	newQuantity := req.Quantity
	if err := query.First(&item).Error; err == nil {
		newQuantity = item.Quantity + req.Quantity
		if newQuantity > utils.MaxCartQuantity {
			newQuantity = utils.MaxCartQuantity
		}
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to check cart", err.Error())
		return
	}

	if newQuantity > stock {
		utils.LogError("Insufficient stock for product ID: %d, requested: %d, available: %d",
			req.ProductID, newQuantity, stock)
		utils.BadRequest(c, fmt.Sprintf("Only %d left in stock", stock), nil)
		return
	}

	if item.ID != 0 {
		if err := config.DB.Model(&item).UpdateColumn("quantity", newQuantity).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", err.Error())
			return
		}
	} else {
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Quantity:  newQuantity,
		}
		if err := config.DB.Create(&item).Error; err != nil {
			utils.InternalServerError(c, "Failed to add to cart", err.Error())
			return
		}
	}
	utils.LogInfo("Added product ID: %d (qty %d) to cart ID: %d", req.ProductID, newQuantity, cart.ID)

	details, err := utils.GetCartDetails(cart)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Product added to cart", cartSummaryResponse(details))
}

// GetCart returns the priced cart for this user or session
func GetCart(c *gin.Context) {
	cart, err := resolveCart(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	details, err := utils.GetCartDetails(cart)
	if err != nil {
		utils.LogError("Failed to get cart details for cart ID: %d: %v", cart.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}

	utils.Success(c, "Cart retrieved successfully", cartSummaryResponse(details))
}

// UpdateCartItemRequest represents the quantity update body. Quantity
// is a pointer because zero is a meaningful value (remove the line) and
// must survive binding.
type UpdateCartItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  *int  `json:"quantity" binding:"required"`
}

// UpdateCartItem sets the quantity of one cart line; zero removes it
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	quantity := *req.Quantity
	if quantity > utils.MaxCartQuantity {
		quantity = utils.MaxCartQuantity
	}

	cart, err := resolveCart(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	query := config.DB.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID)
	if req.VariantID != nil {
		query = query.Where("variant_id = ?", *req.VariantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	if quantity < 1 {
		if err := config.DB.Delete(&item).Error; err != nil {
			utils.InternalServerError(c, "Failed to remove cart item", err.Error())
			return
		}
	} else {
		var product models.Product
		if err := config.DB.First(&product, req.ProductID).Error; err != nil {
			utils.NotFound(c, "Product not found")
			return
		}
		if quantity > product.Stock {
			utils.BadRequest(c, fmt.Sprintf("Only %d left in stock", product.Stock), nil)
			return
		}
		if err := config.DB.Model(&item).UpdateColumn("quantity", quantity).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart item", err.Error())
			return
		}
	}

	details, err := utils.GetCartDetails(cart)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Cart updated successfully", cartSummaryResponse(details))
}

// RemoveFromCart deletes one line from the cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	cart, err := resolveCart(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	query := config.DB.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID)
	if req.VariantID != nil {
		query = query.Where("variant_id = ?", *req.VariantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	result := query.Delete(&models.CartItem{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to remove cart item", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Cart item not found")
		return
	}

	details, err := utils.GetCartDetails(cart)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Item removed from cart", cartSummaryResponse(details))
}

// ClearCart empties the cart
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	cart, err := resolveCart(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to resolve cart", err.Error())
		return
	}

	if err := utils.ClearCart(config.DB, cart.ID); err != nil {
		utils.LogError("Failed to clear cart ID: %d: %v", cart.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}

	utils.Success(c, "Cart cleared successfully", nil)
}
