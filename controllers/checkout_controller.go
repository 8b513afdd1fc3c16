package controllers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetCheckoutSummary returns the priced cart plus shipping for the
// checkout page
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

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

	details, err := utils.GetCartDetails(cart)
	if err != nil {
		utils.LogError("Failed to get cart details for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}

	var defaultAddress models.Address
	hasAddress := config.DB.Where("user_id = ? AND is_default = ?", user.ID, true).
		First(&defaultAddress).Error == nil

	response := cartSummaryResponse(details)
	response["can_checkout"] = len(details.OrderItems) > 0
	response["payment_methods"] = []string{
		models.PaymentMethodCOD,
		models.PaymentMethodVNPay,
		models.PaymentMethodMoMo,
	}
	if hasAddress {
		response["default_address"] = defaultAddress
	}

	utils.Success(c, "Checkout summary retrieved successfully", response)
}

// BuyNowRequest is the single-product checkout path that bypasses the cart
type BuyNowRequest struct {
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderRequest represents the order placement body
type PlaceOrderRequest struct {
	AddressID     uint           `json:"address_id" binding:"required"`
	PaymentMethod string         `json:"payment_method" binding:"required"`
	Note          string         `json:"note"`
	BuyNow        *BuyNowRequest `json:"buy_now"`
}

type checkoutLine struct {
	ProductID uint
	VariantID *uint
	Quantity  int
}

func newOrderCode() string {
	return "VS-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String()[:13], "-", ""))
}

// PlaceOrder creates an order from the cart (or a buy-now line) in one
// all-or-nothing transaction: product rows are locked, stock is
// decremented with a conditional update, the voucher is re-validated
// under a row lock and its usage recorded, items are snapshotted at
// sale-adjusted prices and the cart is emptied.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID := user.ID
	utils.LogInfo("Processing order placement for user ID: %d", userID)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	validMethods := map[string]bool{
		models.PaymentMethodCOD:   true,
		models.PaymentMethodVNPay: true,
		models.PaymentMethodMoMo:  true,
	}
	if !validMethods[paymentMethod] {
		utils.LogError("Invalid payment method '%s' for user ID: %d", paymentMethod, userID)
		utils.BadRequest(c, "Invalid payment method. Must be one of: cod, vnpay, momo", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		utils.LogError("Address not found, ID: %d, user ID: %d", req.AddressID, userID)
		utils.NotFound(c, "Address not found")
		return
	}

	// Resolve the lines to order before opening the transaction
	var lines []checkoutLine
	var cart *models.Cart
	var voucherCode string
	buyNow := req.BuyNow != nil

	if buyNow {
		qty := req.BuyNow.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty > utils.MaxCartQuantity {
			qty = utils.MaxCartQuantity
		}
		lines = append(lines, checkoutLine{
			ProductID: req.BuyNow.ProductID,
			VariantID: req.BuyNow.VariantID,
			Quantity:  qty,
		})
	} else {
		uid := userID
		var err error
		cart, err = utils.GetOrCreateCart(config.DB, &uid, nil)
		if err != nil {
			utils.InternalServerError(c, "Failed to resolve cart", err.Error())
			return
		}
		voucherCode = cart.VoucherCode

		var cartItems []models.CartItem
		if err := config.DB.Where("cart_id = ?", cart.ID).Find(&cartItems).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch cart items", err.Error())
			return
		}
		for _, item := range cartItems {
			lines = append(lines, checkoutLine{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
	}

	// Reject before any mutation
	if len(lines) == 0 {
		utils.LogError("Empty cart for user ID: %d", userID)
		utils.BadRequest(c, "Cannot place order with empty cart", nil)
		return
	}

	var order models.Order
	var payment *models.Payment

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var orderItems []models.OrderItem
		var subtotal float64

		for _, line := range lines {
			// Lock the product row so concurrent checkouts serialize here
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, line.ProductID).Error; err != nil {
				return utils.NotFoundError(fmt.Sprintf("Product %d not found", line.ProductID), err)
			}
			if !product.IsActive {
				return utils.BadRequestError(fmt.Sprintf("Product '%s' is no longer available", product.Name), nil)
			}

			variantName := ""
			if line.VariantID != nil {
				var variant models.ProductVariant
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("id = ? AND product_id = ?", *line.VariantID, product.ID).
					First(&variant).Error; err != nil {
					return utils.NotFoundError("Product variant not found", err)
				}
				variantName = variant.Name

				// Conditional decrement guards against oversell
				res := tx.Model(&models.ProductVariant{}).
					Where("id = ? AND stock >= ?", variant.ID, line.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return utils.BadRequestError(fmt.Sprintf("Product '%s' (%s) does not have enough stock", product.Name, variant.Name), nil)
				}
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return utils.BadRequestError(fmt.Sprintf("Product '%s' does not have enough stock. Available: %d, Requested: %d",
					product.Name, product.Stock, line.Quantity), nil)
			}

			// Snapshot the sale-adjusted unit price at this moment
			unitPrice := utils.FinalUnitPrice(tx, &product)
			lineTotal := unitPrice * float64(line.Quantity)
			subtotal += lineTotal

			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				VariantID:    line.VariantID,
				ProductName:  product.Name,
				ProductImage: product.ImageURL,
				VariantName:  variantName,
				Quantity:     line.Quantity,
				UnitPrice:    unitPrice,
				Total:        lineTotal,
			})
		}

		shippingFee := utils.ShippingFee(subtotal)

		// Validate and redeem the voucher under a row lock so two
		// concurrent checkouts cannot both pass a near-exhausted cap
		var voucher *models.Voucher
		var discount float64
		if voucherCode != "" {
			var err error
			voucher, discount, err = utils.ValidateVoucher(tx, voucherCode, userID, subtotal, true)
			if err != nil {
				if isVoucherRejection(err) {
					return utils.BadRequestError(err.Error(), nil)
				}
				return err
			}
		}

		order = models.Order{
			Code:          newOrderCode(),
			UserID:        userID,
			AddressID:     address.ID,
			Subtotal:      subtotal,
			ShippingFee:   shippingFee,
			Discount:      discount,
			FinalTotal:    subtotal + shippingFee - discount,
			PaymentMethod: paymentMethod,
			PaymentStatus: models.PaymentStatusPending,
			Status:        models.OrderStatusPending,
			Note:          req.Note,
			OrderItems:    orderItems,
		}
		if voucher != nil {
			order.VoucherID = &voucher.ID
			order.VoucherCode = voucher.Code
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if voucher != nil {
			if err := utils.RecordVoucherUsage(tx, voucher, userID, order.ID, discount); err != nil {
				return err
			}
		}

		payment = &models.Payment{
			OrderID: order.ID,
			Method:  paymentMethod,
			Amount:  order.FinalTotal,
			TxnRef:  uuid.New().String(),
			Status:  models.PaymentStatusPending,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		if !buyNow {
			if err := utils.ClearCart(tx, cart.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.LogError("Order placement rejected for user ID: %d: %v", userID, appErr)
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to place order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}
	utils.LogInfo("Created order %s (ID: %d) for user ID: %d, total: %.0f",
		order.Code, order.ID, userID, order.FinalTotal)

	switch paymentMethod {
	case models.PaymentMethodVNPay:
		payURL, err := buildVNPayRedirect(c, &order, payment)
		if err != nil {
			utils.LogError("Failed to build VNPay URL for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to initiate payment", err.Error())
			return
		}
		utils.Success(c, "Please proceed to payment", gin.H{
			"order_id":     order.ID,
			"order_code":   order.Code,
			"redirect_url": payURL,
		})
		return

	case models.PaymentMethodMoMo:
		payURL, err := createMoMoRedirect(&order, payment)
		if err != nil {
			utils.LogError("Failed to create MoMo payment for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to initiate payment", err.Error())
			return
		}
		utils.Success(c, "Please proceed to payment", gin.H{
			"order_id":     order.ID,
			"order_code":   order.Code,
			"redirect_url": payURL,
		})
		return
	}

	// COD confirms immediately
	go func(email string, o models.Order) {
		if err := utils.SendOrderConfirmation(email, &o); err != nil {
			utils.LogError("Failed to send order confirmation for order ID: %d: %v", o.ID, err)
		}
	}(user.Email, order)

	utils.Success(c, "Thank you for shopping with us! Your order has been placed successfully.", gin.H{
		"order_id":       order.ID,
		"order_code":     order.Code,
		"payment_method": order.PaymentMethod,
		"status":         order.Status,
		"subtotal":       fmt.Sprintf("%.0f", order.Subtotal),
		"shipping_fee":   fmt.Sprintf("%.0f", order.ShippingFee),
		"discount":       fmt.Sprintf("%.0f", order.Discount),
		"final_total":    fmt.Sprintf("%.0f", order.FinalTotal),
		"delivery_date":  "3-7 working days",
		"shipping_address": gin.H{
			"recipient": address.Recipient,
			"phone":     address.Phone,
			"line":      address.Line,
			"ward":      address.Ward,
			"district":  address.District,
			"province":  address.Province,
		},
	})
}
