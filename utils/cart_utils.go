package utils

import (
	"fmt"
	"math"

	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"gorm.io/gorm"
)

// CartDetails holds a priced view of a cart at this moment
type CartDetails struct {
	Cart            *models.Cart
	OrderItems      []models.OrderItem
	Subtotal        float64
	VoucherID       *uint
	VoucherCode     string
	VoucherDiscount float64
	ShippingFee     float64
	FinalTotal      float64
}

// GetOrCreateCart resolves the cart for either a user or an anonymous
// session token. Exactly one of userID/sessionToken must be set.
func GetOrCreateCart(db *gorm.DB, userID *uint, sessionToken *string) (*models.Cart, error) {
	var cart models.Cart
	var err error
	switch {
	case userID != nil:
		err = db.Where("user_id = ?", *userID).First(&cart).Error
	case sessionToken != nil:
		err = db.Where("session_token = ?", *sessionToken).First(&cart).Error
	default:
		return nil, fmt.Errorf("cart owner is required")
	}

	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cart = models.Cart{UserID: userID, SessionToken: sessionToken}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartDetails prices the cart's items against current sale pricing
// and the applied voucher. Lines referencing missing or inactive
// products are skipped rather than failing the whole cart.
func GetCartDetails(cart *models.Cart) (*CartDetails, error) {
	db := config.DB

	var items []models.CartItem
	if err := db.Preload("Product").Preload("Variant").
		Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	details := CartDetails{Cart: cart}
	for _, item := range items {
		if item.Product.ID == 0 || !item.Product.IsActive {
			continue
		}

		unitPrice := FinalUnitPrice(db, &item.Product)
		lineTotal := unitPrice * float64(item.Quantity)

		variantName := ""
		if item.Variant != nil {
			variantName = item.Variant.Name
		}

		details.OrderItems = append(details.OrderItems, models.OrderItem{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			ProductName:  item.Product.Name,
			ProductImage: item.Product.ImageURL,
			VariantName:  variantName,
			Quantity:     item.Quantity,
			UnitPrice:    unitPrice,
			Total:        lineTotal,
		})
		details.Subtotal += lineTotal
	}

	// Apply the cart's voucher, if still eligible at the current subtotal
	if cart.VoucherID != nil {
		var voucher models.Voucher
		if err := db.First(&voucher, *cart.VoucherID).Error; err == nil {
			if CheckVoucherEligibility(db, &voucher, derefUint(cart.UserID), details.Subtotal) == nil {
				details.VoucherID = cart.VoucherID
				details.VoucherCode = voucher.Code
				details.VoucherDiscount = VoucherDiscount(&voucher, details.Subtotal)
			}
		}
	}

	details.ShippingFee = ShippingFee(details.Subtotal)
	details.FinalTotal = math.Round((details.Subtotal+details.ShippingFee-details.VoucherDiscount)*100) / 100

	return &details, nil
}

// MergeCartItems merges anonymous-cart lines into user-cart lines,
// summing quantities per (product, variant) pair
func MergeCartItems(userItems, anonItems []models.CartItem) []models.CartItem {
	type key struct {
		productID uint
		variantID uint
	}
	variantKey := func(v *uint) uint {
		if v == nil {
			return 0
		}
		return *v
	}

	index := make(map[key]int)
	merged := make([]models.CartItem, 0, len(userItems)+len(anonItems))
	for _, item := range userItems {
		index[key{item.ProductID, variantKey(item.VariantID)}] = len(merged)
		merged = append(merged, item)
	}
	for _, item := range anonItems {
		k := key{item.ProductID, variantKey(item.VariantID)}
		if i, ok := index[k]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// MergeSessionCart folds the anonymous session cart into the user's
// cart at login and deletes the anonymous cart row. No-op when the
// session has no cart.
func MergeSessionCart(userID uint, sessionToken string) error {
	db := config.DB

	var anonCart models.Cart
	if err := db.Where("session_token = ?", sessionToken).First(&anonCart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		uid := userID
		userCart, err := GetOrCreateCart(tx, &uid, nil)
		if err != nil {
			return err
		}

		var userItems, anonItems []models.CartItem
		if err := tx.Where("cart_id = ?", userCart.ID).Find(&userItems).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", anonCart.ID).Find(&anonItems).Error; err != nil {
			return err
		}

		for _, merged := range MergeCartItems(userItems, anonItems) {
			if merged.CartID == userCart.ID && merged.ID != 0 {
				if err := tx.Model(&models.CartItem{}).Where("id = ?", merged.ID).
					UpdateColumn("quantity", merged.Quantity).Error; err != nil {
					return err
				}
				continue
			}
			item := models.CartItem{
				CartID:    userCart.ID,
				ProductID: merged.ProductID,
				VariantID: merged.VariantID,
				Quantity:  merged.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", anonCart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&anonCart).Error
	})
}

// ClearCart removes every line from a cart and detaches its voucher
func ClearCart(tx *gorm.DB, cartID uint) error {
	if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&models.Cart{}).Where("id = ?", cartID).
		Updates(map[string]interface{}{"voucher_id": nil, "voucher_code": ""}).Error
}

func derefUint(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}
