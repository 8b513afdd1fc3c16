package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/controllers"
	"github.com/minhtran-dev/vietshop/middleware"
)

// RegisterUserRoutes wires the storefront routes: public catalog,
// session-aware cart and the authenticated customer area
func RegisterUserRoutes(v1 *gin.RouterGroup) {
	// Auth
	v1.POST("/signup", controllers.Register)
	v1.POST("/login", controllers.Login)
	v1.POST("/logout", controllers.Logout)

	// Public catalog
	v1.GET("/products", controllers.ListProducts)
	v1.GET("/products/:id", controllers.GetProductDetails)
	v1.GET("/categories", controllers.ListCategories)
	v1.GET("/categories/:id/products", controllers.ListProductsByCategory)
	v1.GET("/banners", controllers.ListBanners)

	// Newsletter
	v1.POST("/newsletter/subscribe", controllers.SubscribeNewsletter)
	v1.POST("/newsletter/unsubscribe", controllers.UnsubscribeNewsletter)

	// Vietnamese administrative boundaries for address forms
	v1.GET("/locations/provinces", controllers.ListProvinces)
	v1.GET("/locations/provinces/:code/districts", controllers.ListDistricts)
	v1.GET("/locations/districts/:code/wards", controllers.ListWards)

	// Payment gateway callbacks. The gateways authenticate themselves
	// with HMAC signatures, not JWTs.
	v1.GET("/payments/vnpay/return", controllers.VNPayReturn)
	v1.GET("/payments/vnpay/ipn", controllers.VNPayIPN)
	v1.GET("/payments/momo/return", controllers.MoMoReturn)
	v1.POST("/payments/momo/ipn", controllers.MoMoIPN)

	// Cart works for both anonymous sessions and logged-in users
	cart := v1.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/items", controllers.AddToCart)
		cart.PUT("/items", controllers.UpdateCartItem)
		cart.DELETE("/items", controllers.RemoveFromCart)
		cart.DELETE("", controllers.ClearCart)
	}

	// Authenticated customer area
	user := v1.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.PUT("/password", controllers.ChangePassword)

		user.GET("/addresses", controllers.ListAddresses)
		user.POST("/addresses", controllers.CreateAddress)
		user.PUT("/addresses/:id", controllers.UpdateAddress)
		user.DELETE("/addresses/:id", controllers.DeleteAddress)
		user.PUT("/addresses/:id/default", controllers.SetDefaultAddress)

		user.POST("/cart/voucher", controllers.ApplyVoucher)
		user.DELETE("/cart/voucher", controllers.RemoveVoucher)

		user.GET("/checkout", controllers.GetCheckoutSummary)
		user.POST("/checkout", controllers.PlaceOrder)

		user.GET("/orders", controllers.ListOrders)
		user.GET("/orders/:id", controllers.GetOrderDetails)
		user.POST("/orders/:id/cancel", controllers.CancelOrder)
		user.GET("/orders/:id/invoice", controllers.DownloadInvoice)
	}
}
