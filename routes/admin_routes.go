package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/controllers"
	"github.com/minhtran-dev/vietshop/middleware"
)

// RegisterAdminRoutes wires the back-office routes. Everything here
// requires a valid JWT belonging to an admin account.
func RegisterAdminRoutes(v1 *gin.RouterGroup) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", controllers.AdminDashboard)

		admin.GET("/users", controllers.AdminListUsers)
		admin.PUT("/users/:id/block", controllers.AdminBlockUser)
		admin.PUT("/users/:id/unblock", controllers.AdminUnblockUser)

		admin.GET("/categories", controllers.AdminListCategories)
		admin.POST("/categories", controllers.AdminCreateCategory)
		admin.PUT("/categories/:id", controllers.AdminUpdateCategory)
		admin.PUT("/categories/:id/block", controllers.AdminBlockCategory)
		admin.PUT("/categories/:id/unblock", controllers.AdminUnblockCategory)
		admin.DELETE("/categories/:id", controllers.AdminDeleteCategory)

		admin.GET("/products", controllers.AdminListProducts)
		admin.POST("/products", controllers.AdminCreateProduct)
		admin.PUT("/products/:id", controllers.AdminUpdateProduct)
		admin.PUT("/products/:id/active", controllers.AdminSetProductActive)
		admin.DELETE("/products/:id", controllers.AdminDeleteProduct)

		admin.POST("/products/:id/images", controllers.AdminUploadProductImage)
		admin.PUT("/products/:id/images/:imageId/primary", controllers.AdminSetPrimaryImage)
		admin.DELETE("/products/:id/images/:imageId", controllers.AdminDeleteProductImage)

		admin.GET("/orders", controllers.AdminListOrders)
		admin.GET("/orders/:id", controllers.AdminGetOrderDetails)
		admin.PUT("/orders/:id/status", controllers.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/payment-status", controllers.AdminUpdatePaymentStatus)

		admin.GET("/vouchers", controllers.AdminListVouchers)
		admin.POST("/vouchers", controllers.AdminCreateVoucher)
		admin.PUT("/vouchers/:id", controllers.AdminUpdateVoucher)
		admin.DELETE("/vouchers/:id", controllers.AdminDeleteVoucher)
		admin.GET("/vouchers/:id/usage", controllers.AdminListVoucherUsage)

		admin.GET("/sales", controllers.AdminListSales)
		admin.POST("/sales", controllers.AdminCreateSale)
		admin.PUT("/sales/:id", controllers.AdminUpdateSale)
		admin.DELETE("/sales/:id", controllers.AdminDeleteSale)

		admin.GET("/banners", controllers.AdminListBanners)
		admin.POST("/banners", controllers.AdminCreateBanner)
		admin.PUT("/banners/:id", controllers.AdminUpdateBanner)
		admin.DELETE("/banners/:id", controllers.AdminDeleteBanner)

		admin.GET("/newsletter/subscribers", controllers.AdminListSubscribers)
		admin.POST("/newsletter/broadcast", controllers.AdminBroadcastNewsletter)

		admin.GET("/reports/sales", controllers.AdminSalesReport)
		admin.GET("/reports/sales/export", controllers.AdminExportSalesReport)
	}
}
