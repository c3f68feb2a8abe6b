package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/admin"
	orderControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/order"
	productControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/product"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the JWT-protected admin surface.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/login/", adminControllers.Login(db))

		protected := adminGroup.Group("")
		protected.Use(middleware.ValidateAdminToken)
		{
			protected.GET("/orders/", orderControllers.GetAllOrders(db))
			protected.PUT("/orders/:order_id/status/", orderControllers.UpdateOrderStatus(db))
			protected.GET("/orders/export/", orderControllers.ExportOrdersToExcel(db))
			protected.GET("/orders/ws", orderControllers.OrderWebSocket)

			protected.POST("/products/", productControllers.CreateProduct(db))
			protected.PUT("/products/:product_id/", productControllers.UpdateProduct(db))
			protected.DELETE("/products/:product_id/", productControllers.DeleteProduct(db))
		}
	}
}
