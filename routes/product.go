package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/product"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public read-only catalog.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	productGroup := r.Group("/products")
	{
		productGroup.GET("/", productControllers.GetProducts(db))
		productGroup.GET("/:product_id/", productControllers.GetProductByID(db))
	}
}
