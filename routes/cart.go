package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/cart"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers the session-keyed cart endpoints.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateSession(db))
	{
		cartGroup.GET("/get/:id/:token/", cartControllers.GetCart(db))
		cartGroup.POST("/add/:id/:token/", cartControllers.AddToCart(db))
		cartGroup.POST("/update/:id/:token/", cartControllers.UpdateCartItem(db))
		cartGroup.POST("/remove/:id/:token/", cartControllers.RemoveFromCart(db))
		cartGroup.POST("/clear/:id/:token/", cartControllers.ClearCart(db))
	}
}
