package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/order"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the session-keyed order endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orderGroup := r.Group("/order")
	orderGroup.Use(middleware.ValidateSession(db))
	{
		orderGroup.POST("/add/:id/:token/", orderControllers.PlaceOrder(db))
		orderGroup.GET("/get/:id/:token/", orderControllers.GetUserOrders(db))
	}
}
