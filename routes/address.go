package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/address"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"gorm.io/gorm"
)

// SetupAddressRoutes registers the session-keyed address book endpoints.
func SetupAddressRoutes(r *gin.Engine, db *gorm.DB) {
	addressGroup := r.Group("/address")
	addressGroup.Use(middleware.ValidateSession(db))
	{
		addressGroup.GET("/get/:id/:token/", addressControllers.GetAddresses(db))
		addressGroup.POST("/add/:id/:token/", addressControllers.AddAddress(db))
		addressGroup.PUT("/update/:id/:token/:address_id/", addressControllers.UpdateAddress(db))
		addressGroup.DELETE("/delete/:id/:token/:address_id/", addressControllers.DeleteAddress(db))
		addressGroup.POST("/set-default/:id/:token/:address_id/", addressControllers.SetDefaultAddress(db))
	}
}
