package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/payment"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"gorm.io/gorm"
)

// SetupPaymentRoutes registers the session-keyed payment endpoints.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, gateway *paymentControllers.Gateway) {
	paymentGroup := r.Group("/payment")
	paymentGroup.Use(middleware.ValidateSession(db))
	{
		paymentGroup.GET("/token/:id/:token/", paymentControllers.GenerateClientToken(gateway))
		paymentGroup.POST("/process/:id/:token/", paymentControllers.ProcessPayment(gateway))
		paymentGroup.POST("/process-simple/:id/:token/", paymentControllers.ProcessSimplePayment())
	}
}
