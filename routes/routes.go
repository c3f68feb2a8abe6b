package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/payment"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gateway *paymentControllers.Gateway) {
	SetupUserRoutes(r, db)
	SetupProductRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupAddressRoutes(r, db)
	SetupOrderRoutes(r, db)
	SetupPaymentRoutes(r, db, gateway)
	SetupAdminRoutes(r, db)
}
