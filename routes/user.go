package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/kiranthorat/FractalProjectEcommerce/controllers/user"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers account and session endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	{
		userGroup.POST("/register/", userControllers.Register(db))
		userGroup.POST("/login/", userControllers.Login(db))
		userGroup.GET("/logout/:id/", userControllers.Logout(db))
		userGroup.PUT("/update/:id/:token/",
			middleware.ValidateSession(db), userControllers.UpdateProfile(db))
	}
}
