package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiranthorat/FractalProjectEcommerce/auth"
	"gorm.io/gorm"
)

// UserKey is the context key the session middleware stores the
// authenticated *models.User under.
const UserKey = "user"

// ValidateSession authenticates the :id/:token path segments against
// the session store. Errors keep HTTP 200; clients discriminate on the
// payload shape, not the status code.
func ValidateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid session, Please login again."})
			c.Abort()
			return
		}

		user, ok := auth.ValidateSession(db, uint(id), c.Param("token"))
		if !ok {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid session, Please login again."})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
