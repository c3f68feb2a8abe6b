package userControllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiranthorat/FractalProjectEcommerce/auth"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w]+\.[a-z]{2,3}$`)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
}

type UpdateProfileInput struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Gender *string `json:"gender"`
}

func userJSON(u models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"phone":      u.Phone,
		"gender":     u.Gender,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// POST /user/register/
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}
		if !emailPattern.MatchString(input.Email) {
			c.JSON(http.StatusOK, gin.H{"error": "Enter a valid email"})
			return
		}
		if len(input.Password) < 3 {
			c.JSON(http.StatusOK, gin.H{"error": "Password needs to be at least 3 chars"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to register"})
			return
		}

		user := models.User{
			Email:    input.Email,
			Password: string(hash),
			Name:     input.Name,
			Phone:    input.Phone,
			Gender:   input.Gender,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Email already registered"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userJSON(user),
		})
	}
}

// POST /user/login/
//
// Form fields email/password. At most one live session per user: a
// login over an existing session revokes it and reports the conflict,
// so the retry succeeds.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		password := c.PostForm("password")

		if !emailPattern.MatchString(email) {
			c.JSON(http.StatusOK, gin.H{"error": "Enter a valid email"})
			return
		}
		if len(password) < 3 {
			c.JSON(http.StatusOK, gin.H{"error": "Password needs to be at least 3 chars"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid Email"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid password"})
			return
		}

		session, err := auth.StartSession(db, user.ID)
		if err != nil {
			if errors.Is(err, auth.ErrSessionExists) {
				c.JSON(http.StatusOK, gin.H{"error": "Previous session exists"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"error": "Failed to login"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": session.Token,
			"user":  userJSON(user),
		})
	}
}

// GET /user/logout/:id/
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid user ID"})
			return
		}
		if err := auth.EndSession(db, user.ID); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to logout"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": "Logout success"})
	}
}

// PUT /user/update/:id/:token/
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, _ := c.Get(middleware.UserKey)
		user := val.(*models.User)

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Email != nil {
			if !emailPattern.MatchString(*input.Email) {
				c.JSON(http.StatusOK, gin.H{"error": "Enter a valid email"})
				return
			}
			updates["email"] = *input.Email
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Gender != nil {
			updates["gender"] = *input.Gender
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusOK, gin.H{"error": "Failed to update profile"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userJSON(*user),
			"message": "Profile updated successfully",
		})
	}
}
