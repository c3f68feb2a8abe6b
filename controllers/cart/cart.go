package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type RemoveItemInput struct {
	ProductID uint `json:"product_id"`
}

func currentUser(c *gin.Context) *models.User {
	val, _ := c.Get(middleware.UserKey)
	user, _ := val.(*models.User)
	return user
}

// getOrCreateCart is safe under concurrent first access: the unique
// index on carts.user_id plus ON CONFLICT DO NOTHING means two
// simultaneous calls settle on a single row.
func getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartItemJSON(item models.CartItem) gin.H {
	return gin.H{
		"id":                  item.ID,
		"product_id":          item.ProductID,
		"product_name":        item.Product.Name,
		"product_description": item.Product.Description,
		"product_price":       item.Product.Price,
		"product_image":       item.Product.Image,
		"quantity":            item.Quantity,
		"total_price":         item.TotalPrice(),
		"created_at":          item.CreatedAt,
		"updated_at":          item.UpdatedAt,
	}
}

func cartJSON(cart models.Cart) gin.H {
	items := make([]gin.H, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemJSON(item))
	}
	return gin.H{
		"id":           cart.ID,
		"user":         cart.UserID,
		"items":        items,
		"total_items":  cart.TotalItems(),
		"total_amount": cart.TotalAmount(),
		"created_at":   cart.CreatedAt,
		"updated_at":   cart.UpdatedAt,
	}
}

// GET /cart/get/:id/:token/
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if err := db.Preload("Items.Product").First(cart, cart.ID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"cart":    cartJSON(*cart),
		})
	}
}

// POST /cart/add/:id/:token/
//
// Repeated adds for the same product accumulate: the upsert increments
// the existing row in a single statement, so concurrent adds cannot
// lose an increment or create a duplicate line item.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}
		if input.ProductID == 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Product ID is required"})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Quantity must be greater than 0"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Product not found"})
			return
		}

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to add item to cart"})
			return
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": time.Now(),
			}),
		}).Create(&item).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to add item to cart"})
			return
		}

		// Re-read for the post-upsert quantity and row id.
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to add item to cart"})
			return
		}
		item.Product = product

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Item added to cart successfully",
			"cart_item": gin.H{
				"id":           item.ID,
				"product_name": product.Name,
				"quantity":     item.Quantity,
				"total_price":  item.TotalPrice(),
			},
		})
	}
}

// POST /cart/update/:id/:token/
//
// Unlike AddToCart, this overwrites the quantity.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}
		if input.ProductID == 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Product ID is required"})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Quantity must be greater than 0"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Item not found in cart"})
			return
		}

		var item models.CartItem
		err := db.Preload("Product").
			Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"error": "Item not found in cart"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"error": "Failed to update cart item"})
			return
		}

		if err := db.Model(&item).Update("quantity", input.Quantity).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cart item updated successfully",
			"cart_item": gin.H{
				"id":           item.ID,
				"product_name": item.Product.Name,
				"quantity":     item.Quantity,
				"total_price":  item.TotalPrice(),
			},
		})
	}
}

// POST /cart/remove/:id/:token/
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input RemoveItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}
		if input.ProductID == 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Product ID is required"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Item not found in cart"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to remove item from cart"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Item not found in cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Item removed from cart successfully",
		})
	}
}

// POST /cart/clear/:id/:token/
//
// Clearing a cart that does not exist yet is a success, not an error.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"message": "Cart is already empty",
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"error": "Failed to clear cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cart cleared successfully",
		})
	}
}
