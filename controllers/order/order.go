package orderControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func currentUser(c *gin.Context) *models.User {
	val, _ := c.Get(middleware.UserKey)
	user, _ := val.(*models.User)
	return user
}

// CountProducts counts the non-empty trimmed segments of a
// comma-delimited product list. A blank list is zero, not an error.
func CountProducts(products string) int {
	count := 0
	for _, segment := range strings.Split(products, ",") {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

func orderJSON(o models.Order) gin.H {
	return gin.H{
		"id":                      o.ID,
		"user":                    o.UserID,
		"product_names":           o.ProductNames,
		"total_products":          o.TotalProducts,
		"transaction_id":          o.TransactionID,
		"total_amount":            o.TotalAmount,
		"status":                  o.Status,
		"delivery_name":           o.DeliveryName,
		"delivery_phone":          o.DeliveryPhone,
		"delivery_address_line_1": o.DeliveryAddressLine1,
		"delivery_address_line_2": o.DeliveryAddressLine2,
		"delivery_city":           o.DeliveryCity,
		"delivery_state":          o.DeliveryState,
		"delivery_postal_code":    o.DeliveryPostalCode,
		"delivery_country":        o.DeliveryCountry,
		"delivery_address":        o.DeliveryAddress(),
		"created_at":              o.CreatedAt,
		"updated_at":              o.UpdatedAt,
	}
}

// POST /order/add/:id/:token/
//
// Records the order snapshot. The transaction id comes from the client
// after it charged the payment gateway; this endpoint does not verify
// it, does not check the amount against the cart, and does not clear
// the cart. Those stay with the caller.
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		products := c.PostForm("products")
		order := models.Order{
			UserID:               user.ID,
			ProductNames:         products,
			TotalProducts:        CountProducts(products),
			TransactionID:        c.PostForm("transaction_id"),
			TotalAmount:          c.DefaultPostForm("amount", "0"),
			Status:               models.OrderStatusPending,
			DeliveryName:         c.PostForm("delivery_name"),
			DeliveryPhone:        c.PostForm("delivery_phone"),
			DeliveryAddressLine1: c.PostForm("delivery_address_line_1"),
			DeliveryAddressLine2: c.PostForm("delivery_address_line_2"),
			DeliveryCity:         c.PostForm("delivery_city"),
			DeliveryState:        c.PostForm("delivery_state"),
			DeliveryPostalCode:   c.PostForm("delivery_postal_code"),
			DeliveryCountry:      c.PostForm("delivery_country"),
		}

		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to place order"})
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"error":   false,
			"msg":     "Order placed Successfully",
		})
	}
}

// GET /order/get/:id/:token/
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var orders []models.Order
		if err := db.Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to fetch orders"})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderJSON(o))
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orders":  out,
		})
	}
}

// GET /admin/orders/
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderJSON(o))
		}
		c.JSON(http.StatusOK, out)
	}
}

// PUT /admin/orders/:order_id/status/
//
// Orders are never deleted; status transitions are the only mutation.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, ok := models.ParseOrderStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
