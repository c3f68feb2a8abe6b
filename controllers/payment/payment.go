package paymentControllers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProcessPaymentInput struct {
	PaymentMethodNonce string `json:"paymentMethodNonce"`
	Amount             string `json:"amount"`
}

// GET /payment/token/:id/:token/
func GenerateClientToken(gateway *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gateway == nil {
			// No processor configured; hand out a local opaque token so
			// the sandbox checkout flow still works end to end.
			c.JSON(http.StatusOK, gin.H{
				"clientToken": uuid.NewString(),
				"success":     true,
			})
			return
		}

		clientToken, err := gateway.ClientToken()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"error":   "Failed to generate client token",
				"success": false,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"clientToken": clientToken,
			"success":     true,
		})
	}
}

// POST /payment/process/:id/:token/
func ProcessPayment(gateway *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProcessPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data", "success": false})
			return
		}
		if input.PaymentMethodNonce == "" || input.Amount == "" {
			c.JSON(http.StatusOK, gin.H{
				"error":   "Missing payment method nonce or amount",
				"success": false,
			})
			return
		}
		if gateway == nil {
			c.JSON(http.StatusOK, gin.H{
				"error":   "Payment gateway is not configured",
				"success": false,
			})
			return
		}

		result, err := gateway.Charge(input.Amount, input.PaymentMethodNonce)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": err.Error(), "success": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"transaction": gin.H{
				"id":     result.TransactionID,
				"amount": result.Amount,
				"status": result.Status,
			},
		})
	}
}

// POST /payment/process-simple/:id/:token/
//
// Test-mode charge that needs no processor account.
func ProcessSimplePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProcessPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data", "success": false})
			return
		}
		if input.Amount == "" {
			c.JSON(http.StatusOK, gin.H{
				"error":   "Amount is required",
				"success": false,
			})
			return
		}

		transactionID := fmt.Sprintf("TXN_%d_%d", time.Now().Unix(), rand.Intn(9000)+1000)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"transaction": gin.H{
				"id":     transactionID,
				"amount": input.Amount,
				"status": "settled",
			},
		})
	}
}
