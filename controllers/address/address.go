package addressControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"gorm.io/gorm"
)

type AddressInput struct {
	AddressType  *string `json:"address_type"`
	FullName     *string `json:"full_name"`
	PhoneNumber  *string `json:"phone_number"`
	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`
	IsDefault    *bool   `json:"is_default"`
}

func currentUser(c *gin.Context) *models.User {
	val, _ := c.Get(middleware.UserKey)
	user, _ := val.(*models.User)
	return user
}

func validPhoneNumber(phone string) bool {
	stripped := strings.NewReplacer("+", "", "-", "", " ", "").Replace(phone)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validPostalCode(code string) bool {
	return len(strings.ReplaceAll(code, " ", "")) >= 3
}

// validate returns field-scoped messages; empty fields are skipped so
// partial updates only validate what they touch.
func validate(input AddressInput) map[string][]string {
	errs := make(map[string][]string)
	if input.PhoneNumber != nil && *input.PhoneNumber != "" && !validPhoneNumber(*input.PhoneNumber) {
		errs["phone_number"] = append(errs["phone_number"], "Enter a valid phone number")
	}
	if input.PostalCode != nil && *input.PostalCode != "" && !validPostalCode(*input.PostalCode) {
		errs["postal_code"] = append(errs["postal_code"], "Enter a valid postal code")
	}
	return errs
}

func addressJSON(a models.Address) gin.H {
	return gin.H{
		"id":             a.ID,
		"address_type":   a.AddressType,
		"full_name":      a.FullName,
		"phone_number":   a.PhoneNumber,
		"address_line_1": a.AddressLine1,
		"address_line_2": a.AddressLine2,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
		"is_default":     a.IsDefault,
		"full_address":   a.FullAddress(),
		"created_at":     a.CreatedAt,
		"updated_at":     a.UpdatedAt,
	}
}

// clearDefaults drops the default flag from every address of the user.
// Callers run it inside the same transaction that sets the new default
// so the single-default invariant holds under concurrent requests.
func clearDefaults(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// requiredFields reports the missing mandatory fields of a new address.
func requiredFields(input AddressInput) map[string][]string {
	required := map[string]*string{
		"full_name":      input.FullName,
		"phone_number":   input.PhoneNumber,
		"address_line_1": input.AddressLine1,
		"city":           input.City,
		"state":          input.State,
		"postal_code":    input.PostalCode,
	}
	errs := make(map[string][]string)
	for field, value := range required {
		if value == nil || *value == "" {
			errs[field] = append(errs[field], "This field is required.")
		}
	}
	return errs
}

// GET /address/get/:id/:token/
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var addresses []models.Address
		if err := db.Where("user_id = ?", user.ID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to fetch addresses"})
			return
		}

		out := make([]gin.H, 0, len(addresses))
		for _, a := range addresses {
			out = append(out, addressJSON(a))
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"addresses": out,
		})
	}
}

// POST /address/add/:id/:token/
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}
		errs := requiredFields(input)
		for field, msgs := range validate(input) {
			errs[field] = append(errs[field], msgs...)
		}
		if len(errs) > 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Validation failed", "errors": errs})
			return
		}

		address := models.Address{
			UserID:      user.ID,
			AddressType: models.AddressTypeHome,
			Country:     "India",
		}
		applyInput(&address, input)

		err := db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := clearDefaults(tx, user.ID); err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to add address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"address": addressJSON(address),
			"message": "Address added successfully",
		})
	}
}

// PUT /address/update/:id/:token/:address_id/
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		addressID, err := strconv.ParseUint(c.Param("address_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Address not found"})
			return
		}

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", addressID, user.ID).
			First(&address).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Address not found"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Invalid JSON data"})
			return
		}
		if errs := validate(input); len(errs) > 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Validation failed", "errors": errs})
			return
		}

		applyInput(&address, input)

		err = db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := clearDefaults(tx, user.ID); err != nil {
					return err
				}
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to update address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"address": addressJSON(address),
			"message": "Address updated successfully",
		})
	}
}

// DELETE /address/delete/:id/:token/:address_id/
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		addressID, err := strconv.ParseUint(c.Param("address_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Address not found"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", addressID, user.ID).
			Delete(&models.Address{})
		if result.Error != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusOK, gin.H{"error": "Address not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Address deleted successfully",
		})
	}
}

// POST /address/set-default/:id/:token/:address_id/
func SetDefaultAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		addressID, err := strconv.ParseUint(c.Param("address_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Address not found"})
			return
		}

		var address models.Address
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND user_id = ?", addressID, user.ID).
				First(&address).Error; err != nil {
				return err
			}
			if err := clearDefaults(tx, user.ID); err != nil {
				return err
			}
			address.IsDefault = true
			return tx.Save(&address).Error
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"error": "Failed to set default address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"address": addressJSON(address),
			"message": "Default address updated successfully",
		})
	}
}

func applyInput(address *models.Address, input AddressInput) {
	if input.AddressType != nil {
		address.AddressType = *input.AddressType
	}
	if input.FullName != nil {
		address.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		address.PhoneNumber = *input.PhoneNumber
	}
	if input.AddressLine1 != nil {
		address.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		address.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.State != nil {
		address.State = *input.State
	}
	if input.PostalCode != nil {
		address.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		address.Country = *input.Country
	}
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}
}
