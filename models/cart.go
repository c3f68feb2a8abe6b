package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user"` // enforces one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems counts line items, not summed quantities.
func (c Cart) TotalItems() int {
	return len(c.Items)
}

// TotalAmount requires Items preloaded together with their Products.
func (c Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.TotalPrice()
	}
	return total
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalPrice reflects the current catalog price, not the price at add time.
func (i CartItem) TotalPrice() float64 {
	return i.Product.Price * float64(i.Quantity)
}
