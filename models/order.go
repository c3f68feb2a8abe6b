package models

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an append-only snapshot. Product names and the delivery
// address are copied strings, not references, so later edits to the
// catalog or the address book never change a placed order.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index;not null" json:"user"`
	ProductNames  string      `gorm:"size:500" json:"product_names"`
	TotalProducts int         `gorm:"default:0" json:"total_products"`
	TransactionID string      `gorm:"size:150" json:"transaction_id"`
	TotalAmount   string      `gorm:"size:50;default:0" json:"total_amount"`
	Status        OrderStatus `gorm:"type:varchar(20);default:pending" json:"status"`

	DeliveryName         string `gorm:"size:100" json:"delivery_name"`
	DeliveryPhone        string `gorm:"size:20" json:"delivery_phone"`
	DeliveryAddressLine1 string `gorm:"size:255" json:"delivery_address_line_1"`
	DeliveryAddressLine2 string `gorm:"size:255" json:"delivery_address_line_2"`
	DeliveryCity         string `gorm:"size:100" json:"delivery_city"`
	DeliveryState        string `gorm:"size:100" json:"delivery_state"`
	DeliveryPostalCode   string `gorm:"size:20" json:"delivery_postal_code"`
	DeliveryCountry      string `gorm:"size:100" json:"delivery_country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeliveryAddress returns the formatted delivery address.
func (o Order) DeliveryAddress() string {
	if o.DeliveryAddressLine1 == "" {
		return "No delivery address provided"
	}
	parts := []string{
		o.DeliveryAddressLine1,
		o.DeliveryAddressLine2,
		o.DeliveryCity,
		o.DeliveryState,
		o.DeliveryPostalCode,
		o.DeliveryCountry,
	}
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// ParseOrderStatus maps a request string onto the status enum.
func ParseOrderStatus(status string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToLower(status)) {
	case OrderStatusPending:
		return OrderStatusPending, true
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, true
	case OrderStatusShipped:
		return OrderStatusShipped, true
	case OrderStatusDelivered:
		return OrderStatusDelivered, true
	case OrderStatusCancelled:
		return OrderStatusCancelled, true
	default:
		return "", false
	}
}
