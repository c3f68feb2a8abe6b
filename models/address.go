package models

import (
	"strings"
	"time"
)

const (
	AddressTypeHome  = "home"
	AddressTypeWork  = "work"
	AddressTypeOther = "other"
)

type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null;uniqueIndex:idx_user_default,where:is_default" json:"-"`
	AddressType  string    `gorm:"size:10;default:home" json:"address_type"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	PhoneNumber  string    `gorm:"size:20" json:"phone_number"`
	AddressLine1 string    `gorm:"size:255" json:"address_line_1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line_2"`
	City         string    `gorm:"size:100" json:"city"`
	State        string    `gorm:"size:100" json:"state"`
	PostalCode   string    `gorm:"size:20" json:"postal_code"`
	Country      string    `gorm:"size:100;default:India" json:"country"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullAddress joins the non-empty address parts.
func (a Address) FullAddress() string {
	parts := []string{
		a.AddressLine1,
		a.AddressLine2,
		a.City,
		a.State,
		a.PostalCode,
		a.Country,
	}
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
