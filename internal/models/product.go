package models

import "gorm.io/gorm"

// Product is a catalog entry the payment service keeps so it can resolve
// unit prices at checkout. Price is in integer minor currency units.
type Product struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Price      int64  `json:"price" validate:"gte=0"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
