package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a purchasable voucher denomination.
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                           // primary key
	BrandID        uint           `gorm:"not null;index" json:"brand_id"`                 // issuing brand
	Name           string         `gorm:"not null" json:"name"`                           // product name
	Price          Money          `gorm:"type:decimal(20,2);not null" json:"price"`       // nominal unit price
	AvailableQty   int            `gorm:"not null;default:0" json:"available_qty"`        // sellable stock
	ExpiryDate     *time.Time     `gorm:"index" json:"expiry_date,omitempty"`             // listing expiry
	DisplayChannel string         `gorm:"not null;default:'all'" json:"display_channel"`  // channel restriction
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`            // enabled flag
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`              // sort weight
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                        // created at
	UpdatedAt      time.Time      `json:"updated_at"`                                     // updated at
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                 // soft delete

	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"` // issuing brand
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
