package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a voucher issuer (Amazon, Flipkart, ...).
type Brand struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                            // primary key
	Name              string         `gorm:"not null" json:"name"`                                            // brand name
	DisplayChannel    string         `gorm:"not null;default:'all'" json:"display_channel"`                   // channel restriction
	MonthlyCapEnabled bool           `gorm:"not null;default:false" json:"monthly_cap_enabled"`               // per-user monthly spend cap switch
	MonthlyCapAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"monthly_cap_amount"` // per-user monthly spend cap
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`                          // enabled flag
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                         // created at
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                         // updated at
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                  // soft delete
}

// TableName sets the table name.
func (Brand) TableName() string {
	return "brands"
}
