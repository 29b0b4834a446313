package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a single-use fixed-amount discount code.
type Coupon struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // primary key
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                             // coupon code
	Amount        Money          `gorm:"type:decimal(20,2);not null" json:"amount"`                    // discount budget
	MinOrderValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_value"` // usage threshold
	ValidFrom     *time.Time     `gorm:"index" json:"valid_from"`                                      // start of validity
	ValidTill     *time.Time     `gorm:"index" json:"valid_till"`                                      // last valid day (inclusive)
	IsUsed        bool           `gorm:"not null;default:false" json:"is_used"`                        // redeemed flag
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`                       // enabled flag
	UsageLimit    int            `gorm:"not null;default:0" json:"usage_limit"`                        // total usage cap (0 = unlimited)
	PerUserLimit  int            `gorm:"not null;default:1" json:"per_user_limit"`                     // per-user usage cap (0 = unlimited)
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // created at
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                      // updated at
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}
