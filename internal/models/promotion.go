package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion is a product-scoped discount rule. OfferKind selects the
// evaluation: percent_off takes Value percent of the post-coupon cash,
// combo takes Value percent of the nominal amount and adds a bonus
// line, absolute_off takes Value as a flat amount.
type Promotion struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // primary key
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`                            // promo code
	Name           string         `gorm:"not null" json:"name"`                                        // display name
	OfferKind      string         `gorm:"not null" json:"offer_kind"`                                  // percent_off / combo / absolute_off
	Value          Money          `gorm:"type:decimal(20,2);not null" json:"value"`                    // percent or flat amount
	ProductID      uint           `gorm:"index;not null" json:"product_id"`                            // scoped product
	BonusProductID *uint          `gorm:"index" json:"bonus_product_id,omitempty"`                     // derived bonus product
	BonusDiscount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"bonus_discount"` // percent off the bonus product (combo only)
	UsageLimit     int            `gorm:"not null;default:0" json:"usage_limit"`                       // total usage cap (0 = unlimited)
	PerUserLimit   int            `gorm:"not null;default:1" json:"per_user_limit"`                    // per-user usage cap (0 = unlimited)
	StartsAt       *time.Time     `gorm:"index" json:"starts_at"`                                      // start of validity
	EndsAt         *time.Time     `gorm:"index" json:"ends_at"`                                        // end of validity
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`                      // enabled flag
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                     // created at
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                     // updated at
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // soft delete

	BonusProduct *Product `gorm:"foreignKey:BonusProductID" json:"bonus_product,omitempty"` // bonus product
}

// TableName sets the table name.
func (Promotion) TableName() string {
	return "promotions"
}
