package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is a pending line in a user's cart. Promotion and coupon
// attachments are resolved against current catalog state at checkout.
type CartItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                              // primary key
	UserID         uint           `gorm:"not null;index" json:"user_id"`                     // owning user
	ProductID      uint           `gorm:"not null;index" json:"product_id"`                  // chosen product
	Quantity       int            `gorm:"not null" json:"quantity"`                          // unit count
	PromotionID    *uint          `gorm:"index" json:"promotion_id,omitempty"`               // attached promotion
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                  // attached coupon
	RecipientName  string         `gorm:"type:varchar(120)" json:"recipient_name,omitempty"` // delivery recipient
	RecipientEmail string         `gorm:"type:varchar(255)" json:"recipient_email,omitempty"`
	RecipientPhone string         `gorm:"type:varchar(20)" json:"recipient_phone,omitempty"`
	GiftMessage    string         `gorm:"type:text" json:"gift_message,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"` // created at
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"` // updated at
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`          // soft delete

	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`     // attached product
	Promotion *Promotion `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"` // attached promotion
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
