package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderLine is a priced line inside an order. Bonus lines derived from
// combo promotions carry no CartItemID.
type OrderLine struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                            // primary key
	OrderID           uint           `gorm:"index;not null" json:"order_id"`                                  // owning order
	GUID              string         `gorm:"uniqueIndex" json:"guid"`                                         // public line id (orderGUID-N)
	OrderGUID         string         `gorm:"index" json:"order_guid"`                                         // owning order GUID
	CartItemID        *uint          `gorm:"index" json:"cart_item_id,omitempty"`                             // source cart line
	BrandID           uint           `gorm:"index;not null" json:"brand_id"`                                  // issuing brand
	ProductID         uint           `gorm:"index;not null" json:"product_id"`                                // product
	UnitPrice         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`         // nominal unit price
	Quantity          int            `gorm:"not null" json:"quantity"`                                        // unit count
	PromotionID       *uint          `gorm:"index" json:"promotion_id,omitempty"`                             // applied promotion
	PromotionDiscount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"promotion_discount"` // promotion share
	CouponDiscount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"coupon_discount"`    // coupon share
	AmountDue         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount_due"`         // cash owed for this line
	Bonus             bool           `gorm:"not null;default:false" json:"bonus"`                             // derived from a combo promotion
	FreeOffer         bool           `gorm:"not null;default:false" json:"free_offer"`                        // zero-cash giveaway line
	RecipientName     string         `gorm:"type:varchar(120)" json:"recipient_name,omitempty"`               // delivery recipient
	RecipientEmail    string         `gorm:"type:varchar(255)" json:"recipient_email,omitempty"`
	RecipientPhone    string         `gorm:"type:varchar(20)" json:"recipient_phone,omitempty"`
	GiftMessage       string         `gorm:"type:text" json:"gift_message,omitempty"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"` // created at
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"` // updated at
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`          // soft delete

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // product snapshot source
}

// TableName sets the table name.
func (OrderLine) TableName() string {
	return "order_lines"
}
