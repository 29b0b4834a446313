package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is an order header. GUID is assigned after the row id exists,
// inside the same transaction that creates the header.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // primary key
	GUID           string         `gorm:"uniqueIndex" json:"guid"`                                       // public order id
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                 // buyer
	Status         string         `gorm:"index;not null" json:"status"`                                  // initiated / verified / completed / failed
	DisplayChannel string         `gorm:"type:varchar(20);not null;default:'all'" json:"display_channel"` // ordering channel
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // applied coupon
	NominalTotal   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"nominal_total"`    // sum of unit price x quantity
	CouponTotal    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"coupon_total"`     // coupon discount applied
	PromotionTotal Money          `gorm:"type:decimal(20,2);not null;default:0" json:"promotion_total"`  // promotion discount applied
	AmountDue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount_due"`       // cash owed after discounts
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                   // placing client IP
	UTMSource      string         `gorm:"type:varchar(120)" json:"utm_source,omitempty"`                 // acquisition tag
	WhatsAppOptIn  bool           `gorm:"not null;default:false" json:"whatsapp_opt_in"`                 // delivery notification opt-in
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // created at
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // updated at
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // soft delete

	Lines  []OrderLine   `gorm:"foreignKey:OrderID" json:"lines,omitempty"`  // order lines
	Ledger []LedgerEntry `gorm:"foreignKey:OrderID" json:"ledger,omitempty"` // money movements
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
