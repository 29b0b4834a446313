package models

import "time"

// LedgerEntry records a money movement against an order. Every order
// created with cash owed gets a gateway debit, every coupon applied
// gets a coupon credit.
type LedgerEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                 // primary key
	UserID      uint      `gorm:"index;not null" json:"user_id"`                        // buyer
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                       // owning order
	GUID        string    `gorm:"index" json:"guid"`                                    // order GUID, -COUPON suffix for credits
	Source      string    `gorm:"type:varchar(20);not null" json:"source"`              // gateway / coupon
	Type        string    `gorm:"type:varchar(10);not null" json:"type"`                // debit / credit
	Amount      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`  // movement amount
	Status      string    `gorm:"type:varchar(20);index;not null" json:"status"`        // initiated / completed
	Description string    `gorm:"type:varchar(255)" json:"description,omitempty"`       // human-readable note
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                              // created at
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                              // updated at
}

// TableName sets the table name.
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
