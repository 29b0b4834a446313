package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a buyer account.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`                           // primary key
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`              // login email
	Name      string         `gorm:"type:varchar(120)" json:"name,omitempty"`        // display name
	Mobile    string         `gorm:"type:varchar(20);index" json:"mobile,omitempty"` // contact number
	Status    string         `gorm:"default:'active'" json:"status"`                 // account status
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                        // created at
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                        // updated at
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                 // soft delete
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
