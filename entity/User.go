package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     Role   `gorm:"not null;default:USER" json:"role"`

	// preload เฉพาะตอนจำเป็น
	Orders       []Order   `json:"-"`
	MessagesSent []Message `gorm:"foreignKey:UserID" json:"-"`
}
