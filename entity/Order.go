package entity

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Description    string         `gorm:"not null" json:"description"`
	Specifications datatypes.JSON `json:"specifications"`
	Quantity       int            `json:"quantity"`
	Status         OrderStatus    `gorm:"not null;default:REVIEW" json:"status"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload เฉพาะตอนต้องการ user detail

	// ทุก order มีห้องแชทคู่กันเสมอ (1:1)
	ChatRoom *ChatRoom `gorm:"foreignKey:OrderID;references:ID" json:"chatRoom,omitempty"`
}
