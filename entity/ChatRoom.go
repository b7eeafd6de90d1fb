package entity

import (
	"gorm.io/gorm"
)

type ChatRoom struct {
	gorm.Model
	OrderID  uint    `gorm:"uniqueIndex;not null" json:"orderId"`
	IsClosed bool    `gorm:"not null;default:false" json:"isClosed"`
	Summary  *string `json:"summary"`

	Order Order `json:"-"`

	// preload messages เฉพาะ endpoint ที่ต้องการ (เช่น /chats/:id/history)
	Messages []Message `gorm:"foreignKey:ChatRoomID;references:ID" json:"-"`
}
