package entity

import (
	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	Content string `gorm:"not null" json:"content"`

	UserID uint `json:"userId"`
	User   User `json:"user"` // โปรไฟล์ผู้ส่ง (password ถูกซ่อนแล้วที่ User)

	ChatRoomID uint     `json:"chatRoomId"`
	ChatRoom   ChatRoom `json:"-"` // ซ่อนเพื่อเลี่ยง loop
}
