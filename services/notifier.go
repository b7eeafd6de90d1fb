package services

import "backend/entity"

// Notifier คือช่องทาง push ไปหา client ที่ต่อ ws อยู่
// ส่งหลัง commit เท่านั้น และเป็น best-effort (ไม่กระทบ durability)
type Notifier interface {
	MessageCreated(roomID uint, msg *entity.Message)
	RoomClosed(roomID uint)
}
