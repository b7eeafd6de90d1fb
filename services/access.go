package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

// นโยบายเดียว: admin เข้าได้ทุกห้อง, user เข้าได้เฉพาะห้องของ order ตัวเอง
// ทั้ง CanAccessRoom และ RequireRoomAccess ต้องใช้ฟังก์ชันนี้เท่านั้น
func (s *ChatService) roomAccess(userID, chatRoomID uint) (bool, error) {
	room, err := s.repo.FindRoomByID(chatRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("chat room not found")
		}
		return false, err
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("user not found")
		}
		return false, err
	}

	if user.Role == entity.RoleAdmin {
		return true, nil
	}
	return room.Order.UserID == userID, nil
}

// CanAccessRoom ใช้ตอนส่งข้อความ / join ห้องทาง ws
func (s *ChatService) CanAccessRoom(userID, chatRoomID uint) (bool, error) {
	return s.roomAccess(userID, chatRoomID)
}

// RequireRoomAccess แปลง deny เป็น Forbidden (ใช้ตอนอ่าน history)
func (s *ChatService) RequireRoomAccess(userID, chatRoomID uint) error {
	ok, err := s.roomAccess(userID, chatRoomID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("you do not have access to this chat room")
	}
	return nil
}
