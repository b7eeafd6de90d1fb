package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db}
}

// สร้างห้องแชทใหม่ (เชื่อมกับ order) ใน transaction เดียวกับออเดอร์
func (r *ChatRepository) CreateRoom(tx *gorm.DB, room *entity.ChatRoom) error {
	return tx.Create(room).Error
}

func (r *ChatRepository) FindRoomByID(id uint) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := r.db.Preload("Order").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepository) FindRoomByOrderID(orderID uint) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := r.db.Where("order_id = ?", orderID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ปิดห้อง + บันทึก summary (service คุม transaction)
// guard ที่ is_closed = false กันปิดซ้ำ; affected = 0 แปลว่าห้องปิดไปแล้ว
func (r *ChatRepository) CloseRoom(tx *gorm.DB, id uint, summary string) (int64, error) {
	res := tx.Model(&entity.ChatRoom{}).
		Where("id = ? AND is_closed = ?", id, false).
		Updates(map[string]any{"is_closed": true, "summary": summary})
	return res.RowsAffected, res.Error
}

// ดึงข้อความในห้อง เรียงตามเวลาที่สร้าง
func (r *ChatRepository) FindMessagesByRoom(roomID uint) ([]entity.Message, error) {
	var msgs []entity.Message
	err := r.db.
		Preload("User").
		Where("chat_room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

// ส่งข้อความใหม่
func (r *ChatRepository) CreateMessage(msg *entity.Message) error {
	return r.db.Create(msg).Error
}

// โหลดข้อความพร้อมโปรไฟล์ผู้ส่ง
func (r *ChatRepository) FindMessageByID(id uint) (*entity.Message, error) {
	var msg entity.Message
	if err := r.db.Preload("User").First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
