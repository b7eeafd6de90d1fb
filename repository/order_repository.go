package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// สร้างออเดอร์ใน transaction ที่ service คุม
func (r *OrderRepository) Create(tx *gorm.DB, order *entity.Order) error {
	return tx.Create(order).Error
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.DB.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByIDWithRoom(id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.DB.Preload("ChatRoom").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ออเดอร์ทั้งหมดของ user (ล่าสุดก่อน)
func (r *OrderRepository) ListForUser(userID uint, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Preload("ChatRoom").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&orders).Error
	return orders, err
}

// อัปเดตสถานะออเดอร์ (ใช้ได้ทั้งใน/นอก transaction)
func (r *OrderRepository) UpdateStatus(tx *gorm.DB, id uint, status entity.OrderStatus) error {
	return tx.Model(&entity.Order{}).Where("id = ?", id).Update("status", status).Error
}
