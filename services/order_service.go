package services

import (
	"errors"
	"log/slog"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	UserRepo *repository.UserRepository
	ChatRepo *repository.ChatRepository
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	userRepo *repository.UserRepository,
	chatRepo *repository.ChatRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, UserRepo: userRepo, ChatRepo: chatRepo}
}

// ----- DTOs from Controller -----
type CreateOrderReq struct {
	Description    string         `json:"description" binding:"required"`
	Specifications datatypes.JSON `json:"specifications"`
	Quantity       int            `json:"quantity" binding:"gte=0"`
}

type CreateOrderRes struct {
	Message string       `json:"message"`
	Order   entity.Order `json:"order"`
}

// ----- Create -----
// สร้างออเดอร์ + ห้องแชทคู่กันใน transaction เดียว (ต้องสำเร็จทั้งคู่)
func (s *OrderService) Create(userID uint, req *CreateOrderReq) (*CreateOrderRes, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	order := entity.Order{
		Description:    req.Description,
		Specifications: req.Specifications,
		Quantity:       req.Quantity,
		Status:         entity.StatusReview,
		UserID:         userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		room := entity.ChatRoom{OrderID: order.ID}
		if err := s.ChatRepo.CreateRoom(tx, &room); err != nil {
			return err
		}
		order.ChatRoom = &room
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("order created", "orderId", order.ID, "userId", userID)
	return &CreateOrderRes{Message: "Order was created successfully", Order: order}, nil
}

// ----- List -----
func (s *OrderService) ListForUser(userID uint, limit int) ([]entity.Order, error) {
	return s.Repo.ListForUser(userID, limit)
}

// ----- Status -----
// ตั้งสถานะเป็น COMPLETED เสมอ ไม่สน status เดิม (idempotent, route เป็น admin-only)
func (s *OrderService) UpdateStatus(orderID uint) (*entity.Order, error) {
	if _, err := s.Repo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	if err := s.Repo.UpdateStatus(s.DB, orderID, entity.StatusCompleted); err != nil {
		return nil, err
	}

	order, err := s.Repo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	slog.Info("order status updated", "orderId", orderID, "status", order.Status)
	return order, nil
}
