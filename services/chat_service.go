package services

import (
	"errors"
	"log/slog"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type ChatService struct {
	DB       *gorm.DB
	repo     *repository.ChatRepository
	users    *repository.UserRepository
	orders   *repository.OrderRepository
	notifier Notifier
}

func NewChatService(
	db *gorm.DB,
	repo *repository.ChatRepository,
	users *repository.UserRepository,
	orders *repository.OrderRepository,
) *ChatService {
	return &ChatService{DB: db, repo: repo, users: users, orders: orders}
}

// SetNotifier ต่อ hub เข้ากับ service หลังสร้างทั้งคู่แล้ว (แก้ init cycle)
func (s *ChatService) SetNotifier(n Notifier) { s.notifier = n }

// ----- Messages -----

// CreateMessage เพิ่มข้อความลงห้อง (ห้องต้องมีจริงและยังไม่ปิด)
func (s *ChatService) CreateMessage(userID, chatRoomID uint, content string) (*entity.Message, error) {
	room, err := s.repo.FindRoomByID(chatRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chat room not found")
		}
		return nil, err
	}
	if room.IsClosed {
		return nil, apperr.Forbidden("chat room is closed")
	}

	msg := &entity.Message{
		Content:    content,
		UserID:     userID,
		ChatRoomID: chatRoomID,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}

	// โหลดโปรไฟล์ผู้ส่งกลับไปให้ FE แสดงผล
	msg, err = s.repo.FindMessageByID(msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MessageCreated(chatRoomID, msg)
	}
	return msg, nil
}

func (s *ChatService) MessagesForRoom(roomID uint) ([]entity.Message, error) {
	return s.repo.FindMessagesByRoom(roomID)
}

// ----- Room lifecycle -----

// CloseChatRoom ปิดห้อง + ดันออเดอร์เป็น PROCESSING ใน transaction เดียว
// ห้องที่ปิดแล้วปิดซ้ำไม่ได้ (กัน summary โดนเขียนทับ)
func (s *ChatService) CloseChatRoom(chatRoomID uint, summary string) (string, error) {
	room, err := s.repo.FindRoomByID(chatRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("chat room not found")
		}
		return "", err
	}

	// เช็คปิดซ้ำใน transaction เดียวกับ write (สอง close ชนกันต้องแพ้หนึ่ง)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.CloseRoom(tx, chatRoomID, summary)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict("chat room is already closed")
		}
		return s.orders.UpdateStatus(tx, room.OrderID, entity.StatusProcessing)
	})
	if err != nil {
		return "", err
	}

	slog.Info("chat room closed", "roomId", chatRoomID, "orderId", room.OrderID)
	if s.notifier != nil {
		s.notifier.RoomClosed(chatRoomID)
	}
	return "Chat has been closed", nil
}

func (s *ChatService) RoomByID(roomID uint) (*entity.ChatRoom, error) {
	room, err := s.repo.FindRoomByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chat room not found")
		}
		return nil, err
	}
	return room, nil
}

func (s *ChatService) RoomByOrderID(orderID uint) (*entity.ChatRoom, error) {
	room, err := s.repo.FindRoomByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chat room not found")
		}
		return nil, err
	}
	return room, nil
}

// ----- Summary read model -----

type ChatOrderOut struct {
	ID          uint               `json:"id"`
	Description string             `json:"description"`
	Status      entity.OrderStatus `json:"status"`
}

type ChatAuthorOut struct {
	ID uint `json:"id"`
}

type ChatMessageOut struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	User      ChatAuthorOut `json:"user"`
}

type ChatSummary struct {
	ID       uint             `json:"id"`
	OrderID  uint             `json:"orderId"`
	IsClosed bool             `json:"isClosed"`
	Summary  *string          `json:"summary"`
	Order    ChatOrderOut     `json:"order"`
	Messages []ChatMessageOut `json:"messages"`
}

// GetChatSummary ประกอบ read model ของห้อง (ต้องเป็นเจ้าของ order หรือ admin)
func (s *ChatService) GetChatSummary(userID, chatRoomID uint) (*ChatSummary, error) {
	if err := s.RequireRoomAccess(userID, chatRoomID); err != nil {
		return nil, err
	}

	room, err := s.repo.FindRoomByID(chatRoomID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.FindMessagesByRoom(chatRoomID)
	if err != nil {
		return nil, err
	}

	return &ChatSummary{
		ID:       room.ID,
		OrderID:  room.OrderID,
		IsClosed: room.IsClosed,
		Summary:  room.Summary,
		Order: ChatOrderOut{
			ID:          room.Order.ID,
			Description: room.Order.Description,
			Status:      room.Order.Status,
		},
		Messages: lo.Map(msgs, func(m entity.Message, _ int) ChatMessageOut {
			return ChatMessageOut{
				ID:        m.ID,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
				User:      ChatAuthorOut{ID: m.UserID},
			}
		}),
	}, nil
}
