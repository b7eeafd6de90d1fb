package services

import (
	"testing"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func Test_CreateOrder_Opens_ChatRoom(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	user := env.seedUser(t, "alice@example.com", entity.RoleUser)

	out, err := env.orderSvc.Create(user.ID, &CreateOrderReq{
		Description:    "3d printed bracket",
		Specifications: datatypes.JSON([]byte(`{"material":"PETG","color":"black"}`)),
		Quantity:       5,
	})
	req.NoError(err)
	req.Equal("Order was created successfully", out.Message)
	req.Equal(entity.StatusReview, out.Order.Status)
	req.Equal(user.ID, out.Order.UserID)

	// ห้องแชทต้องถูกสร้างคู่กันเสมอ และเปิดอยู่
	req.NotNil(out.Order.ChatRoom)
	req.Equal(out.Order.ID, out.Order.ChatRoom.OrderID)
	req.False(out.Order.ChatRoom.IsClosed)
	req.Nil(out.Order.ChatRoom.Summary)

	room, err := env.chats.FindRoomByOrderID(out.Order.ID)
	req.NoError(err)
	req.Equal(out.Order.ChatRoom.ID, room.ID)
}

func Test_CreateOrder_Unknown_User(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	_, err := env.orderSvc.Create(999, &CreateOrderReq{Description: "ghost order", Quantity: 1})
	req.Error(err)
	req.True(apperr.IsNotFound(err))

	// ไม่มี partial write หลุดมา
	var count int64
	req.NoError(env.db.Model(&entity.Order{}).Count(&count).Error)
	req.Zero(count)
}

func Test_UpdateStatus_Always_Completes(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	user := env.seedUser(t, "bob@example.com", entity.RoleUser)
	order := env.seedOrder(t, user.ID)

	// จาก REVIEW ตรงไป COMPLETED ได้เลย
	updated, err := env.orderSvc.UpdateStatus(order.ID)
	req.NoError(err)
	req.Equal(entity.StatusCompleted, updated.Status)

	// เรียกซ้ำได้ผลเดิม (idempotent)
	updated, err = env.orderSvc.UpdateStatus(order.ID)
	req.NoError(err)
	req.Equal(entity.StatusCompleted, updated.Status)
}

func Test_UpdateStatus_Unknown_Order(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	_, err := env.orderSvc.UpdateStatus(12345)
	req.Error(err)
	req.True(apperr.IsNotFound(err))
}

func Test_ListForUser_Returns_Own_Orders_Only(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice@example.com", entity.RoleUser)
	bob := env.seedUser(t, "bob@example.com", entity.RoleUser)

	env.seedOrder(t, alice.ID)
	env.seedOrder(t, alice.ID)
	env.seedOrder(t, bob.ID)

	orders, err := env.orderSvc.ListForUser(alice.ID, 50)
	req.NoError(err)
	req.Len(orders, 2)
	for _, o := range orders {
		req.Equal(alice.ID, o.UserID)
	}
}
