package repository

import (
	"fmt"
	"strings"
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Order{}, &entity.ChatRoom{}, &entity.Message{},
	))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB) (*entity.User, *entity.ChatRoom) {
	t.Helper()
	user := &entity.User{Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	require.NoError(t, db.Create(user).Error)
	order := &entity.Order{Description: "test order", Quantity: 1, Status: entity.StatusReview, UserID: user.ID}
	require.NoError(t, db.Create(order).Error)
	room := &entity.ChatRoom{OrderID: order.ID}
	require.NoError(t, db.Create(room).Error)
	return user, room
}

func Test_Messages_Read_In_Insertion_Order(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repo := NewChatRepository(db)
	user, room := seedRoom(t, db)

	contents := []string{"one", "two", "three", "four"}
	for _, c := range contents {
		req.NoError(repo.CreateMessage(&entity.Message{
			Content: c, UserID: user.ID, ChatRoomID: room.ID,
		}))
	}

	msgs, err := repo.FindMessagesByRoom(room.ID)
	req.NoError(err)
	req.Len(msgs, len(contents))
	for i, c := range contents {
		req.Equal(c, msgs[i].Content)
		req.Equal(user.Email, msgs[i].User.Email)
	}
}

func Test_One_Room_Per_Order(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repo := NewChatRepository(db)
	_, room := seedRoom(t, db)

	// order_id มี unique index → ห้องที่สองของ order เดิมต้อง fail
	err := repo.CreateRoom(db, &entity.ChatRoom{OrderID: room.OrderID})
	req.Error(err)
}

func Test_CloseRoom_Persists_Summary(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repo := NewChatRepository(db)
	_, room := seedRoom(t, db)

	affected, err := repo.CloseRoom(db, room.ID, "all sorted")
	req.NoError(err)
	req.EqualValues(1, affected)

	got, err := repo.FindRoomByID(room.ID)
	req.NoError(err)
	req.True(got.IsClosed)
	req.NotNil(got.Summary)
	req.Equal("all sorted", *got.Summary)
}

// guard ต้องกันที่ตัว UPDATE เอง ไม่ใช่แค่ read ก่อนหน้า
func Test_CloseRoom_Guards_Reclose(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	repo := NewChatRepository(db)
	_, room := seedRoom(t, db)

	affected, err := repo.CloseRoom(db, room.ID, "first")
	req.NoError(err)
	req.EqualValues(1, affected)

	affected, err = repo.CloseRoom(db, room.ID, "second")
	req.NoError(err)
	req.Zero(affected)

	got, err := repo.FindRoomByID(room.ID)
	req.NoError(err)
	req.Equal("first", *got.Summary)
}
