package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"backend/entity"
	"backend/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// in-memory DB แยกกันต่อ test (cache=shared เพราะ gorm เปิดหลาย connection)
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

type testEnv struct {
	db     *gorm.DB
	users  *repository.UserRepository
	orders *repository.OrderRepository
	chats  *repository.ChatRepository

	orderSvc *OrderService
	chatSvc  *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	chats := repository.NewChatRepository(db)
	return &testEnv{
		db:       db,
		users:    users,
		orders:   orders,
		chats:    chats,
		orderSvc: NewOrderService(db, orders, users, chats),
		chatSvc:  NewChatService(db, chats, users, orders),
	}
}

func (e *testEnv) seedUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Username: strings.Split(email, "@")[0], Email: email, Password: string(hash), Role: role}
	require.NoError(t, e.users.Create(u))
	return u
}

// สร้างออเดอร์ผ่าน service จริง เพื่อให้ได้ห้องแชทคู่กันเสมอ
func (e *testEnv) seedOrder(t *testing.T, userID uint) *entity.Order {
	t.Helper()
	out, err := e.orderSvc.Create(userID, &CreateOrderReq{Description: "custom build", Quantity: 1})
	require.NoError(t, err)
	return &out.Order
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []uint
	closed   []uint
}

func (f *fakeNotifier) MessageCreated(roomID uint, _ *entity.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, roomID)
}

func (f *fakeNotifier) RoomClosed(roomID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, roomID)
}
