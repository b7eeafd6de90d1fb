package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatHub คือศูนย์กลางของระบบแชทผ่าน WebSocket
// ทำหน้าที่เป็น Notifier ของ ChatService ด้วย (push หลัง commit, best-effort)
type ChatHub struct {
	clients    map[uint]map[*websocket.Conn]bool // roomID -> set of clients
	broadcast  chan Event
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	service    *services.ChatService
}

// Subscription = การสมัครสมาชิกห้อง (1 user ต่อ 1 connection)
// History ติดมากับ subscription เพื่อให้ Run เป็นคนส่ง (คนเขียน conn มีคนเดียว)
type Subscription struct {
	Conn    *websocket.Conn
	RoomID  uint
	UserID  uint
	History []entity.Message
}

// Event = ข้อความที่จะส่งกระจายให้ทุกคนในห้อง
type Event struct {
	RoomID uint   `json:"-"`
	Name   string `json:"event"`
	Data   any    `json:"data"`
}

func NewChatHub(service *services.ChatService) *ChatHub {
	return &ChatHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan Event),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		service:    service,
	}
}

// ----- services.Notifier -----

func (h *ChatHub) MessageCreated(roomID uint, msg *entity.Message) {
	h.broadcast <- Event{RoomID: roomID, Name: "newMessage", Data: msg}
}

func (h *ChatHub) RoomClosed(roomID uint) {
	h.broadcast <- Event{RoomID: roomID, Name: "chatClosed", Data: roomID}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *ChatHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RoomID] == nil {
				h.clients[sub.RoomID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RoomID][sub.Conn] = true
			// ส่ง history ให้ client ที่เพิ่ง join จาก loop นี้เท่านั้น
			// (gorilla อนุญาตให้เขียน conn ได้ทีละ goroutine)
			if err := sub.Conn.WriteJSON(Event{Name: "chatHistory", Data: sub.History}); err != nil {
				slog.Warn("ws history push error", "err", err)
				sub.Conn.Close()
				delete(h.clients[sub.RoomID], sub.Conn)
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RoomID][sub.Conn]; ok {
				delete(h.clients[sub.RoomID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.RoomID] {
				if err := conn.WriteJSON(ev); err != nil {
					slog.Warn("ws write error", "err", err)
					conn.Close()
					delete(h.clients[ev.RoomID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/chat/:roomId
func (h *ChatHub) HandleWebSocket(c *gin.Context) {
	roomID64, err := strconv.ParseUint(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	roomID := uint(roomID64)

	userID := utils.CurrentUserID(c)

	// ห้องต้องมีจริง + user ต้องมีสิทธิ์ (เจ้าของ order หรือ admin)
	ok, err := h.service.CanAccessRoom(userID, roomID)
	if err != nil {
		if apperr.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("ws upgrade error", "err", err)
		return
	}

	history, err := h.service.MessagesForRoom(roomID)
	if err != nil {
		slog.Warn("ws history load error", "err", err)
		history = nil
	}
	if history == nil {
		history = []entity.Message{}
	}

	sub := Subscription{Conn: conn, RoomID: roomID, UserID: userID, History: history}
	h.register <- sub

	go h.listenMessages(sub)
}

// listenMessages = ฟังข้อความใหม่จาก client ทาง WS
func (h *ChatHub) listenMessages(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		_, msgData, err := sub.Conn.ReadMessage()
		if err != nil {
			break
		}

		var payload struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(msgData, &payload); err != nil || payload.Content == "" {
			continue
		}

		// ใช้ user จาก JWT ไม่ใช่ FE
		// CreateMessage จะ broadcast ผ่าน hub เองหลัง commit
		if _, err := h.service.CreateMessage(sub.UserID, sub.RoomID, payload.Content); err != nil {
			slog.Warn("save msg error", "err", err)
			continue
		}
	}
}
