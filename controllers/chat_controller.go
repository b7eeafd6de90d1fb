package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	service *services.ChatService
}

func NewChatController(s *services.ChatService) *ChatController {
	return &ChatController{service: s}
}

type SendMessageReq struct {
	Content string `json:"content" binding:"required"`
}

type CloseChatReq struct {
	Summary string `json:"summary" binding:"required"`
}

// POST /chats/:id/messages
func (cc *ChatController) SendMessage(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid chat room id")
		return
	}
	uid := utils.CurrentUserID(c)

	var req SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// ตรวจสิทธิ์ก่อนค่อยเขียน
	ok, err := cc.service.CanAccessRoom(uid, uint(roomID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if !ok {
		resp.Forbidden(c, "you do not have access to this chat room")
		return
	}

	msg, err := cc.service.CreateMessage(uid, uint(roomID), req.Content)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, msg)
}

// GET /chats/:id/history
func (cc *ChatController) History(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid chat room id")
		return
	}
	uid := utils.CurrentUserID(c)

	summary, err := cc.service.GetChatSummary(uid, uint(roomID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, summary)
}

// POST /chats/:id/close (admin only)
func (cc *ChatController) Close(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid chat room id")
		return
	}

	var req CloseChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	message, err := cc.service.CloseChatRoom(uint(roomID), req.Summary)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": message})
}
