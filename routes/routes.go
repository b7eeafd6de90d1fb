package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL())
	orderSvc := services.NewOrderService(db, orderRepo, userRepo, chatRepo)
	chatSvc := services.NewChatService(db, chatRepo, userRepo, orderRepo)

	// WS hub (ทำหน้าที่ notifier ให้ chat service ด้วย)
	hub := ws.NewChatHub(chatSvc)
	chatSvc.SetNotifier(hub)
	go hub.Run()

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	chatCtrl := controllers.NewChatController(chatSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
	}
	a.POST("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin), authCtrl.CreateAdmin)

	// Orders
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders", orderCtrl.ListForMe)
	}
	r.PATCH("/orders/:id/status", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin), orderCtrl.UpdateStatus)

	// Chats
	chats := r.Group("/chats", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		chats.POST("/:id/messages", chatCtrl.SendMessage)
		chats.GET("/:id/history", chatCtrl.History)
	}
	r.POST("/chats/:id/close", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin), chatCtrl.Close)

	// WebSocket
	r.GET("/ws/chat/:roomId", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
