package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/controllers"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/middleware"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	bookController *controllers.BookController,
	eventController *controllers.EventController,
	chatController *controllers.ChatController,
	transactionController *controllers.TransactionController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	authRateLimiter gin.HandlerFunc,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	if authRateLimiter != nil {
		auth.Use(authRateLimiter)
	}
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		users := authenticated.Group("/users")
		{
			users.PUT("/me", userController.UpdateProfile)
			users.GET("/:id", userController.GetUser)
		}

		books := authenticated.Group("/books")
		{
			books.GET("", bookController.Search)
			books.GET("/:id", bookController.Get)
			books.POST("", bookController.Create)
			books.PUT("/:id", bookController.Update)
			books.DELETE("/:id", bookController.Delete)
		}

		events := authenticated.Group("/events")
		{
			events.GET("", eventController.List)
			events.GET("/:id", eventController.Get)
			events.POST("", eventController.Create)
			events.PUT("/:id", eventController.Update)
			events.DELETE("/:id", eventController.Delete)
			events.POST("/:id/rsvp", eventController.RSVP)
		}

		chats := authenticated.Group("/chats")
		{
			chats.GET("", chatController.List)
			chats.GET("/resolve", chatController.Resolve)
			chats.POST("", chatController.Create)
			chats.GET("/:id", chatController.Get)
			chats.POST("/:id/open", chatController.Open)
			chats.GET("/:id/messages", chatController.ListMessages)
			chats.POST("/:id/messages", chatController.SendMessage)
		}
		authenticated.POST("/messages/:id/read", chatController.MarkMessageRead)

		transactions := authenticated.Group("/transactions")
		{
			transactions.GET("", transactionController.List)
			transactions.GET("/:id", transactionController.Get)
			transactions.POST("", transactionController.Create)
			transactions.PUT("/:id", transactionController.Update)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", userController.ListNotifications)
			notifications.GET("/unread-count", userController.UnreadNotificationCount)
			notifications.POST("/:id/read", userController.MarkNotificationRead)
			notifications.POST("/read-all", userController.MarkAllNotificationsRead)
		}

		authenticated.POST("/reports", adminController.CreateReport)

		authenticated.GET("/ws", wsHandler.HandleConnection)

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/stats", adminController.Stats)
			admin.GET("/users", adminController.ListUsers)
			admin.GET("/users/pending", adminController.PendingUsers)
			admin.POST("/users/:id/approve", adminController.ApproveUser)
			admin.POST("/users/:id/suspend", adminController.SuspendUser)
			admin.POST("/events/:id/approve", eventController.Approve)
			admin.GET("/reports", adminController.ListReports)
			admin.POST("/reports/:id/resolve", adminController.ResolveReport)
			admin.POST("/notifications", adminController.CreateNotification)
		}
	}
}
