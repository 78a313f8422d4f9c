package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/middleware"
)

// ChatController handles conversations and messages
type ChatController struct {
	chatService *services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// List returns the session user's conversations
// @Summary List chats
// @Description Returns the caller's conversations, most recent activity first
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Chat} "Conversations"
// @Router /chats [get]
func (c *ChatController) List(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	chats, err := c.chatService.List(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: chats, Timestamp: time.Now()})
}

// Resolve looks up the conversation for a scope without creating one
// @Summary Resolve a chat by scope
// @Description Keyed lookup of the conversation for a book, event or direct pairing. 404 when none exists yet.
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param bookId query int false "Book scope"
// @Param eventId query int false "Event scope"
// @Param otherUserId query int false "Direct counterpart"
// @Success 200 {object} dto.APIResponse{data=models.Chat} "The conversation"
// @Failure 404 {object} dto.ErrorResponse "No conversation for this scope"
// @Router /chats/resolve [get]
func (c *ChatController) Resolve(ctx *gin.Context) {
	var q dto.ResolveChatQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resolve parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	chat, err := c.chatService.Resolve(ctx, userID, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: chat, Timestamp: time.Now()})
}

// Create opens a conversation or returns the existing one for the scope
// @Summary Open a chat
// @Description Creates the conversation for a scope, or hands back the existing one. Concurrent creates converge on the same chat.
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChatRequest true "Chat scope"
// @Success 201 {object} dto.APIResponse{data=models.Chat} "The conversation"
// @Failure 400 {object} dto.ErrorResponse "Invalid scope"
// @Router /chats [post]
func (c *ChatController) Create(ctx *gin.Context) {
	var req dto.CreateChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid chat data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	chat, err := c.chatService.Create(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: chat, Timestamp: time.Now()})
}

// Get returns one conversation
// @Summary Get a chat
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Success 200 {object} dto.APIResponse{data=models.Chat} "The conversation"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /chats/{id} [get]
func (c *ChatController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	chat, err := c.chatService.Get(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: chat, Timestamp: time.Now()})
}

// Open marks a conversation as read for the session user
// @Summary Open a chat
// @Description Resets the caller's unread counter for the conversation
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Success 200 {object} dto.APIResponse{data=models.Chat} "The conversation"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /chats/{id}/open [post]
func (c *ChatController) Open(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	chat, err := c.chatService.Open(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: chat, Timestamp: time.Now()})
}

// SendMessage appends a message to a conversation
// @Summary Send a message
// @Description Persists a message and fans it out to connected participants
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=models.Message} "The message"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /chats/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid message data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	message, err := c.chatService.SendMessage(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: message, Timestamp: time.Now()})
}

// ListMessages returns a page of message history
// @Summary List messages
// @Description Returns messages oldest first, optionally before a given message id
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Param before query int false "Only messages with a smaller id"
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=[]models.Message} "Message history"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Router /chats/{id}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var q dto.ListMessagesQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pagination parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	messages, err := c.chatService.ListMessages(ctx, userID, id, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: messages, Timestamp: time.Now()})
}

// MarkMessageRead flags a message as read
// @Summary Mark a message read
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked"
// @Failure 403 {object} dto.ErrorResponse "Not the receiver"
// @Router /messages/{id}/read [post]
func (c *ChatController) MarkMessageRead(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	if err := c.chatService.MarkMessageRead(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Message marked as read"},
		Timestamp: time.Now(),
	})
}
