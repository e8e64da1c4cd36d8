package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora-ai/savora/backend/internal/service"
	"github.com/savora-ai/savora/backend/internal/types"
)

// ChatService manages recipe-scoped chat sessions.
type ChatService interface {
	Start(ctx context.Context, recipe types.Recipe) (*service.ChatSession, error)
	Get(ctx context.Context, id string) (*service.ChatSession, error)
	Send(ctx context.Context, id, text string) (*service.ChatSession, error)
	Close(ctx context.Context, id string) error
}

// ChatHandler exposes recipe-scoped chat sessions.
type ChatHandler struct {
	chatService ChatService
}

func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.POST("/sessions", h.StartSession)
		chat.GET("/sessions/:id", h.GetSession)
		chat.POST("/sessions/:id/messages", h.SendMessage)
		chat.DELETE("/sessions/:id", h.CloseSession)
	}
}

// chatView renders the transcript for the client, pre-rendering the inline
// markup in assistant turns.
func chatView(session *service.ChatSession) gin.H {
	turns := make([]gin.H, 0, len(session.Turns))
	for _, turn := range session.Turns {
		view := gin.H{"role": turn.Role, "text": turn.Text}
		if turn.Role == "assistant" {
			view["html"] = service.RenderMarkup(turn.Text)
		}
		turns = append(turns, view)
	}

	return gin.H{
		"session_id":    session.ID,
		"turns":         turns,
		"loading":       session.Loading,
		"quick_actions": session.QuickActions(),
	}
}

// StartSession opens a chat bound to one recipe.
func (h *ChatHandler) StartSession(c *gin.Context) {
	var req struct {
		RecipeContext types.Recipe `json:"recipeContext"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.chatService.Start(c.Request.Context(), req.RecipeContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start chat"})
		return
	}
	c.JSON(http.StatusCreated, chatView(session))
}

// GetSession returns the current transcript.
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chatService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatView(session))
}

// SendMessage appends a user turn and the assistant's reply. While a send
// is in flight further sends are refused, not queued.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.chatService.Send(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatView(session))
}

// CloseSession discards the session and its transcript.
func (h *ChatHandler) CloseSession(c *gin.Context) {
	if err := h.chatService.Close(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat closed"})
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
	case errors.Is(err, service.ErrChatBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "A reply is still on its way. Please wait for it."})
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must not be empty"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat unavailable"})
	}
}
