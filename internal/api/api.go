package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/savora-ai/savora/backend/internal/service"
)

// HealthHandler reports service status and provider configuration.
type HealthHandler struct {
	llm *service.LLMService
}

func NewHealthHandler(llm *service.LLMService) *HealthHandler {
	return &HealthHandler{llm: llm}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	model := ""
	configured := false
	if h.llm != nil {
		model = h.llm.Model()
		configured = h.llm.Configured()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"api_configured": configured,
		"model":          model,
	})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}
