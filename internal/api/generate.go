package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/savora-ai/savora/backend/internal/service"
	"github.com/savora-ai/savora/backend/internal/types"
)

// User-facing generation failure messages. Provider error details stay in
// the logs.
const (
	msgGenerationRejected    = "The kitchen couldn't come up with a recipe for that. Please adjust your ingredients and try again."
	msgGenerationUnreachable = "The recipe service is unreachable right now. Please try again in a moment."
)

// RecipeGenerator is the slice of the model client generation needs.
type RecipeGenerator interface {
	Generate(ctx context.Context, req types.CustomizationRequest) (types.Recipe, error)
}

// HistoryRecorder appends generated recipes to a user's history.
type HistoryRecorder interface {
	RecordGeneration(ctx context.Context, userID uuid.UUID, recipe types.Recipe, filters types.CustomizationRequest) (uuid.UUID, error)
}

// GenerateHandler turns a completed customization request into a recipe and
// records it in the user's history.
type GenerateHandler struct {
	llm         RecipeGenerator
	collections HistoryRecorder
}

func NewGenerateHandler(llm RecipeGenerator, collections HistoryRecorder) *GenerateHandler {
	return &GenerateHandler{llm: llm, collections: collections}
}

// RegisterRoutes registers the generation route
func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate", h.Generate)
}

// Generate validates the request, asks the model for a recipe, and appends
// a history entry for signed-in users. Empty ingredients never reach the
// model.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req types.CustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	req = req.WithDefaults()
	if !req.HasIngredients() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please enter at least one ingredient."})
		return
	}

	recipe, err := h.llm.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrGenerationRejected) {
			log.Printf("generation rejected: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": msgGenerationRejected})
			return
		}
		log.Printf("generation transport error: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": msgGenerationUnreachable})
		return
	}

	response := gin.H{
		"success": true,
		"recipe":  recipe,
		"format":  recipe.Format,
	}

	if userID, ok := currentUserID(c); ok {
		if id, err := h.collections.RecordGeneration(c.Request.Context(), userID, recipe, req); err != nil {
			// A failed history write never blocks the recipe itself.
			log.Printf("failed to record history for user %s: %v", userID, err)
		} else {
			response["history_id"] = id
		}
	}

	c.JSON(http.StatusOK, response)
}
