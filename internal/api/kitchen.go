package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora-ai/savora/backend/internal/service"
)

// KitchenService is the slice of the model client the kitchen features use.
type KitchenService interface {
	Rescue(ctx context.Context, problem, dishType string) (string, error)
	Nutrition(ctx context.Context, subject string) (json.RawMessage, error)
	MealPlan(ctx context.Context, preferences, dietary string, peopleCount int) (json.RawMessage, error)
	SuggestIngredients(ctx context.Context, ingredients string) (json.RawMessage, error)
}

// KitchenHandler bundles the assistant's side features: dish rescue,
// nutrition analysis, meal planning and ingredient suggestions.
type KitchenHandler struct {
	llm KitchenService
}

func NewKitchenHandler(llm KitchenService) *KitchenHandler {
	return &KitchenHandler{llm: llm}
}

// RegisterRoutes registers the kitchen routes
func (h *KitchenHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/rescue", h.Rescue)
	router.POST("/nutrition", h.Nutrition)
	router.POST("/meal-plan", h.MealPlan)
	router.POST("/suggest-ingredients", h.SuggestIngredients)
}

func respondModelError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrGenerationRejected) {
		log.Printf("model rejected request: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": msgGenerationRejected})
		return
	}
	log.Printf("model unreachable: %v", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": msgGenerationUnreachable})
}

// Rescue suggests fixes for a cooking problem in progress.
func (h *KitchenHandler) Rescue(c *gin.Context) {
	var req struct {
		Problem  string `json:"problem" binding:"required"`
		DishType string `json:"dishType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please describe the problem."})
		return
	}

	solution, err := h.llm.Rescue(c.Request.Context(), req.Problem, req.DishType)
	if err != nil {
		respondModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "solution": solution})
}

// Nutrition analyzes a recipe or an ingredient list.
func (h *KitchenHandler) Nutrition(c *gin.Context) {
	var req struct {
		Recipe      json.RawMessage `json:"recipe"`
		Ingredients string          `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	subject := req.Ingredients
	if len(req.Recipe) > 0 {
		subject = string(req.Recipe)
	}
	if subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Provide a recipe or ingredients."})
		return
	}

	nutrition, err := h.llm.Nutrition(c.Request.Context(), subject)
	if err != nil {
		respondModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "nutrition": nutrition})
}

// MealPlan generates a 7-day meal plan.
func (h *KitchenHandler) MealPlan(c *gin.Context) {
	var req struct {
		Preferences string `json:"preferences"`
		Dietary     string `json:"dietary"`
		PeopleCount int    `json:"peopleCount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if req.Preferences == "" {
		req.Preferences = "balanced"
	}
	if req.Dietary == "" {
		req.Dietary = "none"
	}
	if req.PeopleCount <= 0 {
		req.PeopleCount = 2
	}

	plan, err := h.llm.MealPlan(c.Request.Context(), req.Preferences, req.Dietary, req.PeopleCount)
	if err != nil {
		respondModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mealPlan": plan})
}

// SuggestIngredients proposes complementary ingredients.
func (h *KitchenHandler) SuggestIngredients(c *gin.Context) {
	var req struct {
		Ingredients string `json:"ingredients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please provide your ingredients."})
		return
	}

	suggestions, err := h.llm.SuggestIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}
