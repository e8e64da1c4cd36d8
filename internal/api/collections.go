package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/savora-ai/savora/backend/internal/store"
	"github.com/savora-ai/savora/backend/internal/types"
)

// CollectionService loads a user's persisted collections for display.
type CollectionService interface {
	Load(ctx context.Context, userID uuid.UUID, collection string) []types.Entry
}

// FavoriteService mutates a user's favorites collection.
type FavoriteService interface {
	Add(ctx context.Context, userID uuid.UUID, recipe types.Recipe, filters types.CustomizationRequest) (uuid.UUID, error)
	Remove(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

// CollectionHandler serves the history and favorites views and the
// favorite write path. All routes require an authenticated user.
type CollectionHandler struct {
	collections CollectionService
	favorites   FavoriteService
}

func NewCollectionHandler(collections CollectionService, favorites FavoriteService) *CollectionHandler {
	return &CollectionHandler{collections: collections, favorites: favorites}
}

// RegisterRoutes registers the collection routes
func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/history", h.ListHistory)
	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:id", h.RemoveFavorite)
	}
}

// entryView decorates an entry with its derived display date so every view
// shows the same date the sort used.
func entryView(entry types.Entry) gin.H {
	return gin.H{
		"id":          entry.ID,
		"recipe":      entry.Recipe,
		"filters":     entry.Filters,
		"createdAt":   entry.CreatedAt,
		"displayDate": entry.DisplayDate(),
	}
}

func collectionResponse(entries []types.Entry) gin.H {
	views := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		views = append(views, entryView(entry))
	}
	return gin.H{"entries": views, "count": len(views)}
}

// ListHistory returns the user's generated recipes, newest first.
func (h *CollectionHandler) ListHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entries := h.collections.Load(c.Request.Context(), userID, store.CollectionHistory)
	c.JSON(http.StatusOK, collectionResponse(entries))
}

// ListFavorites returns the user's saved recipes, newest first.
func (h *CollectionHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entries := h.collections.Load(c.Request.Context(), userID, store.CollectionFavorites)
	c.JSON(http.StatusOK, collectionResponse(entries))
}

// AddFavorite saves a recipe to the favorites collection.
func (h *CollectionHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req struct {
		Recipe  types.Recipe               `json:"recipe"`
		Filters types.CustomizationRequest `json:"filters"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.favorites.Add(c.Request.Context(), userID, req.Recipe, req.Filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// RemoveFavorite deletes one favorite. The client confirms with the user
// before calling; repeating the call for a gone id still succeeds.
func (h *CollectionHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid favorite id"})
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}
