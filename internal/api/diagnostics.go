package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora-ai/savora/backend/internal/store"
	"github.com/savora-ai/savora/backend/internal/types"
)

// DiagnosticsHandler probes store connectivity with a write-then-delete
// round trip against the user's diagnostics collection. It is not part of
// the functional surface; the frontend's settings page calls it when a
// user reports sync trouble.
type DiagnosticsHandler struct {
	store store.DocumentStore
}

func NewDiagnosticsHandler(documentStore store.DocumentStore) *DiagnosticsHandler {
	return &DiagnosticsHandler{store: documentStore}
}

// RegisterRoutes registers the diagnostics route
func (h *DiagnosticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/diagnostics/store", h.ProbeStore)
}

// ProbeStore writes, reads back, and deletes a probe document.
func (h *DiagnosticsHandler) ProbeStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	path := store.DiagnosticsPath(userID)

	id, err := h.store.AddDocument(ctx, path, types.Entry{
		Recipe: types.FreeformRecipe("store connectivity probe"),
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "stage": "write"})
		return
	}

	if _, err := h.store.GetDocuments(ctx, path, nil); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "stage": "read"})
		return
	}

	if err := h.store.DeleteDocument(ctx, path, id); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "stage": "delete"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
