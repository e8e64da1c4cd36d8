package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora-ai/savora/backend/internal/service"
	"github.com/savora-ai/savora/backend/internal/types"
	"github.com/savora-ai/savora/backend/internal/wizard"
)

// WizardService drives persisted wizard sessions.
type WizardService interface {
	Start(ctx context.Context) (*service.WizardSession, error)
	Get(ctx context.Context, id string) (*service.WizardSession, error)
	SetField(ctx context.Context, id, value string) (*service.WizardSession, error)
	Advance(ctx context.Context, id string) (*service.WizardSession, *types.CustomizationRequest, bool, error)
	Retreat(ctx context.Context, id string) (*service.WizardSession, error)
}

// WizardHandler drives the customization wizard over HTTP. Session state
// lives server-side; the client only ever sees the current step and its
// progress.
type WizardHandler struct {
	wizardService WizardService
}

func NewWizardHandler(wizardService WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

// RegisterRoutes registers the wizard routes
func (h *WizardHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/wizard")
	{
		sessions.POST("", h.Start)
		sessions.GET("/:id", h.Get)
		sessions.PUT("/:id/field", h.SetField)
		sessions.POST("/:id/advance", h.Advance)
		sessions.POST("/:id/back", h.Retreat)
	}
}

// wizardView is the step snapshot returned for every wizard call.
func wizardView(session *service.WizardSession) gin.H {
	step := wizard.Steps[session.Step-1]
	return gin.H{
		"session_id":  session.ID,
		"step":        session.Step,
		"total_steps": wizard.TotalSteps(),
		"progress":    float64(session.Step) / float64(wizard.TotalSteps()),
		"question":    step,
		"value":       session.Request.Field(step.Field),
	}
}

// Start opens a fresh wizard session.
func (h *WizardHandler) Start(c *gin.Context) {
	session, err := h.wizardService.Start(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start wizard"})
		return
	}
	c.JSON(http.StatusCreated, wizardView(session))
}

// Get returns the current step of a session.
func (h *WizardHandler) Get(c *gin.Context) {
	session, err := h.wizardService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardView(session))
}

// SetField overwrites the current step's field value.
func (h *WizardHandler) SetField(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.wizardService.SetField(c.Request.Context(), c.Param("id"), req.Value)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardView(session))
}

// Advance moves to the next step. On the terminal step the completed
// request is returned and the session is gone; the client hands the request
// to the generate endpoint. A refused advance reports advanced:false with
// the unchanged step.
func (h *WizardHandler) Advance(c *gin.Context) {
	session, completed, advanced, err := h.wizardService.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}

	if completed != nil {
		c.JSON(http.StatusOK, gin.H{
			"advanced":  true,
			"submitted": true,
			"request":   completed,
		})
		return
	}

	view := wizardView(session)
	view["advanced"] = advanced
	view["submitted"] = false
	c.JSON(http.StatusOK, view)
}

// Retreat moves one step back.
func (h *WizardHandler) Retreat(c *gin.Context) {
	session, err := h.wizardService.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardView(session))
}

func respondWizardError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Wizard session unavailable"})
}
