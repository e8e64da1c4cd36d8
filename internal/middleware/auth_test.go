package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-ai/savora/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	token  string
	claims *types.TokenClaims
}

func (v *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token == v.token {
		return v.claims, nil
	}
	return nil, errors.New("invalid token")
}

// whoami echoes the resolved user, or "anonymous".
func whoami(c *gin.Context) {
	if userID, exists := c.Get("user_id"); exists {
		c.JSON(http.StatusOK, gin.H{"user_id": userID.(uuid.UUID).String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": "anonymous"})
}

func request(router *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{
		token:  "good-token",
		claims: &types.TokenClaims{UserID: userID, Email: "cook@example.com"},
	}

	router := gin.New()
	router.GET("/whoami", AuthMiddleware(validator), whoami)

	t.Run("valid token resolves the user", func(t *testing.T) {
		w := request(router, "Bearer good-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := request(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, header := range []string{"good-token", "Basic good-token", "Bearer a b"} {
			w := request(router, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		w := request(router, "Bearer bad-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{
		token:  "good-token",
		claims: &types.TokenClaims{UserID: userID, Email: "cook@example.com"},
	}

	router := gin.New()
	router.GET("/whoami", OptionalAuthMiddleware(validator), whoami)

	t.Run("valid token resolves the user", func(t *testing.T) {
		w := request(router, "Bearer good-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("no header stays anonymous", func(t *testing.T) {
		w := request(router, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("bad token stays anonymous instead of failing", func(t *testing.T) {
		w := request(router, "Bearer bad-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})
}
