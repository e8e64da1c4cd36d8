package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-ai/savora/backend/internal/service"
	"github.com/savora-ai/savora/backend/internal/types"
)

// fakeChat keeps sessions in memory and answers every question with a
// canned reply.
type fakeChat struct {
	sessions map[string]*service.ChatSession
	reply    string
	sendErr  error
}

func newFakeChat(reply string) *fakeChat {
	return &fakeChat{sessions: map[string]*service.ChatSession{}, reply: reply}
}

func (f *fakeChat) Start(_ context.Context, recipe types.Recipe) (*service.ChatSession, error) {
	session := &service.ChatSession{
		ID:     uuid.New().String(),
		Recipe: recipe,
		Turns:  []types.ConversationTurn{{Role: "assistant", Text: service.Greeting}},
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeChat) Get(_ context.Context, id string) (*service.ChatSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeChat) Send(ctx context.Context, id, text string) (*service.ChatSession, error) {
	session, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	session.Turns = append(session.Turns,
		types.ConversationTurn{Role: "user", Text: text},
		types.ConversationTurn{Role: "assistant", Text: f.reply},
	)
	return session, nil
}

func (f *fakeChat) Close(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func chatRouter(svc ChatService) *gin.Engine {
	router := gin.New()
	NewChatHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func startChat(t *testing.T, router *gin.Engine) (string, map[string]any) {
	t.Helper()
	w := performRequest(router, http.MethodPost, "/api/v1/chat/sessions",
		map[string]any{"recipeContext": map[string]any{"title": "Laksa", "ingredients": []string{"noodles"}}})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	return body["session_id"].(string), body
}

func TestChatStartSeedsGreeting(t *testing.T) {
	router := chatRouter(newFakeChat("ok"))

	_, body := startChat(t, router)
	turns := body["turns"].([]any)
	require.Len(t, turns, 1)

	greeting := turns[0].(map[string]any)
	assert.Equal(t, "assistant", greeting["role"])
	assert.Equal(t, service.Greeting, greeting["text"])

	actions := body["quick_actions"].([]any)
	assert.Len(t, actions, 4)
	assert.Equal(t, false, body["loading"])
}

func TestChatSendRendersMarkup(t *testing.T) {
	router := chatRouter(newFakeChat("Use **fresh** basil.\nIt matters."))

	sessionID, _ := startChat(t, router)
	w := performRequest(router, http.MethodPost, "/api/v1/chat/sessions/"+sessionID+"/messages",
		map[string]string{"question": "Dried basil ok?"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	turns := body["turns"].([]any)
	require.Len(t, turns, 3)

	userTurn := turns[1].(map[string]any)
	assert.Equal(t, "user", userTurn["role"])
	assert.NotContains(t, userTurn, "html", "user turns are never rendered")

	reply := turns[2].(map[string]any)
	assert.Equal(t, "Use **fresh** basil.\nIt matters.", reply["text"])
	assert.Equal(t, "Use <strong>fresh</strong> basil.<br>It matters.", reply["html"])

	assert.Nil(t, body["quick_actions"], "quick actions are gone after the first message")
}

func TestChatErrorStatuses(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		router := chatRouter(newFakeChat("ok"))
		w := performRequest(router, http.MethodGet, "/api/v1/chat/sessions/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("busy session", func(t *testing.T) {
		fake := newFakeChat("ok")
		router := chatRouter(fake)
		sessionID, _ := startChat(t, router)

		fake.sendErr = service.ErrChatBusy
		w := performRequest(router, http.MethodPost, "/api/v1/chat/sessions/"+sessionID+"/messages",
			map[string]string{"question": "one more"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "A reply is still on its way. Please wait for it.", decodeBody(t, w)["error"])
	})

	t.Run("empty message", func(t *testing.T) {
		fake := newFakeChat("ok")
		router := chatRouter(fake)
		sessionID, _ := startChat(t, router)

		fake.sendErr = service.ErrEmptyMessage
		w := performRequest(router, http.MethodPost, "/api/v1/chat/sessions/"+sessionID+"/messages",
			map[string]string{"question": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChatClose(t *testing.T) {
	router := chatRouter(newFakeChat("ok"))
	sessionID, _ := startChat(t, router)

	w := performRequest(router, http.MethodDelete, "/api/v1/chat/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/chat/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
