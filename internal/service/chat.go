package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/savora-ai/savora/backend/internal/types"
)

// ErrChatBusy is returned when a send arrives while another send is still in
// flight on the same session. The session allows one outstanding request at
// a time; the caller retries once the previous send settles.
var ErrChatBusy = errors.New("chat session has a send in flight")

// ErrEmptyMessage is returned for a blank or whitespace-only message.
var ErrEmptyMessage = errors.New("message is empty")

// Greeting is the fixed assistant turn every session starts with.
const Greeting = "Hi! I'm Chef Savora, your AI cooking assistant. I'm here to help with any questions about your recipe. What would you like to know?"

// Fallback assistant replies. The transcript always ends with an assistant
// turn after a send; these replace the answer when the send fails.
const (
	replyRejected    = "Sorry, I encountered an error. Please try again."
	replyUnreachable = "Connection error. Please try again in a moment."
)

// quickActions are the canned prompts offered while the transcript still
// holds only the greeting.
var quickActions = []string{
	"How do I make it healthier?",
	"What can I substitute?",
	"How to store leftovers?",
	"Tips for beginners?",
}

// ChatSession is a per-recipe conversation. Turns are append-only and in
// send order; the bound recipe is attached to every outbound question.
type ChatSession struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	Recipe    types.Recipe             `json:"recipe"`
	Turns     []types.ConversationTurn `json:"turns"`
	Loading   bool                     `json:"loading"`
}

// QuickActions returns the canned prompts, or nil once any user turn exists.
// They never reappear.
func (s *ChatSession) QuickActions() []string {
	if len(s.Turns) == 1 {
		return quickActions
	}
	return nil
}

// ChatService manages chat sessions persisted in Redis.
type ChatService struct {
	sessions sessionStore
	llm      Answerer
}

// Answerer is the slice of the model client the chat needs.
type Answerer interface {
	Answer(ctx context.Context, question string, recipe types.Recipe) (string, error)
}

func NewChatService(redisClient *redis.Client, llm Answerer) *ChatService {
	return &ChatService{sessions: redisSessions{client: redisClient}, llm: llm}
}

func chatKey(id string) string {
	return fmt.Sprintf("chat:session:%s", id)
}

func chatGateKey(id string) string {
	return fmt.Sprintf("chat:gate:%s", id)
}

// chatGateTTL outlives the model call timeout. A send that never releases
// its lease unblocks the session when the lease expires.
const chatGateTTL = 2 * time.Minute

// Start opens a session bound to one recipe, seeded with the greeting.
func (s *ChatService) Start(ctx context.Context, recipe types.Recipe) (*ChatSession, error) {
	now := time.Now()
	session := &ChatSession{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Recipe:    recipe,
		Turns:     []types.ConversationTurn{{Role: "assistant", Text: Greeting}},
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get retrieves a chat session from Redis.
func (s *ChatService) Get(ctx context.Context, id string) (*ChatSession, error) {
	data, err := s.sessions.get(ctx, chatKey(id))
	if err != nil {
		return nil, err
	}

	var session ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat session: %w", err)
	}
	return &session, nil
}

func (s *ChatService) save(ctx context.Context, session *ChatSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal chat session: %w", err)
	}
	return s.sessions.set(ctx, chatKey(session.ID), data)
}

// Close discards the session and its transcript.
func (s *ChatService) Close(ctx context.Context, id string) error {
	return s.sessions.del(ctx, chatKey(id))
}

// Send appends the user turn, asks the model with the bound recipe as
// context, and appends the reply. A failed call still gets an assistant
// turn, worded for the failure kind; a user message is never left without a
// reply. Only one send may be in flight per session.
func (s *ChatService) Send(ctx context.Context, id, text string) (*ChatSession, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The in-flight gate is a short-lived lease taken atomically, separate
	// from the session blob. Two simultaneous sends cannot both hold it.
	held, err := s.sessions.acquire(ctx, chatGateKey(id), chatGateTTL)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, ErrChatBusy
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sessions.del(releaseCtx, chatGateKey(id)); err != nil {
			log.Printf("chat session %s: failed to release send lease: %v", id, err)
		}
	}()

	// The user turn lands before the model is consulted.
	session.Loading = true
	session.Turns = append(session.Turns, types.ConversationTurn{Role: "user", Text: text})
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	answer, answerErr := s.llm.Answer(ctx, text, session.Recipe)
	switch {
	case answerErr == nil:
		session.Turns = append(session.Turns, types.ConversationTurn{Role: "assistant", Text: answer})
	case errors.Is(answerErr, ErrGenerationRejected):
		log.Printf("chat session %s: model rejected question: %v", id, answerErr)
		session.Turns = append(session.Turns, types.ConversationTurn{Role: "assistant", Text: replyRejected})
	default:
		log.Printf("chat session %s: model unreachable: %v", id, answerErr)
		session.Turns = append(session.Turns, types.ConversationTurn{Role: "assistant", Text: replyUnreachable})
	}

	session.Loading = false
	if err := s.save(ctx, session); err != nil {
		// The request context is already canceled when the client hung up
		// mid answer. The reply and the cleared flag still have to land,
		// or the stored transcript ends on an unanswered user turn.
		log.Printf("chat session %s: retrying save on a fresh context: %v", id, err)
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.save(saveCtx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}
