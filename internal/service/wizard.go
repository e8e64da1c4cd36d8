package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/savora-ai/savora/backend/internal/types"
	"github.com/savora-ai/savora/backend/internal/wizard"
)

// WizardSession is one in-flight run of the customization wizard. A session
// serves exactly one recipe request; it is deleted on submit and a fresh one
// is started for the next recipe.
type WizardSession struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
	Step      int                        `json:"step"` // one-based
	Request   types.CustomizationRequest `json:"request"`
}

// Builder restores the step machine for this session's state.
func (s *WizardSession) builder() *wizard.Builder {
	return wizard.NewBuilderAt(s.Step-1, s.Request)
}

// WizardService drives wizard sessions persisted in Redis.
type WizardService struct {
	sessions sessionStore
}

func NewWizardService(redisClient *redis.Client) *WizardService {
	return &WizardService{sessions: redisSessions{client: redisClient}}
}

func wizardKey(id string) string {
	return fmt.Sprintf("wizard:session:%s", id)
}

// Start creates a fresh session positioned on the first step with default
// field values.
func (s *WizardService) Start(ctx context.Context) (*WizardSession, error) {
	now := time.Now()
	session := &WizardSession{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Step:      1,
		Request:   types.NewCustomizationRequest(),
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get retrieves a wizard session from Redis.
func (s *WizardService) Get(ctx context.Context, id string) (*WizardSession, error) {
	data, err := s.sessions.get(ctx, wizardKey(id))
	if err != nil {
		return nil, err
	}

	var session WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wizard session: %w", err)
	}
	return &session, nil
}

func (s *WizardService) save(ctx context.Context, session *WizardSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	return s.sessions.set(ctx, wizardKey(session.ID), data)
}

// SetField overwrites the field belonging to the session's current step.
func (s *WizardService) SetField(ctx context.Context, id, value string) (*WizardSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b := session.builder()
	b.SetField(value)
	session.Request = b.Request()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance moves the session forward one step. On the last step it emits the
// completed request and discards the session. A refused advance (blank
// ingredients on the first step) changes nothing.
func (s *WizardService) Advance(ctx context.Context, id string) (session *WizardSession, completed *types.CustomizationRequest, advanced bool, err error) {
	session, err = s.Get(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}

	b := session.builder()
	request, submitted, ok := b.Advance()
	if !ok {
		return session, nil, false, nil
	}
	if submitted {
		if err := s.sessions.del(ctx, wizardKey(id)); err != nil {
			return nil, nil, false, err
		}
		return session, &request, true, nil
	}

	session.Step = b.Step()
	if err := s.save(ctx, session); err != nil {
		return nil, nil, false, err
	}
	return session, nil, true, nil
}

// Retreat moves the session back one step; on the first step it is a no-op.
func (s *WizardService) Retreat(ctx context.Context, id string) (*WizardSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b := session.builder()
	b.Retreat()
	session.Step = b.Step()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
