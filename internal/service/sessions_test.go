package service

import (
	"context"
	"time"
)

// memorySessions is an in-process sessionStore for tests. Calls honor
// context cancellation the way the Redis client does; lease expiry is not
// modeled.
type memorySessions struct {
	data   map[string][]byte
	leases map[string]bool
	getErr error
	setErr error
	delErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: map[string][]byte{}, leases: map[string]bool{}}
}

func (m *memorySessions) get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return data, nil
}

func (m *memorySessions) set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = data
	return nil
}

func (m *memorySessions) del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	delete(m.leases, key)
	return nil
}

func (m *memorySessions) acquire(ctx context.Context, key string, _ time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if m.leases[key] {
		return false, nil
	}
	m.leases[key] = true
	return true, nil
}
