package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]string)}
}

func (s *memorySessionStore) Save(_ context.Context, sessionID, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memorySessionStore) Load(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func TestSessionManager_IssueAndResolve(t *testing.T) {
	ctx := context.Background()
	manager := NewSessionManager("test-secret", time.Hour, newMemorySessionStore())

	token, expires, err := manager.Issue(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expires.After(time.Now()))

	userID, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestSessionManager_RevokeKillsSession(t *testing.T) {
	ctx := context.Background()
	manager := NewSessionManager("test-secret", time.Hour, newMemorySessionStore())

	token, _, err := manager.Issue(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(ctx, token))

	_, err = manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_RevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	manager := NewSessionManager("test-secret", time.Hour, newMemorySessionStore())

	token, _, err := manager.Issue(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(ctx, token))
	require.NoError(t, manager.Revoke(ctx, token))
	require.NoError(t, manager.Revoke(ctx, "garbage-token"))
}

func TestSessionManager_RejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	manager := NewSessionManager("test-secret", time.Hour, store)
	other := NewSessionManager("other-secret", time.Hour, store)

	token, _, err := other.Issue(ctx, "user-1")
	require.NoError(t, err)

	_, err = manager.Resolve(ctx, token)
	assert.Error(t, err)
}

func TestSessionManager_RejectsGarbageToken(t *testing.T) {
	manager := NewSessionManager("test-secret", time.Hour, newMemorySessionStore())

	_, err := manager.Resolve(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
