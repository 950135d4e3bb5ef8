package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound signals a missing or revoked session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists server-side session state keyed by session ID.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis so logout revokes them
// immediately across instances.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps a go-redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Save stores the session with an expiry.
func (s *RedisSessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(sessionID), userID, ttl).Err()
}

// Load resolves a session ID to its user ID.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Delete removes the session. Deleting an absent key is not an error, which
// keeps logout idempotent.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

// SessionManager issues and resolves login sessions. The cookie value is a
// signed JWT whose jti is the store key, so a session dies the moment its
// store entry is deleted regardless of the token's own expiry.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore
}

// NewSessionManager builds a new manager.
func NewSessionManager(secret string, ttl time.Duration, store SessionStore) *SessionManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, store: store}
}

// Issue creates a session for the user and returns the signed cookie value.
func (m *SessionManager) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(m.ttl)

	if err := m.store.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return "", time.Time{}, fmt.Errorf("save session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Resolve validates the cookie value and returns the bound user ID.
func (m *SessionManager) Resolve(ctx context.Context, tokenStr string) (string, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return "", err
	}

	userID, err := m.store.Load(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if userID != claims.Subject {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

// Revoke destroys the session behind the cookie value. Unparseable tokens
// are treated as already logged out.
func (m *SessionManager) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}

func (m *SessionManager) parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}
