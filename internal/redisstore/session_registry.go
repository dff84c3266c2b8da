package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LiveSession is the registry entry for an issued token.
type LiveSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
}

// SessionRegistry tracks live login sessions. Logout removes the entry, which
// invalidates the token before its JWT expiry.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRegistry returns redis-backed registry.
func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{client: client, ttl: ttl}
}

func (s *SessionRegistry) key(sessionID string) string {
	return fmt.Sprintf("sessions:live:%s", sessionID)
}

// Save registers a session.
func (s *SessionRegistry) Save(ctx context.Context, session LiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.SessionID), data, s.ttl).Err()
}

// Exists reports whether the session is still live.
func (s *SessionRegistry) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a session.
func (s *SessionRegistry) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
