package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/token"
)

const (
	sessionKeyPrefix = "session:"
	userKeyPrefix    = "user_sessions:"

	// A second 128-bit nonce colliding is not a realistic event; the retry
	// loop exists so a collision is structurally impossible to return.
	maxTokenAttempts = 3
)

// SessionStore persists sessions in Redis. Keys carry the session TTL, so
// Redis itself reclaims stale rows; expiry is still checked on read because
// the stored ExpiresAt, not the key TTL, is authoritative.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Create(ctx context.Context, userID, role string, ttl time.Duration) (*domain.Session, error) {
	now := time.Now().UTC()

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		tok, err := token.NewOpaque(userID, now)
		if err != nil {
			return nil, err
		}

		sess := &domain.Session{
			Token:     tok,
			UserID:    userID,
			Role:      role,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		}
		data, err := json.Marshal(sess)
		if err != nil {
			return nil, fmt.Errorf("marshal session: %w", err)
		}

		// SETNX makes the uniqueness check and the write a single atomic
		// step: two concurrent creates can never claim the same token.
		ok, err := s.client.SetNX(ctx, sessionKeyPrefix+tok, data, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		if !ok {
			continue
		}

		if err := s.client.SAdd(ctx, userKeyPrefix+userID, tok).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		return sess, nil
	}

	return nil, errors.New("session token collision persisted across retries")
}

func (s *SessionStore) FindByToken(ctx context.Context, tok string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+tok).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if sess.Expired(time.Now()) {
		// Lazy expiry: the row is left for the key TTL to reclaim, but it
		// is never handed out as valid.
		return nil, domain.ErrSessionExpired
	}
	return &sess, nil
}

func (s *SessionStore) Invalidate(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, tok := range tokens {
			owner := s.ownerOf(ctx, tok)
			pipe.Del(ctx, sessionKeyPrefix+tok)
			if owner != "" {
				pipe.SRem(ctx, userKeyPrefix+owner, tok)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SessionStore) InvalidateUser(ctx context.Context, userID string) error {
	userKey := userKeyPrefix + userID

	tokens, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, tok := range tokens {
			pipe.Del(ctx, sessionKeyPrefix+tok)
		}
		pipe.Del(ctx, userKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ownerOf resolves the user index entry for a token being invalidated.
// Best-effort: a miss just leaves a dangling index member.
func (s *SessionStore) ownerOf(ctx context.Context, tok string) string {
	data, err := s.client.Get(ctx, sessionKeyPrefix+tok).Bytes()
	if err != nil {
		return ""
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return ""
	}
	return sess.UserID
}
