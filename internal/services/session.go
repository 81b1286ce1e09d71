package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// Session principal kinds
const (
	PrincipalCitizen = "citizen"
	PrincipalAdmin   = "admin"
)

// ErrSessionNotFound is returned for unknown or expired tokens
var ErrSessionNotFound = errors.New("session not found")

// Session is the resolved identity behind a bearer token
type Session struct {
	Kind      string             `json:"kind"`
	SubjectID primitive.ObjectID `json:"subjectId"`
}

// SessionService issues and resolves opaque bearer tokens. Tokens live
// in Redis with a TTL, so a restart never invalidates active logins
// and revocation is a single DEL.
type SessionService struct {
	cache Cache
	ttl   time.Duration
}

// NewSessionService creates a session service
func NewSessionService(cache Cache, ttl time.Duration) *SessionService {
	return &SessionService{cache: cache, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create issues a new token for the given principal
func (s *SessionService) Create(ctx context.Context, kind string, subjectID primitive.ObjectID) (string, error) {
	ctx, span := utils.TraceCacheSet(ctx, "session", s.ttl)
	defer span.End()

	token := uuid.NewString()
	payload, err := json.Marshal(Session{Kind: kind, SubjectID: subjectID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(token), string(payload), s.ttl); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Resolve maps a bearer token back to its principal
func (s *SessionService) Resolve(ctx context.Context, token string) (*Session, error) {
	ctx, span := utils.TraceCacheGet(ctx, "session")
	defer span.End()

	payload, err := s.cache.Get(ctx, sessionKey(token))
	if errors.Is(err, ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Destroy revokes a token
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.cache.Del(ctx, sessionKey(token))
}
