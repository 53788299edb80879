package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"studiolink/models"
)

// Quote sessions live for the gap between the client's quote call and its
// submit call.
const quoteSessionTTL = 10 * time.Minute

// SessionStore caches quoted requests in Redis so the submit endpoint can be
// called with a session id instead of a resent request body. Submission
// still re-quotes; the cache only carries the input.
type SessionStore struct {
	Client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{Client: client}
}

func (s *SessionStore) Save(ctx context.Context, input models.BookingRequestInput, quote models.Quote) (*models.QuoteSession, error) {
	session := &models.QuoteSession{
		SessionID: uuid.New().String(),
		Input:     input,
		Quote:     quote,
		QuotedAt:  time.Now(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(session.SessionID), data, quoteSessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache quote session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (*models.QuoteSession, error) {
	data, err := s.Client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("quote session not found or expired: %w", err)
	}
	var session models.QuoteSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse quote session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) {
	s.Client.Del(ctx, sessionKey(sessionID))
}

func sessionKey(sessionID string) string {
	return "quote:" + sessionID
}
