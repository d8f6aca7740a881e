package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/smartbyte/shopassist/internal/domain"
)

const (
	sessionIDKey  = "session_id"
	historyKey    = "chat_history"
	credentialKey = "auth_token"
)

// SessionStore owns durable conversation identity: a stable session ID,
// the persisted message history and the admin auth credential.
//
// The underlying store is never assumed reliable. Every read degrades to
// "absent" and every write is best-effort; failures are logged, never
// returned to the caller.
type SessionStore struct {
	store domain.KeyValueStore

	mu        sync.Mutex
	sessionID string
}

// NewSessionStore creates a session store over the given key-value store
func NewSessionStore(store domain.KeyValueStore) *SessionStore {
	return &SessionStore{store: store}
}

// SessionID returns the persisted session identity, generating and
// persisting a new one on first access. Repeated calls within a process
// lifetime return the same value even if persistence fails.
func (s *SessionStore) SessionID(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionID != "" {
		return s.sessionID
	}

	id, err := s.store.Get(ctx, sessionIDKey)
	if err == nil && id != "" {
		s.sessionID = id
		return id
	}
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		log.Warn().Err(err).Msg("failed to read session id, generating a new one")
	}

	id = newSessionID()
	if err := s.store.Set(ctx, sessionIDKey, id); err != nil {
		log.Warn().Err(err).Msg("failed to persist session id")
	}

	s.sessionID = id
	return id
}

// newSessionID generates a time-seeded identity with a random suffix.
// Collisions are treated as negligible, not enforced against.
func newSessionID() string {
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// LoadHistory returns previously persisted messages. Absent or corrupt
// history degrades to nil.
func (s *SessionStore) LoadHistory(ctx context.Context) []domain.Message {
	data, err := s.store.Get(ctx, historyKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Warn().Err(err).Msg("failed to read chat history")
		}
		return nil
	}

	var messages []domain.Message
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		log.Warn().Err(err).Msg("discarding corrupt chat history")
		return nil
	}
	return messages
}

// SaveHistory overwrites the persisted history. Best-effort.
func (s *SessionStore) SaveHistory(ctx context.Context, messages []domain.Message) {
	data, err := json.Marshal(messages)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal chat history")
		return
	}
	if err := s.store.Set(ctx, historyKey, string(data)); err != nil {
		log.Warn().Err(err).Msg("failed to persist chat history")
	}
}

// ClearHistory removes the persisted history
func (s *SessionStore) ClearHistory(ctx context.Context) {
	if err := s.store.Delete(ctx, historyKey); err != nil {
		log.Warn().Err(err).Msg("failed to clear chat history")
	}
}

// SaveCredential persists the auth token
func (s *SessionStore) SaveCredential(ctx context.Context, token string) {
	if err := s.store.Set(ctx, credentialKey, token); err != nil {
		log.Warn().Err(err).Msg("failed to persist credential")
	}
}

// Credential returns the persisted auth token, or empty if absent
func (s *SessionStore) Credential(ctx context.Context) string {
	token, err := s.store.Get(ctx, credentialKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Warn().Err(err).Msg("failed to read credential")
		}
		return ""
	}
	return token
}

// ClearCredential removes the persisted auth token
func (s *SessionStore) ClearCredential(ctx context.Context) {
	if err := s.store.Delete(ctx, credentialKey); err != nil {
		log.Warn().Err(err).Msg("failed to clear credential")
	}
}

// IsAuthenticated reports whether a non-empty credential is present
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	return s.Credential(ctx) != ""
}
