package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartbyte/shopassist/internal/domain"
)

// ConversationService owns the live conversation state machine: the
// message list, the sending/typing flags, the last error and the
// server-derived classification and recommendations.
//
// State moves Idle -> Sending -> Idle on every send, on both the success
// and the failure path. LastError is an overlay orthogonal to that cycle:
// it is cleared by ClearError or by the start of a new send, never by
// time.
type ConversationService struct {
	sessions    *SessionStore
	exchanger   domain.Exchanger
	typingDelay time.Duration

	mu    sync.Mutex
	state domain.ConversationState
}

// NewConversationService creates a conversation service. typingDelay is
// the artificial pause before an assistant reply is appended, purely for
// perceived realism.
func NewConversationService(sessions *SessionStore, exchanger domain.Exchanger, typingDelay time.Duration) *ConversationService {
	return &ConversationService{
		sessions:    sessions,
		exchanger:   exchanger,
		typingDelay: typingDelay,
	}
}

// Initialize seeds the conversation from the session store: stable
// session identity plus any prior history. No network calls.
func (s *ConversationService) Initialize(ctx context.Context) {
	sessionID := s.sessions.SessionID(ctx)
	history := s.sessions.LoadHistory(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.ConversationState{
		SessionID: sessionID,
		Messages:  history,
	}
}

// SendMessage runs one send/receive exchange cycle.
//
// The trimmed text is appended as a user message and persisted before any
// network activity, and that message is never rolled back: a failed
// exchange sets LastError and leaves the conversation usable, with the
// user's message retained as sent. Classification and recommendations
// from a successful response fully replace the previous values, so a
// response carrying no recommendations clears stale ones.
//
// Empty input (after trimming) is silently ignored. A call while a
// previous exchange is still in flight returns domain.ErrSendInFlight.
func (s *ConversationService) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	if s.state.Sending {
		s.mu.Unlock()
		return domain.ErrSendInFlight
	}

	s.state.Messages = append(s.state.Messages, domain.Message{
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	s.state.Sending = true
	s.state.Typing = true
	s.state.LastError = ""

	sessionID := s.state.SessionID
	messages := copyMessages(s.state.Messages)
	s.mu.Unlock()

	s.sessions.SaveHistory(ctx, messages)

	resp, err := s.exchanger.SendMessage(ctx, sessionID, text)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("message exchange failed")

		s.mu.Lock()
		s.state.LastError = err.Error()
		s.state.Sending = false
		s.state.Typing = false
		s.mu.Unlock()
		return err
	}

	s.waitTyping(ctx)

	s.mu.Lock()
	s.state.Messages = append(s.state.Messages, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   resp.AssistantMessage,
		Timestamp: time.Now(),
	})
	if resp.CustomerType != "" {
		s.state.CustomerType = resp.CustomerType
	}
	s.state.RecommendedItems = resp.RecommendedItems
	s.state.UpsellItem = resp.UpsellItem
	s.state.Sending = false
	s.state.Typing = false

	messages = copyMessages(s.state.Messages)
	s.mu.Unlock()

	s.sessions.SaveHistory(ctx, messages)
	return nil
}

// waitTyping pauses for the configured typing delay. The exchange has
// already resolved at this point, so context cancellation only cuts the
// pause short, never the reply.
func (s *ConversationService) waitTyping(ctx context.Context) {
	if s.typingDelay <= 0 {
		return
	}

	timer := time.NewTimer(s.typingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// ClearConversation resets the conversation to empty and clears the
// persisted history. The session identity is deliberately left
// untouched.
func (s *ConversationService) ClearConversation(ctx context.Context) {
	s.mu.Lock()
	s.state = domain.ConversationState{SessionID: s.state.SessionID}
	s.mu.Unlock()

	s.sessions.ClearHistory(ctx)
}

// ClearError dismisses the last error. No other effect.
func (s *ConversationService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastError = ""
}

// State returns a snapshot of the current conversation state. The
// returned value is a copy; mutating it has no effect on the service.
func (s *ConversationService) State() domain.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Messages = copyMessages(s.state.Messages)
	snapshot.RecommendedItems = append([]domain.Product(nil), s.state.RecommendedItems...)
	if s.state.UpsellItem != nil {
		upsell := *s.state.UpsellItem
		snapshot.UpsellItem = &upsell
	}
	return snapshot
}

func copyMessages(messages []domain.Message) []domain.Message {
	return append([]domain.Message(nil), messages...)
}
