package domain

import (
	"context"
	"errors"
)

// ErrSendInFlight is returned when a message send is attempted while a
// previous exchange has not yet resolved.
var ErrSendInFlight = errors.New("a message is already being sent")

// ExchangeResponse is what the assistant returns for one user message.
type ExchangeResponse struct {
	AssistantMessage string       `json:"assistant_message"`
	CustomerType     CustomerType `json:"customer_type,omitempty"`
	RecommendedItems []Product    `json:"recommended_items"`
	UpsellItem       *Product     `json:"upsell_item,omitempty"`
}

// Exchanger defines the interface for the message exchange operation:
// send one user message for a session, receive the assistant reply plus
// any derived classification and recommendations.
type Exchanger interface {
	SendMessage(ctx context.Context, sessionID, message string) (*ExchangeResponse, error)
}

// ConversationState is a point-in-time snapshot of a conversation.
// Sending and Typing are transient flags and are never persisted.
type ConversationState struct {
	SessionID        string
	Messages         []Message
	CustomerType     CustomerType
	RecommendedItems []Product
	UpsellItem       *Product
	Sending          bool
	Typing           bool
	LastError        string
}
