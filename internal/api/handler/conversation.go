package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/smartbyte/shopassist/internal/api/response"
	"github.com/smartbyte/shopassist/internal/catalog"
	"github.com/smartbyte/shopassist/internal/domain"
)

var validate = validator.New()

// ConversationHandler serves the stub conversation endpoint. It mimics
// the production backend's contract with keyword matching over the
// loaded catalog instead of an LLM.
type ConversationHandler struct {
	catalog *catalog.Catalog
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(c *catalog.Catalog) *ConversationHandler {
	return &ConversationHandler{catalog: c}
}

type messageRequest struct {
	SessionID string `json:"session_id" validate:"required,max=100"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// ProcessMessage handles POST /api/conversation/message
func (h *ConversationHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "session_id and message are required")
		return
	}

	customerType := catalog.Classify(req.Message)
	items := h.catalog.Match(req.Message, 2)

	var upsell *domain.Product
	if len(items) > 0 {
		upsell = h.catalog.Upsell()
	}

	response.OK(w, domain.ExchangeResponse{
		AssistantMessage: assistantText(customerType, items, upsell),
		CustomerType:     customerType,
		RecommendedItems: items,
		UpsellItem:       upsell,
	})
}

// Health handles GET /api/conversation/health
func (h *ConversationHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status":  "healthy",
		"service": "conversation-api",
	})
}

func assistantText(customerType domain.CustomerType, items []domain.Product, upsell *domain.Product) string {
	if len(items) == 0 {
		return "Could you tell me a bit more about what you need? " +
			"For example what you'll use the computer for and your budget."
	}

	var b strings.Builder
	b.WriteString("Based on your needs, here's what I'd suggest:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s at %.0f ILS\n", item.DisplayName(), item.Price)
	}
	if customerType != domain.CustomerOther {
		fmt.Fprintf(&b, "These are a good fit for %s use.\n", strings.ToLower(string(customerType)))
	}
	if upsell != nil {
		fmt.Fprintf(&b, "You might also like the %s for %.0f ILS.", upsell.DisplayName(), upsell.Price)
	}
	return strings.TrimSpace(b.String())
}
