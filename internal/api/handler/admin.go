package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/smartbyte/shopassist/internal/api/response"
	"github.com/smartbyte/shopassist/internal/catalog"
	"github.com/smartbyte/shopassist/internal/domain"
	"github.com/smartbyte/shopassist/internal/security"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler serves the stub admin endpoints
type AdminHandler struct {
	passwordHash string
	tokens       *security.TokenManager
	catalog      *catalog.Catalog
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(passwordHash string, tokens *security.TokenManager, c *catalog.Catalog) *AdminHandler {
	return &AdminHandler{
		passwordHash: passwordHash,
		tokens:       tokens,
		catalog:      c,
	}
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "password is required")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(w, "invalid password")
		return
	}

	token, expiresAt, err := h.tokens.Generate()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate admin token")
		response.InternalError(w, "failed to generate token")
		return
	}

	response.OK(w, domain.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// UploadProducts handles POST /api/admin/products/upload. The request
// body is the raw CSV.
func (h *AdminHandler) UploadProducts(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.LoadCSV(r.Body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	log.Info().Int("loaded", stats.Loaded).Int("skipped", stats.Skipped).Msg("catalog replaced")

	response.OK(w, map[string]any{
		"message":    "CSV processed successfully",
		"statistics": stats,
	})
}
