package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smartbyte/shopassist/internal/catalog"
	"github.com/smartbyte/shopassist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const routerTestCSV = `sku,name,brand,product_type,category,price,stock,description
LAP-001,ThinkPad E14,Lenovo,laptop,computer,3890,12,business laptop
LAP-002,IdeaPad Slim 3,Lenovo,laptop,computer,2490,20,everyday laptop
ACC-001,M330 Mouse,Logitech,accessory,mouse,120,50,wireless mouse
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	store := catalog.New()
	_, err = store.LoadCSV(strings.NewReader(routerTestCSV))
	require.NoError(t, err)

	cfg := config.ServerConfig{
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
	}

	server := httptest.NewServer(NewRouter(cfg, store))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, body, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_ConversationMessage(t *testing.T) {
	server := newTestServer(t)

	t.Run("recommends from the catalog", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/conversation/message",
			`{"session_id":"session-1-abcd","message":"I'm a student and need a laptop, budget 3000"}`, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			AssistantMessage string `json:"assistant_message"`
			CustomerType     string `json:"customer_type"`
			RecommendedItems []struct {
				SKU string `json:"sku"`
			} `json:"recommended_items"`
			UpsellItem *struct {
				SKU string `json:"sku"`
			} `json:"upsell_item"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		assert.NotEmpty(t, body.AssistantMessage)
		assert.Equal(t, "Student", body.CustomerType)
		require.Len(t, body.RecommendedItems, 1)
		assert.Equal(t, "LAP-002", body.RecommendedItems[0].SKU)
		require.NotNil(t, body.UpsellItem)
		assert.Equal(t, "ACC-001", body.UpsellItem.SKU)
	})

	t.Run("rejects a missing message", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/conversation/message",
			`{"session_id":"session-1-abcd","message":"  "}`, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/conversation/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRouter_Admin(t *testing.T) {
	server := newTestServer(t)

	login := func(t *testing.T, password string) (*http.Response, string) {
		resp := postJSON(t, server.URL+"/api/admin/login", `{"password":"`+password+`"}`, "")
		if resp.StatusCode != http.StatusOK {
			return resp, ""
		}
		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp, body.Token
	}

	t.Run("login with the wrong password", func(t *testing.T) {
		resp, _ := login(t, "nope")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login and upload", func(t *testing.T) {
		resp, token := login(t, "admin123")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotEmpty(t, token)

		csv := "sku,name,brand,product_type,category,price,stock,description\n" +
			"DSK-001,ProDesk 400,HP,desktop,computer,2890,14,office tower\n"

		uploadResp := postJSON(t, server.URL+"/api/admin/products/upload", csv, token)
		require.Equal(t, http.StatusOK, uploadResp.StatusCode)

		var body struct {
			Statistics struct {
				Loaded int `json:"loaded"`
			} `json:"statistics"`
		}
		require.NoError(t, json.NewDecoder(uploadResp.Body).Decode(&body))
		assert.Equal(t, 1, body.Statistics.Loaded)
	})

	t.Run("upload without a token", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/admin/products/upload", "sku\n", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
