package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fedutinova/xpb3parser/internal/config"
	httpapi "github.com/fedutinova/xpb3parser/internal/transport/http"
)

func testHandlers() *httpapi.Handlers {
	return &httpapi.Handlers{Config: config.Config{
		Provider:       config.ProviderOpenAI,
		Model:          config.DefaultOpenAIModel,
		APIKey:         "k",
		MaxUploadBytes: 1 << 20,
	}}
}

func TestRouter_CORSPreflightOnProtectedRoute(t *testing.T) {
	r := NewRouter(testHandlers())

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "https://n8n.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-API-Key, Content-Type")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestRouter_CORSOnSimpleRequest(t *testing.T) {
	r := NewRouter(testHandlers())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_GatekeeperOnlyOnPredict(t *testing.T) {
	r := NewRouter(testHandlers())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
