package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maplemed-support-be/internal/bootstrap"
	"maplemed-support-be/internal/config"
	"maplemed-support-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{
			CorsAllowedOrigins: "*",
			AuditLogFilePath:   t.TempDir() + "/conversation.log",
		},
		Session: config.SessionConfig{TTL: time.Minute, ProfileStore: "memory"},
		Llm: config.LLMConfig{
			Provider:      "ollama",
			Model:         "llama3",
			OllamaBaseURL: "http://127.0.0.1:1",
			Timeout:       200 * time.Millisecond,
		},
	}
	c, err := bootstrap.NewContainer(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return New(cfg, c)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// With no completion backend reachable, crisis input still gets the hotline.
func TestCrisisTurnWithoutBackend(t *testing.T) {
	app := newTestServer(t).GetApp()

	req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader(`{"user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			SessionId string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	body := `{"session_id":"` + created.Data.SessionId + `","user_id":"u1","message":"I might overdose"}`
	req = httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			Response string `json:"response"`
			Handler  string `json:"handler"`
			Degraded bool   `json:"degraded"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "emergency_escalation", out.Data.Handler)
	assert.Contains(t, out.Data.Response, "1-833-456-4566")
	assert.False(t, out.Data.Degraded)
}

func TestShutdownStopsChat(t *testing.T) {
	srv := newTestServer(t)

	require.NoError(t, srv.Shutdown())

	select {
	case <-srv.container.ChatHandler.Done():
	default:
		t.Fatal("chat handler still accepting sockets after Shutdown")
	}
}
