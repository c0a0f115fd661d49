package server

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transformerAnt/orange-fitness-backend/internal/bootstrap"
	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/dto"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "*",
		},
		Rag: config.RagConfig{
			DocumentsJSON: `[{"text":"stretch after every workout"},{"text":"protein intake of 1.6g per kg"}]`,
		},
	}
}

func newTestApp(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig(t)
	container := bootstrap.NewContainer(cfg)
	return New(cfg, container)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := srv.GetApp().Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]bool
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.True(t, result["ok"])
}

func TestExercisesUnconfiguredReturns400(t *testing.T) {
	srv := newTestApp(t)
	app := srv.GetApp()

	for _, path := range []string{"/exercises", "/exercises/body-parts", "/exercises/abc"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, "path %s", path)

		var result map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "ExerciseDB is not configured.", result["error"], "path %s", path)
	}
}

func TestFoodAnalyzeMissingImageReturns400(t *testing.T) {
	srv := newTestApp(t)

	req := httptest.NewRequest("POST", "/food/analyze", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.GetApp().Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "imageUrl is required.", result["error"])
}

func TestChatMissingMessageReturns400(t *testing.T) {
	srv := newTestApp(t)

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"history":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.GetApp().Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "message is required.", result["error"])
}

func TestChatHistoryEmptyForUnknownUser(t *testing.T) {
	srv := newTestApp(t)

	req := httptest.NewRequest("GET", "/chat/history", nil)
	req.Header.Set("x-user-id", "stranger")
	resp, err := srv.GetApp().Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result dto.GetChatHistoryResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Empty(t, result.History)
}

func TestChatResetReturnsOk(t *testing.T) {
	srv := newTestApp(t)

	req := httptest.NewRequest("POST", "/chat/reset", nil)
	req.Header.Set("x-user-id", "stranger")
	resp, err := srv.GetApp().Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]bool
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.True(t, result["ok"])
}

func TestRagSearch(t *testing.T) {
	srv := newTestApp(t)
	app := srv.GetApp()

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/rag/search", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var result map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "query is required.", result["error"])
	})

	t.Run("matching query", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/rag/search", strings.NewReader(`{"query":"protein"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result struct {
			Matches []map[string]interface{} `json:"matches"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Matches, 1)
		assert.Equal(t, "protein intake of 1.6g per kg", result.Matches[0]["text"])
	})

	t.Run("no matches yields empty array", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/rag/search", strings.NewReader(`{"query":"zzz"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result struct {
			Matches []map[string]interface{} `json:"matches"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.NotNil(t, result.Matches)
		assert.Empty(t, result.Matches)
	})
}
