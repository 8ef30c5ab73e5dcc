package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"newsletter/pkg/config"
	"newsletter/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	webDir := filepath.Join(dir, "web")
	require.NoError(t, os.MkdirAll(webDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<h1>Stay informed</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(webDir, "styles.css"), []byte("body{}"), 0o644))

	cfg := &config.Config{
		ServerPort:      "0",
		GinMode:         gin.TestMode,
		StaticDir:       webDir,
		SubscribersFile: filepath.Join(dir, "subscribers.json"),
	}
	a, err := NewAppWithLogger(cfg, logger.New())
	require.NoError(t, err)
	return a, cfg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewApp_CreatesSubscribersFile(t *testing.T) {
	_, cfg := newTestApp(t)

	data, err := os.ReadFile(cfg.SubscribersFile)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestNewApp_FailsOnUnwritableStore(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := &config.Config{
		GinMode:         gin.TestMode,
		SubscribersFile: filepath.Join(blocker, "subscribers.json"),
	}
	_, err := NewAppWithLogger(cfg, logger.New())
	assert.Error(t, err)
}

func TestRouter_SubscribeFlow(t *testing.T) {
	a, _ := newTestApp(t)
	h := a.Handler()

	w := do(t, h, http.MethodPost, "/api/subscribe", `{"email":"reader@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Successfully subscribed"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(t, h, http.MethodPost, "/api/subscribe", `{"email":"Reader@Example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email already subscribed"}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/subscribe", `{"email":"foo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/subscribers", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count       int `json:"count"`
		Subscribers []struct {
			Email string `json:"email"`
		} `json:"subscribers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Subscribers, 1)
	assert.Equal(t, "reader@example.com", list.Subscribers[0].Email)

	w = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","storage":"file-based","subscriberCount":1}`, w.Body.String())
}

func TestRouter_ServesLandingPage(t *testing.T) {
	a, _ := newTestApp(t)

	w := do(t, a.Handler(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stay informed")

	w = do(t, a.Handler(), http.MethodGet, "/styles.css", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_UnknownPath(t *testing.T) {
	a, _ := newTestApp(t)

	w := do(t, a.Handler(), http.MethodGet, "/nope.txt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	a, _ := newTestApp(t)
	do(t, a.Handler(), http.MethodPost, "/api/subscribe", `{"email":"metrics@example.com"}`)

	w := do(t, a.Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "newsletter_subscription_requests_total")
}

func TestRouter_CORS(t *testing.T) {
	a, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/subscribe", nil)
	req.Header.Set("Origin", "https://landing.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdown_WithoutRun(t *testing.T) {
	a, _ := newTestApp(t)
	assert.NoError(t, a.Shutdown())
}
