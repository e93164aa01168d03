package authapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/epic1st/fixengine/auth"
	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/ratelimit"
	"github.com/epic1st/fixengine/session"
)

func newTestHandler() *Handler {
	authSvc := auth.NewService("", "test-secret")
	engine := session.NewEngine(dictionary.New(messages.Catalog()))
	limiter := ratelimit.New()
	return NewHandler(authSvc, engine, limiter)
}

func loginAndGetToken(t *testing.T, h *Handler) string {
	t.Helper()
	body := strings.NewReader(`{"username":"admin","password":"password"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("HandleLogin() status = %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login response token is empty")
	}
	return resp.Token
}

func TestHandleLogin_WrongPasswordRejected(t *testing.T) {
	h := newTestHandler()
	body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_StampsRequestID(t *testing.T) {
	h := newTestHandler()
	body := strings.NewReader(`{"username":"admin","password":"password"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header not set")
	}
}

func TestHandleLogin_RejectsWrongMethod(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleListSessions_RequiresAuth(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	w := httptest.NewRecorder()
	h.HandleListSessions(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestHandleListSessions_ReturnsOpenSessions(t *testing.T) {
	h := newTestHandler()
	token := loginAndGetToken(t, h)
	if _, err := h.engine.Open(session.Config{ID: "sess1"}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.HandleListSessions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "sess1") {
		t.Errorf("response = %s, want it to mention sess1", w.Body.String())
	}
}

func TestHandleSessionRateLimit_UnknownSessionIs404(t *testing.T) {
	h := newTestHandler()
	token := loginAndGetToken(t, h)

	req := httptest.NewRequest(http.MethodGet, "/ratelimit?id=ghost", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.HandleSessionRateLimit(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleSessionRateLimit_DisabledWhenNoLimiter(t *testing.T) {
	authSvc := auth.NewService("", "test-secret")
	engine := session.NewEngine(dictionary.New(messages.Catalog()))
	h := NewHandler(authSvc, engine, nil)
	token := loginAndGetToken(t, h)

	req := httptest.NewRequest(http.MethodGet, "/ratelimit?id=sess1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.HandleSessionRateLimit(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotImplemented)
	}
}

func TestRequireAuth_RejectsMissingBearerPrefix(t *testing.T) {
	h := newTestHandler()
	token := loginAndGetToken(t, h)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", token) // missing "Bearer " prefix
	w := httptest.NewRecorder()
	h.HandleListSessions(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
