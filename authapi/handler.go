// Package authapi exposes the admin control HTTP API: operator login and
// read-only introspection of open FIX sessions, gated behind the JWT
// issued by auth.Service.
package authapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/epic1st/fixengine/auth"
	"github.com/epic1st/fixengine/logging"
	"github.com/epic1st/fixengine/ratelimit"
	"github.com/epic1st/fixengine/session"
)

// Handler serves the admin control API.
type Handler struct {
	authSvc *auth.Service
	engine  *session.Engine
	limiter *ratelimit.Limiter
}

// NewHandler wires the admin API around its collaborators. limiter may be
// nil when the gateway runs without rate limiting.
func NewHandler(authSvc *auth.Service, engine *session.Engine, limiter *ratelimit.Limiter) *Handler {
	return &Handler{authSvc: authSvc, engine: engine, limiter: limiter}
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}

// withRequestID mints a correlation ID for one admin API call, stamps it on
// the response so an operator can match a support report back to a log
// line, and returns it for that line.
func withRequestID(w http.ResponseWriter) string {
	id := uuid.NewString()
	w.Header().Set("X-Request-Id", id)
	return id
}

// HandleLogin authenticates the operator and returns a bearer JWT.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	cors(w)
	reqID := withRequestID(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, user, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		logging.Warn("admin login failed", logging.RequestID(reqID), logging.String("username", req.Username))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	logging.Info("admin login succeeded", logging.RequestID(reqID), logging.String("username", req.Username))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Token string    `json:"token"`
		User  *auth.User `json:"user"`
	}{Token: token, User: user})
}

// requireAuth validates the bearer token and rejects the request on
// failure, returning false so the caller can stop handling.
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return false
	}
	if _, err := h.authSvc.ValidateToken(token); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return false
	}
	return true
}

// HandleListSessions reports every currently open session.
func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	cors(w)
	reqID := withRequestID(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if !h.requireAuth(w, r) {
		return
	}

	summaries := h.engine.Summaries()
	logging.Debug("listed sessions", logging.RequestID(reqID), logging.Int("count", len(summaries)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// HandleSessionRateLimit reports the throttling state for one session,
// identified by the "id" query parameter.
func (h *Handler) HandleSessionRateLimit(w http.ResponseWriter, r *http.Request) {
	cors(w)
	reqID := withRequestID(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if !h.requireAuth(w, r) {
		return
	}
	if h.limiter == nil {
		http.Error(w, "rate limiting disabled", http.StatusNotImplemented)
		return
	}

	id := r.URL.Query().Get("id")
	state, err := h.limiter.State(id)
	if err != nil {
		logging.Debug("rate limit state lookup miss", logging.RequestID(reqID), logging.SessionID(id))
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}
