package livefeed

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/epic1st/fixengine/auth"
)

func TestHub_AuthenticateRejectsMissingToken(t *testing.T) {
	h := NewHub(auth.NewService("", "test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if _, err := h.authenticate(req); err == nil {
		t.Error("authenticate() with no token = nil error, want an error")
	}
}

func TestHub_AuthenticateAcceptsQueryToken(t *testing.T) {
	authSvc := auth.NewService("", "test-secret")
	_, user, err := authSvc.Login("admin", "password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token, err := authSvc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	h := NewHub(authSvc)
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	userID, err := h.authenticate(req)
	if err != nil {
		t.Fatalf("authenticate() error = %v", err)
	}
	if userID != user.ID {
		t.Errorf("authenticate() = %q, want %q", userID, user.ID)
	}
}

func TestHub_AuthenticateAcceptsBearerHeader(t *testing.T) {
	authSvc := auth.NewService("", "test-secret")
	_, user, err := authSvc.Login("admin", "password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token, err := authSvc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	h := NewHub(authSvc)
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if _, err := h.authenticate(req); err != nil {
		t.Errorf("authenticate() error = %v", err)
	}
}

func TestHub_AuthenticateRejectsInvalidToken(t *testing.T) {
	h := NewHub(auth.NewService("", "test-secret"))
	req := httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil)
	if _, err := h.authenticate(req); err == nil {
		t.Error("authenticate() with a garbage token = nil error, want an error")
	}
}

func TestHub_BroadcastRespectsSessionScoping(t *testing.T) {
	h := NewHub(auth.NewService("", "test-secret"))
	go h.Run()

	scoped := &Client{send: make(chan []byte, 1), sessions: map[string]bool{"sess1": true}}
	unscoped := &Client{send: make(chan []byte, 1), sessions: map[string]bool{}}
	h.register <- scoped
	h.register <- unscoped

	h.Publish(Event{Type: "execution", SessionID: "sess2", MsgType: "8"})

	select {
	case <-scoped.send:
		t.Error("scoped client (subscribed to sess1) received an event for sess2")
	case <-time.After(50 * time.Millisecond):
	}

	select {
	case <-unscoped.send:
	case <-time.After(time.Second):
		t.Error("unscoped client did not receive the broadcast event")
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	h := NewHub(auth.NewService("", "test-secret"))
	go h.Run()

	client := &Client{send: make(chan []byte, 1)}
	h.register <- client
	h.unregister <- client

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("send channel yielded a value instead of being closed")
		}
	case <-time.After(time.Second):
		t.Error("send channel was never closed after unregister")
	}
}

func TestHub_PublishDropsWhenBufferFull(t *testing.T) {
	h := NewHub(auth.NewService("", "test-secret"))
	// Do not run h.Run(), so the broadcast channel is never drained.
	for i := 0; i < cap(h.broadcast); i++ {
		h.Publish(Event{Type: "execution", SessionID: "s"})
	}
	// One more publish must not block even though the buffer is full.
	done := make(chan struct{})
	go func() {
		h.Publish(Event{Type: "execution", SessionID: "overflow"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish() blocked on a full buffer instead of dropping the event")
	}
}
