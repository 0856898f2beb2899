package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestVisitorSessionMintsID(t *testing.T) {
	var captured string
	handler := VisitorSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured == "" {
		t.Fatal("expected a session id in context")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Fatalf("expected uuid session id, got %q", captured)
	}
	if resp.Header().Get("X-Session-Id") != captured {
		t.Fatal("expected session id echoed on response")
	}
}

func TestVisitorSessionKeepsInboundID(t *testing.T) {
	inbound := uuid.NewString()

	var captured string
	handler := VisitorSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", inbound)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if captured != inbound {
		t.Fatalf("expected inbound session id, got %q", captured)
	}
}

func TestVisitorSessionReplacesMalformedID(t *testing.T) {
	var captured string
	handler := VisitorSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", "../../etc/passwd")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if _, err := uuid.Parse(captured); err != nil {
		t.Fatalf("expected minted uuid session id, got %q", captured)
	}
}
