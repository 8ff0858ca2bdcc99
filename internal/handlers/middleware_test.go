package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusTeapot, map[string]any{"ok": true})
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected 418 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if w.Body.String() != "{\"ok\":true}\n" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	if id := w.Header().Get("X-Request-ID"); len(id) != 16 {
		t.Fatalf("expected a 16 char request id got %q", id)
	}

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if id := w.Header().Get("X-Request-ID"); id != "abc" {
		t.Fatalf("expected the caller's id to be kept got %q", id)
	}
}
