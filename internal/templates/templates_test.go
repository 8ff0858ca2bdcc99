package templates

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteGameHTML(t *testing.T) {
	SetCommit("abc1234")
	for _, kind := range []string{"queens", "chess"} {
		w := httptest.NewRecorder()
		WriteGameHTML(w, kind, "g42")
		if w.Code != 200 {
			t.Fatalf("%s: expected 200 got %d", kind, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, `"g42"`) {
			t.Fatalf("%s: id missing from page", kind)
		}
		if !strings.Contains(body, "/sse/"+kind+"/") {
			t.Fatalf("%s: page does not subscribe to its stream", kind)
		}
		if !strings.Contains(body, "abc1234") {
			t.Fatalf("%s: commit missing from footer", kind)
		}
	}
}

func TestWriteGameHTMLUnknownKind(t *testing.T) {
	w := httptest.NewRecorder()
	WriteGameHTML(w, "checkers", "x")
	if w.Code != 500 {
		t.Fatalf("expected 500 got %d", w.Code)
	}
}
