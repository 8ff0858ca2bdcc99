package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"tinyboards/internal/game"
	"tinyboards/internal/logging"
	"tinyboards/internal/queens"
	"tinyboards/internal/sandbox"
	"tinyboards/internal/storage"
	"tinyboards/internal/templates"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub   *game.Hub
	Store *storage.Store
}

// NewHandler creates a new handler instance
func NewHandler(hub *game.Hub) *Handler {
	return &Handler{Hub: hub, Store: hub.Store}
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/new/", h.HandleNew)
	mux.HandleFunc("/sse/", h.HandleSSE)
	mux.HandleFunc("/queens/", h.HandleQueens)
	mux.HandleFunc("/chess/", h.HandleChess)
	mux.HandleFunc("/api/levels", h.HandleLevels)
	mux.HandleFunc("/api/stats", h.HandleStats)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.HandleFunc("/", h.HandlePage)
}

// HandleNew creates a new session id and redirects to it
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	kind := strings.Trim(strings.TrimPrefix(r.URL.Path, "/new/"), "/")
	if kind != game.KindQueens && kind != game.KindChess {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/"+kind+"/"+game.NewID(), http.StatusFound)
}

// HandlePage serves the home page, which doubles as the chess menu
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	switch strings.TrimPrefix(r.URL.Path, "/") {
	case "", "index.html", "menu", "menu.html":
		templates.WriteHomeHTML(w)
	default:
		http.NotFound(w, r)
	}
}

// splitPath turns "/queens/{id}/{action}" into id and action.
func splitPath(path, prefix string) (id, action string) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	id, action, _ = strings.Cut(rest, "/")
	return id, action
}

var (
	queensActions = map[string]bool{"place": true, "reset": true, "next": true}
	chessActions  = map[string]bool{"click": true, "undo": true, "reset": true}
)

// HandleQueens serves the queens page and its actions
func (h *Handler) HandleQueens(w http.ResponseWriter, r *http.Request) {
	id, action := splitPath(r.URL.Path, "/queens/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if action == "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		templates.WriteGameHTML(w, game.KindQueens, id)
		return
	}
	if !queensActions[action] {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	g := h.Hub.GetQueens(r.Context(), id)
	g.Touch()
	switch action {
	case "place":
		var m game.PlaceRequest
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil || m.Index == nil {
			WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
			return
		}
		out, state, err := g.Place(r.Context(), *m.Index)
		if err != nil {
			WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error(), "state": state})
			return
		}
		go g.Broadcast()
		WriteJSON(w, http.StatusOK, map[string]any{
			"ok":      out == queens.Placed || out == queens.Solved,
			"outcome": out,
			"message": state.Feedback,
			"state":   state,
		})
	case "reset":
		state := g.Reset(r.Context())
		go g.Broadcast()
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": state})
	case "next":
		moved, state := g.Advance(r.Context())
		go g.Broadcast()
		WriteJSON(w, http.StatusOK, map[string]any{"ok": moved, "message": state.Feedback, "state": state})
	default:
		http.NotFound(w, r)
	}
}

// HandleChess serves the chess page and its actions
func (h *Handler) HandleChess(w http.ResponseWriter, r *http.Request) {
	id, action := splitPath(r.URL.Path, "/chess/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if action == "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		templates.WriteGameHTML(w, game.KindChess, id)
		return
	}
	if !chessActions[action] {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	g := h.Hub.GetChess(r.Context(), id)
	g.Touch()
	switch action {
	case "click":
		var m game.ClickRequest
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil || m.Row == nil || m.Col == nil {
			WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "bad json"})
			return
		}
		res, state, err := g.Click(r.Context(), *m.Row, *m.Col)
		go g.Broadcast()
		if errors.Is(err, sandbox.ErrInvalidMove) {
			WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error(), "message": sandbox.MsgInvalidMove, "state": state})
			return
		}
		if err != nil {
			WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error(), "state": state})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "result": res, "state": state})
	case "undo":
		undone, state := g.Undo(r.Context())
		go g.Broadcast()
		WriteJSON(w, http.StatusOK, map[string]any{"ok": undone, "state": state})
	case "reset":
		state := g.Reset(r.Context())
		go g.Broadcast()
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": state})
	default:
		http.NotFound(w, r)
	}
}

// watched is what the SSE stream needs from a session.
type watched interface {
	AddWatcher(ch chan []byte)
	RemoveWatcher(ch chan []byte)
	Touch()
}

// HandleSSE handles Server-Sent Events for real-time state updates
func (h *Handler) HandleSSE(w http.ResponseWriter, r *http.Request) {
	kind, id := splitPath(r.URL.Path, "/sse/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	var (
		g     watched
		state func() any
	)
	switch kind {
	case game.KindQueens:
		q := h.Hub.GetQueens(r.Context(), id)
		g, state = q, func() any { return q.State() }
	case game.KindChess:
		c := h.Hub.GetChess(r.Context(), id)
		g, state = c, func() any { return c.State() }
	default:
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan []byte, 16)
	g.AddWatcher(ch)
	defer g.RemoveWatcher(ch)

	initial, _ := json.Marshal(state())
	_, _ = fmt.Fprintf(w, "data: %s\n\n", initial)
	flusher.Flush()

	g.Touch()
	logging.Session(kind, id).WithField("ip", ClientIP(r)).Debug("watcher connected")

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// heartbeat
			_, _ = w.Write([]byte("data: {}\n\n"))
			flusher.Flush()
			g.Touch()
		case msg := <-ch:
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

// HandleLevels lists the queens level table
func (h *Handler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	type level struct {
		Level   int   `json:"level"`
		Blocked []int `json:"blocked"`
	}
	out := make([]level, 0, len(h.Hub.Levels))
	for i, l := range h.Hub.Levels {
		lv := level{Level: i + 1, Blocked: []int{}}
		for idx, b := range l {
			if b {
				lv.Blocked = append(lv.Blocked, idx)
			}
		}
		out = append(out, lv)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "levels": out})
}

// HandleStats reports live and stored session statistics
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	stored, err := h.Store.FetchStats(r.Context())
	if err != nil {
		log.WithError(err).Warn("fetch stats")
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "live": h.Hub.Stats(), "stored": stored})
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
