package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"tinyboards/internal/logging"
	"tinyboards/internal/metrics"
	"tinyboards/internal/queens"
	"tinyboards/internal/sandbox"
	"tinyboards/internal/storage"
)

const defaultIdleAfter = 24 * time.Hour

// Option configures a Hub.
type Option func(*Hub)

// WithLevels sets the queens level table.
func WithLevels(l queens.Levels) Option {
	return func(h *Hub) { h.Levels = l }
}

// WithStore records sessions to s.
func WithStore(s *storage.Store) Option {
	return func(h *Hub) { h.Store = s }
}

// WithIdleTimeout sets how long a session may go unseen before Sweep drops it.
func WithIdleTimeout(d time.Duration) Option {
	return func(h *Hub) { h.IdleAfter = d }
}

// NewHub creates a new hub. Idle sessions are only dropped while Run is active.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		Queens:    make(map[string]*QueensGame),
		Chess:     make(map[string]*ChessGame),
		Levels:    queens.DefaultLevels(),
		IdleAfter: defaultIdleAfter,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run sweeps idle sessions every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h.Sweep(ctx)
		}
	}
}

// Sweep drops sessions idle for longer than IdleAfter and returns how many went.
func (h *Hub) Sweep(ctx context.Context) int {
	var gone []*Room
	h.Mu.Lock()
	for id, g := range h.Queens {
		if g.idle(h.IdleAfter) {
			delete(h.Queens, id)
			gone = append(gone, &g.Room)
		}
	}
	for id, g := range h.Chess {
		if g.idle(h.IdleAfter) {
			delete(h.Chess, id)
			gone = append(gone, &g.Room)
		}
	}
	metrics.Sessions.WithLabelValues(KindQueens).Set(float64(len(h.Queens)))
	metrics.Sessions.WithLabelValues(KindChess).Set(float64(len(h.Chess)))
	h.Mu.Unlock()

	for _, r := range gone {
		logging.Debugf("%s %s: dropped after idling", r.Kind, r.ID)
		if id, ok := r.sessionID(); ok {
			r.warn(h.Store.DeactivateSession(ctx, id, time.Now()), "deactivate session")
		}
	}
	return len(gone)
}

func (h *Hub) openRoom(ctx context.Context, r *Room, kind, id string) {
	r.ID = id
	r.Kind = kind
	r.Watchers = make(map[chan []byte]struct{})
	r.LastSeen = time.Now()
	r.store = h.Store
	if sid, ok := r.sessionID(); ok {
		r.warn(h.Store.CreateSession(ctx, sid, kind, 1, r.LastSeen), "create session")
	}
	logging.Session(kind, id).Info("session opened")
}

// GetQueens retrieves an existing queens session or creates a new one
func (h *Hub) GetQueens(ctx context.Context, id string) *QueensGame {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if g, ok := h.Queens[id]; ok {
		return g
	}
	ng := &QueensGame{p: queens.New(h.Levels)}
	h.openRoom(ctx, &ng.Room, KindQueens, id)
	h.Queens[id] = ng
	metrics.Sessions.WithLabelValues(KindQueens).Set(float64(len(h.Queens)))
	return ng
}

// GetChess retrieves an existing chess session or creates a new one
func (h *Hub) GetChess(ctx context.Context, id string) *ChessGame {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if g, ok := h.Chess[id]; ok {
		return g
	}
	ng := &ChessGame{g: sandbox.New()}
	h.openRoom(ctx, &ng.Room, KindChess, id)
	h.Chess[id] = ng
	metrics.Sessions.WithLabelValues(KindChess).Set(float64(len(h.Chess)))
	return ng
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Stats summarizes the live sessions.
func (h *Hub) Stats() Stats {
	h.Mu.Lock()
	qs := make([]*QueensGame, 0, len(h.Queens))
	for _, g := range h.Queens {
		qs = append(qs, g)
	}
	cs := make([]*ChessGame, 0, len(h.Chess))
	for _, g := range h.Chess {
		cs = append(cs, g)
	}
	h.Mu.Unlock()

	out := Stats{QueensSessions: len(qs), ChessSessions: len(cs)}
	placed := make([]int, 0, len(qs))
	levels := make([]int, 0, len(qs))
	for _, g := range qs {
		g.Mu.Lock()
		placed = append(placed, len(g.p.Queens()))
		levels = append(levels, g.p.Level())
		if g.p.Solved() {
			out.SolvedBoards++
		}
		g.Mu.Unlock()
	}
	moves := make([]int, 0, len(cs))
	for _, g := range cs {
		g.Mu.Lock()
		moves = append(moves, len(g.g.History()))
		g.Mu.Unlock()
	}

	out.MeanQueens = mean(placed)
	out.MeanLevel = mean(levels)
	out.MeanMoves = mean(moves)
	if len(moves) > 0 {
		out.MedianMoves, _ = stats.Median(stats.LoadRawData(moves))
	}
	return out
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	m, err := stats.Mean(stats.LoadRawData(xs))
	if err != nil {
		return 0
	}
	return m
}
