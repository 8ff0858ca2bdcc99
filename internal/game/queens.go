package game

import (
	"context"
	"time"

	"tinyboards/internal/logging"
	"tinyboards/internal/metrics"
	"tinyboards/internal/queens"
)

// StateLocked returns the current session state (must be called with lock held)
func (g *QueensGame) StateLocked() QueensState {
	return QueensState{
		Kind:     "state",
		Game:     KindQueens,
		ID:       g.ID,
		ReturnTo: returnPath(KindQueens),
		Snapshot: g.p.Snapshot(),
		LastSeen: g.LastSeen.UnixMilli(),
		Watchers: len(g.Watchers),
	}
}

// State returns the current session state.
func (g *QueensGame) State() QueensState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.StateLocked()
}

// Broadcast sends the current state to all watchers
func (g *QueensGame) Broadcast() {
	g.Mu.Lock()
	g.sendLocked(g.StateLocked())
	g.Mu.Unlock()
}

// Place puts a queen on the cell and returns what happened and the resulting state.
func (g *QueensGame) Place(ctx context.Context, index int) (queens.Outcome, QueensState, error) {
	g.Mu.Lock()
	out, err := g.p.PlaceQueen(index)
	level := g.p.Level()
	state := g.StateLocked()
	g.Mu.Unlock()
	if err != nil {
		return out, state, err
	}

	metrics.Placements.WithLabelValues(out.String()).Inc()
	logging.Debugf("queens %s: cell %d on level %d %s", g.ID, index, level, out)

	if id, ok := g.sessionID(); ok && out != queens.Ignored {
		g.warn(g.store.RecordPlacement(ctx, id, level, index, out.String()), "record placement")
		if out == queens.Solved {
			g.warn(g.store.CompleteSession(ctx, id, "solved", time.Now()), "complete session")
		}
	}
	return out, state, nil
}

// Reset rebuilds the current level.
func (g *QueensGame) Reset(ctx context.Context) QueensState {
	g.Mu.Lock()
	g.p.Reset()
	level := g.p.Level()
	state := g.StateLocked()
	g.Mu.Unlock()

	logging.Debugf("queens %s: level %d reset", g.ID, level)
	if id, ok := g.sessionID(); ok {
		g.warn(g.store.SetLevel(ctx, id, level), "reset level")
	}
	return state
}

// Advance moves to the next level, reporting false when the last level was already
// reached.
func (g *QueensGame) Advance(ctx context.Context) (bool, QueensState) {
	g.Mu.Lock()
	moved := g.p.Advance()
	level := g.p.Level()
	state := g.StateLocked()
	g.Mu.Unlock()

	if !moved {
		logging.Debugf("queens %s: all %d levels done", g.ID, level)
		return false, state
	}
	logging.Debugf("queens %s: advanced to level %d", g.ID, level)
	if id, ok := g.sessionID(); ok {
		g.warn(g.store.SetLevel(ctx, id, level), "advance level")
	}
	return true, state
}
