package game

import (
	"context"
	"errors"

	"tinyboards/internal/logging"
	"tinyboards/internal/metrics"
	"tinyboards/internal/sandbox"
	"tinyboards/internal/storage"
)

// StateLocked returns the current session state (must be called with lock held)
func (g *ChessGame) StateLocked() ChessState {
	return ChessState{
		Kind:     "state",
		Game:     KindChess,
		ID:       g.ID,
		ReturnTo: returnPath(KindChess),
		Snapshot: g.g.Snapshot(),
		LastSeen: g.LastSeen.UnixMilli(),
		Watchers: len(g.Watchers),
	}
}

// State returns the current session state.
func (g *ChessGame) State() ChessState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.StateLocked()
}

// Broadcast sends the current state to all watchers
func (g *ChessGame) Broadcast() {
	g.Mu.Lock()
	g.sendLocked(g.StateLocked())
	g.Mu.Unlock()
}

// Click handles a click on (row, col): selecting a piece or moving the selected one.
// A refused move returns sandbox.ErrInvalidMove together with the unchanged state.
func (g *ChessGame) Click(ctx context.Context, row, col int) (sandbox.Click, ChessState, error) {
	g.Mu.Lock()
	res, err := g.g.HandleCellClick(row, col)
	var last sandbox.MoveRecord
	history := g.g.History()
	if res == sandbox.ClickMoved {
		last = history[len(history)-1]
	}
	state := g.StateLocked()
	g.Mu.Unlock()

	switch {
	case errors.Is(err, sandbox.ErrInvalidMove):
		metrics.Moves.WithLabelValues("invalid").Inc()
		logging.Debugf("chess %s: invalid move to %d,%d", g.ID, row, col)
		return res, state, err
	case err != nil:
		return res, state, err
	}

	metrics.Moves.WithLabelValues(res.String()).Inc()
	if res != sandbox.ClickMoved {
		return res, state, nil
	}

	logging.Debugf("chess %s: %s, fen %s", g.ID, last, state.FEN)
	if id, ok := g.sessionID(); ok {
		g.warn(g.store.RecordMove(ctx, id, len(history), storage.Move{
			Piece:    last.From.Piece.String(),
			FromRow:  last.From.Row,
			FromCol:  last.From.Col,
			ToRow:    last.To.Row,
			ToCol:    last.To.Col,
			Captured: last.To.Piece.String(),
		}), "record move")
	}
	return res, state, nil
}

// Undo reverts the last move. It reports false when the history was empty.
func (g *ChessGame) Undo(ctx context.Context) (bool, ChessState) {
	g.Mu.Lock()
	number := len(g.g.History())
	undone := g.g.Undo()
	state := g.StateLocked()
	g.Mu.Unlock()

	if !undone {
		return false, state
	}
	metrics.Undos.Inc()
	logging.Debugf("chess %s: undo move %d", g.ID, number)
	if id, ok := g.sessionID(); ok {
		g.warn(g.store.UndoMove(ctx, id, number), "undo move")
	}
	return true, state
}

// Reset restores the starting position.
func (g *ChessGame) Reset(ctx context.Context) ChessState {
	g.Mu.Lock()
	g.g.InitializeBoard()
	state := g.StateLocked()
	g.Mu.Unlock()

	logging.Debugf("chess %s: reset - FEN: %s", g.ID, state.FEN)
	if id, ok := g.sessionID(); ok {
		g.warn(g.store.ResetMoves(ctx, id), "reset moves")
	}
	return state
}
