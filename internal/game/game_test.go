package game

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tinyboards/internal/queens"
	"tinyboards/internal/sandbox"
)

func TestPlaceValid(t *testing.T) {
	g := NewHub().GetQueens(context.Background(), "q")
	out, state, err := g.Place(context.Background(), 0)
	if err != nil {
		t.Fatalf("expected placement to succeed, got error: %v", err)
	}
	if out != queens.Placed {
		t.Fatalf("expected placed, got %s", out)
	}
	if len(state.Queens) != 1 || state.Queens[0] != 0 {
		t.Fatalf("unexpected queens %v", state.Queens)
	}
	if state.ReturnTo != "/" {
		t.Fatalf("expected queens to return to /, got %s", state.ReturnTo)
	}
}

func TestPlaceAttacked(t *testing.T) {
	g := NewHub().GetQueens(context.Background(), "q")
	_, _, _ = g.Place(context.Background(), 0)
	out, state, err := g.Place(context.Background(), 63)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != queens.Rejected {
		t.Fatalf("expected rejected, got %s", out)
	}
	if state.Feedback != queens.MsgInvalidMove {
		t.Fatalf("unexpected feedback %q", state.Feedback)
	}
}

func TestPlaceOutOfRange(t *testing.T) {
	g := NewHub().GetQueens(context.Background(), "q")
	if _, _, err := g.Place(context.Background(), 99); !errors.Is(err, queens.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestAdvanceToEnd(t *testing.T) {
	g := NewHub(WithLevels(make(queens.Levels, 2))).GetQueens(context.Background(), "q")
	if ok, state := g.Advance(context.Background()); !ok || state.Level != 2 {
		t.Fatalf("expected to reach level 2, got %v %d", ok, state.Level)
	}
	ok, state := g.Advance(context.Background())
	if ok {
		t.Fatalf("advance past the last level must fail")
	}
	if state.Level != 2 || state.Feedback != queens.MsgAllLevelDone {
		t.Fatalf("unexpected state level=%d feedback=%q", state.Level, state.Feedback)
	}
}

func TestQueensReset(t *testing.T) {
	g := NewHub().GetQueens(context.Background(), "q")
	_, _, _ = g.Place(context.Background(), 0)
	state := g.Reset(context.Background())
	if len(state.Queens) != 0 || state.Feedback != "" {
		t.Fatalf("reset left state behind: %+v", state.Queens)
	}
}

func TestClickMoveAndUndo(t *testing.T) {
	ctx := context.Background()
	g := NewHub().GetChess(ctx, "c")

	if res, _, err := g.Click(ctx, 6, 4); err != nil || res != sandbox.ClickSelected {
		t.Fatalf("expected selection, got %s %v", res, err)
	}
	res, state, err := g.Click(ctx, 4, 4)
	if err != nil || res != sandbox.ClickMoved {
		t.Fatalf("expected move, got %s %v", res, err)
	}
	if state.Turn != sandbox.Black {
		t.Fatalf("expected black to move")
	}
	if len(state.Moves) != 1 || state.Moves[0] != "pe2-e4" {
		t.Fatalf("unexpected moves %v", state.Moves)
	}
	if state.ReturnTo != "/menu" {
		t.Fatalf("expected chess to return to /menu, got %s", state.ReturnTo)
	}

	ok, state := g.Undo(ctx)
	if !ok {
		t.Fatalf("expected undo to succeed")
	}
	if state.Turn != sandbox.White || len(state.Moves) != 0 {
		t.Fatalf("undo did not restore the game")
	}
	if ok, _ := g.Undo(ctx); ok {
		t.Fatalf("undo on empty history must be a no-op")
	}
}

func TestClickInvalidMove(t *testing.T) {
	ctx := context.Background()
	g := NewHub().GetChess(ctx, "c")
	g.Click(ctx, 7, 0)
	_, state, err := g.Click(ctx, 7, 1)
	if !errors.Is(err, sandbox.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if state.Selected != nil {
		t.Fatalf("selection must be cleared after a failed move")
	}
}

func TestChessReset(t *testing.T) {
	ctx := context.Background()
	g := NewHub().GetChess(ctx, "c")
	g.Click(ctx, 6, 4)
	g.Click(ctx, 5, 4)
	state := g.Reset(ctx)
	if len(state.Moves) != 0 || state.Turn != sandbox.White {
		t.Fatalf("reset did not restore the starting position")
	}
}

func TestBroadcastReachesWatchers(t *testing.T) {
	ctx := context.Background()
	g := NewHub().GetChess(ctx, "c")
	ch := make(chan []byte, 1)
	g.AddWatcher(ch)
	defer g.RemoveWatcher(ch)

	g.Click(ctx, 6, 4)
	g.Broadcast()

	select {
	case msg := <-ch:
		var st map[string]any
		if err := json.Unmarshal(msg, &st); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if st["kind"] != "state" || st["game"] != KindChess {
			t.Fatalf("unexpected message %v", st)
		}
		if st["selected"] == nil {
			t.Fatalf("expected selection in broadcast")
		}
		if st["watchers"].(float64) != 1 {
			t.Fatalf("expected one watcher, got %v", st["watchers"])
		}
	case <-time.After(time.Second):
		t.Fatalf("no broadcast received")
	}

	// a full watcher is skipped rather than blocking the game
	ch <- []byte("pending")
	g.Broadcast()
}
