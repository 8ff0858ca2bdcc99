package sandbox

import (
	"errors"
	"fmt"
)

// MsgInvalidMove is shown to the player when a move is refused.
const MsgInvalidMove = "Invalid move!"

var (
	// ErrInvalidMove is returned when a move is refused.
	ErrInvalidMove = errors.New("invalid move")
	// ErrOffBoard is returned for coordinates outside the board.
	ErrOffBoard = errors.New("square off board")
	// ErrUnknownPiece is returned when decoding a letter that is not a piece.
	ErrUnknownPiece = errors.New("unknown piece")
)

// Click is what a cell click did.
type Click int

const (
	// ClickIgnored means nothing happened.
	ClickIgnored Click = iota
	// ClickSelected means a piece was selected.
	ClickSelected
	// ClickMoved means the selected piece moved.
	ClickMoved
)

func (c Click) String() string {
	switch c {
	case ClickSelected:
		return "selected"
	case ClickMoved:
		return "moved"
	default:
		return "ignored"
	}
}

// MarshalText encodes the click result by name.
func (c Click) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Placed is a piece on a square as recorded in the history.
type Placed struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Piece Piece `json:"piece"`
}

func (p Placed) square() Square { return Square{Row: p.Row, Col: p.Col} }

// MoveRecord remembers the two squares a move touched, as they were before it.
type MoveRecord struct {
	From Placed `json:"from"`
	To   Placed `json:"to"`
}

func (m MoveRecord) String() string {
	s := fmt.Sprintf("%s%s-%s", m.From.Piece, m.From.square(), m.To.square())
	if m.To.Piece != NoPiece {
		s += "x" + m.To.Piece.String()
	}
	return s
}

// Game is one chess sandbox: a board, whose turn it is, the selected piece and the move
// history.
type Game struct {
	board    Board
	turn     Color
	selected *Square
	history  []MoveRecord
}

// New returns a game in the starting position.
func New() *Game {
	g := &Game{}
	g.InitializeBoard()
	return g
}

// InitializeBoard restores the starting position, white to move, with no selection and an
// empty history.
func (g *Game) InitializeBoard() {
	g.board = StartingBoard()
	g.turn = White
	g.selected = nil
	g.history = nil
}

// Board returns a copy of the board.
func (g *Game) Board() Board { return g.board }

// Turn returns the side to move.
func (g *Game) Turn() Color { return g.turn }

// Selected returns the selected square, if any.
func (g *Game) Selected() (Square, bool) {
	if g.selected == nil {
		return Square{}, false
	}
	return *g.selected, true
}

// History returns the executed moves, oldest first.
func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// HandleCellClick moves the selected piece to the clicked square, or selects the clicked
// piece when it belongs to the side to move.
func (g *Game) HandleCellClick(row, col int) (Click, error) {
	to := Square{Row: row, Col: col}
	if g.selected != nil {
		if err := g.MovePiece(row, col); err != nil {
			return ClickIgnored, err
		}
		return ClickMoved, nil
	}
	if !to.OnBoard() {
		return ClickIgnored, ErrOffBoard
	}
	p := g.board.At(to)
	if p == NoPiece || p.Color() != g.turn {
		return ClickIgnored, nil
	}
	g.SelectPiece(to)
	return ClickSelected, nil
}

// SelectPiece marks the square as the origin of the next move, replacing any selection.
func (g *Game) SelectPiece(s Square) {
	g.selected = &s
}

// ClearSelection drops the selection.
func (g *Game) ClearSelection() {
	g.selected = nil
}

// MovePiece moves the selected piece to (row, col). The selection is cleared whether or
// not the move is made.
func (g *Game) MovePiece(row, col int) error {
	defer g.ClearSelection()

	if g.selected == nil {
		return ErrInvalidMove
	}
	from, to := *g.selected, Square{Row: row, Col: col}
	if !to.OnBoard() {
		return ErrOffBoard
	}
	if !g.ValidateMove(from, to) {
		return ErrInvalidMove
	}

	moving := g.board.At(from)
	g.history = append(g.history, MoveRecord{
		From: Placed{Row: from.Row, Col: from.Col, Piece: moving},
		To:   Placed{Row: to.Row, Col: to.Col, Piece: g.board.At(to)},
	})
	g.board.Set(to, moving)
	g.board.Set(from, NoPiece)
	g.turn = g.turn.Other()
	return nil
}

// ValidateMove applies the sandbox rules: a piece may never land on a piece of the side to
// move. A pawn's single step forward onto an empty square is the one pattern checked
// explicitly; anything else is allowed.
func (g *Game) ValidateMove(from, to Square) bool {
	target := g.board.At(to)
	if target != NoPiece && target.Color() == g.turn {
		return false
	}

	if g.board.At(from).IsPawn() {
		dir := -1
		if g.turn == Black {
			dir = 1
		}
		if to.Row == from.Row+dir && to.Col == from.Col && target == NoPiece {
			return true
		}
		// TODO: diagonal captures and double steps once pawns get real rules.
	}
	return true
}

// Undo reverts the last move, restoring both squares and the turn. It reports false when
// there is nothing to undo.
func (g *Game) Undo() bool {
	if len(g.history) == 0 {
		return false
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.board.Set(last.From.square(), last.From.Piece)
	g.board.Set(last.To.square(), last.To.Piece)
	g.turn = g.turn.Other()
	g.selected = nil
	return true
}

// FEN returns the position in Forsyth-Edwards notation. Castling and en passant do not
// exist in the sandbox and are always "-".
func (g *Game) FEN() string {
	side := "w"
	if g.turn == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 %d", g.board.Placement(), side, len(g.history)/2+1)
}

// Cell is the render model of one square.
type Cell struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Light    bool   `json:"light"`
	Piece    Piece  `json:"piece"`
	Color    string `json:"color,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// Cell returns the render model of (row, col).
func (g *Game) Cell(row, col int) Cell {
	p := g.board[row][col]
	c := Cell{
		Row:   row,
		Col:   col,
		Light: (row+col)%2 == 0,
		Piece: p,
	}
	if p != NoPiece {
		c.Color = p.Color().String()
		c.Symbol = p.Symbol()
	}
	if s, ok := g.Selected(); ok && s.Row == row && s.Col == col {
		c.Selected = true
	}
	return c
}

// Snapshot is the JSON view of a game.
type Snapshot struct {
	Cells    [Size][Size]Cell `json:"cells"`
	Turn     Color            `json:"turn"`
	Selected *Square          `json:"selected,omitempty"`
	Moves    []string         `json:"moves"`
	FEN      string           `json:"fen"`
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Turn:  g.turn,
		Moves: make([]string, 0, len(g.history)),
		FEN:   g.FEN(),
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			s.Cells[r][c] = g.Cell(r, c)
		}
	}
	if sel, ok := g.Selected(); ok {
		s.Selected = &sel
	}
	for _, m := range g.history {
		s.Moves = append(s.Moves, m.String())
	}
	return s
}
