package sandbox

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// Size is the number of rows and columns.
const Size = 8

// Board maps rows and columns to pieces. Row 0 is the black back rank.
type Board [Size][Size]Piece

// Square addresses a board cell.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// OnBoard reports whether the square lies inside the board.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// String returns algebraic notation, a1 being row 7 col 0.
func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, Size-s.Row)
}

func (s Square) chessSquare() chess.Square {
	return chess.NewSquare(chess.File(s.Col), chess.Rank(Size-1-s.Row))
}

var startRows = [Size]string{
	"RNBQKBNR",
	"PPPPPPPP",
	"        ",
	"        ",
	"        ",
	"        ",
	"pppppppp",
	"rnbqkbnr",
}

// StartingBoard returns the initial layout.
func StartingBoard() Board {
	var b Board
	for r, line := range startRows {
		for c := 0; c < Size; c++ {
			if line[c] != ' ' {
				b[r][c] = Piece(line[c])
			}
		}
	}
	return b
}

// At returns the piece on a square.
func (b *Board) At(s Square) Piece { return b[s.Row][s.Col] }

// Set puts a piece, or NoPiece, on a square.
func (b *Board) Set(s Square, p Piece) { b[s.Row][s.Col] = p }

func (b *Board) chessBoard() *chess.Board {
	m := make(map[chess.Square]chess.Piece)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; p != NoPiece {
				m[Square{Row: r, Col: c}.chessSquare()] = p.chessPiece()
			}
		}
	}
	return chess.NewBoard(m)
}

// Placement returns the FEN piece placement field.
func (b *Board) Placement() string {
	return b.chessBoard().String()
}

// Draw returns a text diagram of the board.
func (b *Board) Draw() string {
	return b.chessBoard().Draw()
}

// String renders the board with the sandbox letters, one row per line, '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; p != NoPiece {
				sb.WriteByte(byte(p))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
