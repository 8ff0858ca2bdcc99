package sandbox

import (
	"unicode"

	"github.com/corentings/chess/v2"
)

// Color is the side a piece belongs to.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Piece is a piece letter. Lower case letters are white, upper case are black.
type Piece byte

// NoPiece marks an empty square.
const NoPiece Piece = 0

var symbols = map[Piece]string{
	'p': "♟", 'P': "♙",
	'r': "♜", 'R': "♖",
	'n': "♞", 'N': "♘",
	'b': "♝", 'B': "♗",
	'q': "♛", 'Q': "♕",
	'k': "♚", 'K': "♔",
}

// Valid reports whether p is one of the twelve piece letters.
func (p Piece) Valid() bool {
	_, ok := symbols[p]
	return ok
}

// Color returns the owner of the piece.
func (p Piece) Color() Color {
	if unicode.IsUpper(rune(p)) {
		return Black
	}
	return White
}

// Kind returns the lower case letter of the piece regardless of color.
func (p Piece) Kind() byte {
	return byte(unicode.ToLower(rune(p)))
}

// IsPawn reports whether the piece is a pawn of either color.
func (p Piece) IsPawn() bool { return p.Kind() == 'p' }

// Symbol returns the glyph drawn for the piece.
func (p Piece) Symbol() string { return symbols[p] }

func (p Piece) String() string {
	if p == NoPiece {
		return ""
	}
	return string(rune(p))
}

// MarshalText encodes the piece as its letter, empty for NoPiece.
func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a piece letter.
func (p *Piece) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = NoPiece
		return nil
	}
	if len(b) != 1 || !Piece(b[0]).Valid() {
		return ErrUnknownPiece
	}
	*p = Piece(b[0])
	return nil
}

var pieceTypes = map[byte]chess.PieceType{
	'k': chess.King,
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
	'p': chess.Pawn,
}

// chessPiece converts to the chess library's piece. The library uses its own colors, so a
// sandbox white piece becomes a library white piece even though the letter case differs
// from FEN.
func (p Piece) chessPiece() chess.Piece {
	if !p.Valid() {
		return chess.NoPiece
	}
	color := chess.White
	if p.Color() == Black {
		color = chess.Black
	}
	return chess.NewPiece(pieceTypes[p.Kind()], color)
}
