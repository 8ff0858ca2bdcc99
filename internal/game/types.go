package game

import (
	"sync"
	"time"

	"tinyboards/internal/queens"
	"tinyboards/internal/sandbox"
	"tinyboards/internal/storage"
)

// Game kinds, also used as URL segments.
const (
	KindQueens = "queens"
	KindChess  = "chess"
)

// Hub manages all live sessions of both games.
type Hub struct {
	Mu        sync.Mutex
	Queens    map[string]*QueensGame
	Chess     map[string]*ChessGame
	Levels    queens.Levels
	Store     *storage.Store
	IdleAfter time.Duration
}

// Room holds what every session has regardless of the game: identity, watchers and
// activity time.
type Room struct {
	Mu       sync.Mutex
	ID       string
	Kind     string
	Watchers map[chan []byte]struct{}
	LastSeen time.Time
	store    *storage.Store
}

// QueensGame is a live eight-queens session.
type QueensGame struct {
	Room
	p *queens.Puzzle
}

// ChessGame is a live chess sandbox session.
type ChessGame struct {
	Room
	g *sandbox.Game
}

// PlaceRequest is a queen placement from a client.
type PlaceRequest struct {
	Index *int `json:"index"`
}

// ClickRequest is a chess cell click from a client.
type ClickRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// QueensState is pushed to watchers of a queens session.
type QueensState struct {
	Kind     string `json:"kind"`
	Game     string `json:"game"`
	ID       string `json:"id"`
	ReturnTo string `json:"returnTo"`
	queens.Snapshot
	LastSeen int64 `json:"lastSeen"`
	Watchers int   `json:"watchers"`
}

// ChessState is pushed to watchers of a chess session.
type ChessState struct {
	Kind     string `json:"kind"`
	Game     string `json:"game"`
	ID       string `json:"id"`
	ReturnTo string `json:"returnTo"`
	sandbox.Snapshot
	LastSeen int64 `json:"lastSeen"`
	Watchers int   `json:"watchers"`
}

// Stats summarizes the live sessions.
type Stats struct {
	QueensSessions int     `json:"queensSessions"`
	ChessSessions  int     `json:"chessSessions"`
	SolvedBoards   int     `json:"solvedBoards"`
	MeanQueens     float64 `json:"meanQueens"`
	MeanLevel      float64 `json:"meanLevel"`
	MeanMoves      float64 `json:"meanMoves"`
	MedianMoves    float64 `json:"medianMoves"`
}
