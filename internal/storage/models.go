package storage

import (
	"time"

	"github.com/google/uuid"
)

// Session is one queens or chess game opened in a browser.
type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind        string    `gorm:"index"`
	Level       int
	Status      string
	Active      bool `gorm:"index"`
	CompletedAt *time.Time
	LastSeen    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Placements  []Placement
	Moves       []Move
}

// Placement stores a queen placement attempt.
type Placement struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;index"`
	Level     int
	Cell      int
	Outcome   string
	CreatedAt time.Time
}

// Move stores an executed chess sandbox move. Undone moves are kept and flagged.
type Move struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;index"`
	Number    int
	Piece     string
	FromRow   int
	FromCol   int
	ToRow     int
	ToCol     int
	Captured  string
	Undone    bool `gorm:"index"`
	CreatedAt time.Time
}
