package queens

import (
	"errors"
)

// User-visible feedback.
const (
	MsgInvalidMove  = "Invalid move! Queens cannot attack each other."
	MsgLevelDone    = "Congratulations! You completed this level!"
	MsgAllLevelDone = "You completed all levels!"
)

var (
	// ErrIndexOutOfRange is returned for a cell index outside the board.
	ErrIndexOutOfRange = errors.New("cell index out of range")
	// ErrLevelOutOfRange is returned for a level the table does not define.
	ErrLevelOutOfRange = errors.New("level out of range")
)

// Outcome is the result of a placement attempt.
type Outcome int

const (
	// Ignored means the cell was blocked or already held a queen.
	Ignored Outcome = iota
	// Rejected means the queen would attack an existing one.
	Rejected
	// Placed means the queen was added.
	Placed
	// Solved means the queen was added and completed the board.
	Solved
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Rejected:
		return "rejected"
	case Placed:
		return "placed"
	case Solved:
		return "solved"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Puzzle holds the state of one eight-queens game.
type Puzzle struct {
	levels   Levels
	level    int
	queens   []int
	occupied [Cells]bool
	feedback string
}

// New creates a puzzle at level 1. A nil or empty table falls back to DefaultLevels.
func New(levels Levels) *Puzzle {
	if len(levels) == 0 {
		levels = DefaultLevels()
	}
	p := &Puzzle{levels: levels}
	_ = p.CreateBoard(1)
	return p
}

// CreateBoard rebuilds the board for the given 1-indexed level, discarding every queen
// and the feedback text.
func (p *Puzzle) CreateBoard(level int) error {
	if level < 1 || level > len(p.levels) {
		return ErrLevelOutOfRange
	}
	p.level = level
	p.queens = p.queens[:0]
	p.occupied = [Cells]bool{}
	p.feedback = ""
	return nil
}

// Level returns the current level.
func (p *Puzzle) Level() int { return p.level }

// MaxLevel returns the last level of the table.
func (p *Puzzle) MaxLevel() int { return len(p.levels) }

// Feedback returns the message currently shown to the player.
func (p *Puzzle) Feedback() string { return p.feedback }

// Queens returns the placed queens in placement order.
func (p *Puzzle) Queens() []int {
	out := make([]int, len(p.queens))
	copy(out, p.queens)
	return out
}

// Solved reports whether all BoardSize queens are on the board.
func (p *Puzzle) Solved() bool { return len(p.queens) == BoardSize }

// Blocked reports whether the cell is unusable on the current level.
func (p *Puzzle) Blocked(index int) bool {
	if index < 0 || index >= Cells {
		return false
	}
	return p.levels[p.level-1][index]
}

// HasQueen reports whether the cell holds a queen.
func (p *Puzzle) HasQueen(index int) bool {
	if index < 0 || index >= Cells {
		return false
	}
	return p.occupied[index]
}

// PlaceQueen tries to put a queen on the cell.
func (p *Puzzle) PlaceQueen(index int) (Outcome, error) {
	if index < 0 || index >= Cells {
		return Ignored, ErrIndexOutOfRange
	}
	if p.Blocked(index) || p.occupied[index] {
		return Ignored, nil
	}
	if !p.IsValidMove(index) {
		p.feedback = MsgInvalidMove
		return Rejected, nil
	}

	p.queens = append(p.queens, index)
	p.occupied[index] = true
	p.feedback = ""

	if p.Solved() {
		p.feedback = MsgLevelDone
		return Solved, nil
	}
	return Placed, nil
}

// IsValidMove reports whether a queen on index would be safe from every placed queen.
func (p *Puzzle) IsValidMove(index int) bool {
	for _, q := range p.queens {
		if Attacks(q, index) {
			return false
		}
	}
	return true
}

// Reset rebuilds the current level.
func (p *Puzzle) Reset() {
	_ = p.CreateBoard(p.level)
}

// Advance moves to the next level. On the last level it leaves the level as is, sets the
// completion message and returns false.
func (p *Puzzle) Advance() bool {
	if p.level >= len(p.levels) {
		p.feedback = MsgAllLevelDone
		return false
	}
	_ = p.CreateBoard(p.level + 1)
	return true
}

// Attacks reports whether queens on cells a and b share a row, column or diagonal.
func Attacks(a, b int) bool {
	ar, ac := a/BoardSize, a%BoardSize
	br, bc := b/BoardSize, b%BoardSize
	return ar == br || ac == bc || abs(ar-br) == abs(ac-bc)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
