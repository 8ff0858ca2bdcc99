package queens

import (
	"strconv"
	"strings"
)

// GridSize is the rendered grid width including the label border.
const GridSize = BoardSize + 2

// GridCell is one square of the rendered grid. Border squares only carry a Label.
type GridCell struct {
	Label   string `json:"label,omitempty"`
	Border  bool   `json:"border,omitempty"`
	Index   int    `json:"index"`
	Dark    bool   `json:"dark,omitempty"`
	Blocked bool   `json:"blocked,omitempty"`
	Queen   bool   `json:"queen,omitempty"`
}

// Grid returns the GridSize x GridSize render model. Columns are lettered A-H along the
// top and bottom, rows numbered 1-8 from the bottom along both sides.
func (p *Puzzle) Grid() [GridSize][GridSize]GridCell {
	var g [GridSize][GridSize]GridCell
	inner := func(n int) bool { return n > 0 && n < GridSize-1 }
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := &g[row][col]
			c.Index = -1
			switch {
			case (row == 0 || row == GridSize-1) && inner(col):
				c.Border = true
				c.Label = string(rune('A' + col - 1))
			case (col == 0 || col == GridSize-1) && inner(row):
				c.Border = true
				c.Label = strconv.Itoa(GridSize - 1 - row)
			case !inner(row) || !inner(col):
				c.Border = true
			default:
				idx := (row-1)*BoardSize + (col - 1)
				c.Index = idx
				c.Dark = (row+col)%2 == 0
				c.Blocked = p.Blocked(idx)
				c.Queen = p.HasQueen(idx)
			}
		}
	}
	return g
}

// String draws the board as text: Q for a queen, # for a blocked cell.
func (p *Puzzle) String() string {
	var sb strings.Builder
	for _, row := range p.Grid() {
		for _, c := range row {
			switch {
			case c.Border && c.Label != "":
				sb.WriteString(c.Label)
			case c.Border:
				sb.WriteByte(' ')
			case c.Queen:
				sb.WriteByte('Q')
			case c.Blocked:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Snapshot is the JSON view of a puzzle.
type Snapshot struct {
	Level    int                          `json:"level"`
	MaxLevel int                          `json:"maxLevel"`
	Queens   []int                        `json:"queens"`
	Feedback string                       `json:"feedback"`
	Solved   bool                         `json:"solved"`
	Grid     [GridSize][GridSize]GridCell `json:"grid"`
}

// Snapshot captures the current state.
func (p *Puzzle) Snapshot() Snapshot {
	return Snapshot{
		Level:    p.level,
		MaxLevel: len(p.levels),
		Queens:   p.Queens(),
		Feedback: p.feedback,
		Solved:   p.Solved(),
		Grid:     p.Grid(),
	}
}
