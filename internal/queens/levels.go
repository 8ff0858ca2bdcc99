package queens

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// BoardSize is the number of rows and columns on the puzzle board.
	BoardSize = 8
	// Cells is the number of playable cells.
	Cells = BoardSize * BoardSize
	// MaxLevels is the length of the default level table.
	MaxLevels = 12
)

// Layout flags the blocked cells of a level, indexed row-major.
type Layout [Cells]bool

// Levels is an ordered level table. Level n uses Levels[n-1].
type Levels []Layout

var errEmptyLevels = errors.New("level table is empty")

// DefaultLevels returns the built-in table: MaxLevels layouts with nothing blocked.
func DefaultLevels() Levels {
	return make(Levels, MaxLevels)
}

type levelFile struct {
	Levels []struct {
		Blocked []int `yaml:"blocked"`
	} `yaml:"levels"`
}

// ParseLevels reads a level table from YAML:
//
//	levels:
//	  - blocked: [0, 9, 18]
//	  - blocked: []
func ParseLevels(data []byte) (Levels, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, errEmptyLevels
	}
	out := make(Levels, len(f.Levels))
	for i, lvl := range f.Levels {
		for _, idx := range lvl.Blocked {
			if idx < 0 || idx >= Cells {
				return nil, fmt.Errorf("level %d: blocked cell %d: %w", i+1, idx, ErrIndexOutOfRange)
			}
			out[i][idx] = true
		}
	}
	return out, nil
}

// LoadLevels reads a level table from a YAML file.
func LoadLevels(path string) (Levels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLevels(data)
}

// BlockedCount reports how many cells the layout blocks.
func (l Layout) BlockedCount() int {
	n := 0
	for _, b := range l {
		if b {
			n++
		}
	}
	return n
}
