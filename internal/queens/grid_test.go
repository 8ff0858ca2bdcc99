package queens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLabels(t *testing.T) {
	g := New(nil).Grid()

	assert.Equal(t, "A", g[0][1].Label)
	assert.Equal(t, "H", g[0][8].Label)
	assert.Equal(t, "A", g[GridSize-1][1].Label)
	assert.Equal(t, "8", g[1][0].Label)
	assert.Equal(t, "1", g[8][0].Label)
	assert.Equal(t, "1", g[8][GridSize-1].Label)
	assert.Empty(t, g[0][0].Label)
	assert.True(t, g[0][0].Border)
}

func TestGridCells(t *testing.T) {
	levels := DefaultLevels()
	levels[0][63] = true
	p := New(levels)
	_, err := p.PlaceQueen(0)
	require.NoError(t, err)

	g := p.Grid()
	first := g[1][1]
	assert.Equal(t, 0, first.Index)
	assert.True(t, first.Dark)
	assert.True(t, first.Queen)
	assert.False(t, g[1][2].Dark)

	last := g[8][8]
	assert.Equal(t, 63, last.Index)
	assert.True(t, last.Blocked)
}

func TestParseLevels(t *testing.T) {
	levels, err := ParseLevels([]byte(`
levels:
  - blocked: [0, 9]
  - blocked: []
`))
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.True(t, levels[0][0])
	assert.True(t, levels[0][9])
	assert.Equal(t, 2, levels[0].BlockedCount())
	assert.Zero(t, levels[1].BlockedCount())

	p := New(levels)
	assert.True(t, p.Advance())
	assert.False(t, p.Advance())
	assert.Equal(t, MsgAllLevelDone, p.Feedback())
}

func TestParseLevelsErrors(t *testing.T) {
	_, err := ParseLevels([]byte(`levels: []`))
	assert.Error(t, err)

	_, err = ParseLevels([]byte("levels:\n  - blocked: [64]\n"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = ParseLevels([]byte("levels: ["))
	assert.Error(t, err)
}
