package queens

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a known solution, one queen per row
var solution = []int{0, 12, 23, 29, 34, 46, 49, 59}

func TestAttacks(t *testing.T) {
	cases := []struct {
		name string
		a, b int
		want bool
	}{
		{"same row", 0, 7, true},
		{"same column", 3, 59, true},
		{"main diagonal", 0, 63, true},
		{"anti diagonal", 7, 56, true},
		{"knight jump", 0, 10, false},
		{"far apart", 1, 16, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Attacks(tc.a, tc.b))
			assert.Equal(t, tc.want, Attacks(tc.b, tc.a))
		})
	}
}

func TestPlaceQueenRejectsAttack(t *testing.T) {
	p := New(nil)

	out, err := p.PlaceQueen(0)
	require.NoError(t, err)
	require.Equal(t, Placed, out)

	out, err = p.PlaceQueen(9)
	require.NoError(t, err)
	assert.Equal(t, Rejected, out)
	assert.Equal(t, MsgInvalidMove, p.Feedback())
	assert.Equal(t, []int{0}, p.Queens())

	// a valid placement clears the previous rejection message
	out, err = p.PlaceQueen(10)
	require.NoError(t, err)
	assert.Equal(t, Placed, out)
	assert.Empty(t, p.Feedback())
}

func TestPlaceQueenIgnoresOccupiedAndBlocked(t *testing.T) {
	levels := DefaultLevels()
	levels[0][5] = true
	p := New(levels)

	_, err := p.PlaceQueen(0)
	require.NoError(t, err)

	out, err := p.PlaceQueen(0)
	require.NoError(t, err)
	assert.Equal(t, Ignored, out)

	out, err = p.PlaceQueen(5)
	require.NoError(t, err)
	assert.Equal(t, Ignored, out)
	assert.Len(t, p.Queens(), 1)
	assert.Empty(t, p.Feedback())
}

func TestPlaceQueenOutOfRange(t *testing.T) {
	p := New(nil)
	_, err := p.PlaceQueen(64)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = p.PlaceQueen(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSolvedOnlyAfterEighthQueen(t *testing.T) {
	p := New(nil)
	for i, idx := range solution {
		out, err := p.PlaceQueen(idx)
		require.NoError(t, err)
		if i < len(solution)-1 {
			require.Equal(t, Placed, out, "queen %d", idx)
			require.NotEqual(t, MsgLevelDone, p.Feedback())
			require.False(t, p.Solved())
		} else {
			require.Equal(t, Solved, out)
		}
	}
	assert.True(t, p.Solved())
	assert.Equal(t, MsgLevelDone, p.Feedback())
}

func TestRandomPlacementsNeverAttack(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		p := New(nil)
		for i := 0; i < 40; i++ {
			_, err := p.PlaceQueen(rng.Intn(Cells))
			require.NoError(t, err)
		}
		qs := p.Queens()
		require.LessOrEqual(t, len(qs), BoardSize)
		for i := range qs {
			for j := i + 1; j < len(qs); j++ {
				require.False(t, Attacks(qs[i], qs[j]), "queens %d and %d attack", qs[i], qs[j])
			}
		}
	}
}

func TestResetClearsPlacementsAndFeedback(t *testing.T) {
	p := New(nil)
	_, _ = p.PlaceQueen(0)
	_, _ = p.PlaceQueen(1)
	require.Equal(t, MsgInvalidMove, p.Feedback())

	p.Reset()
	assert.Empty(t, p.Queens())
	assert.Empty(t, p.Feedback())
	assert.Equal(t, 1, p.Level())
}

func TestAdvance(t *testing.T) {
	p := New(nil)
	_, _ = p.PlaceQueen(0)

	require.True(t, p.Advance())
	assert.Equal(t, 2, p.Level())
	assert.Empty(t, p.Queens())

	for p.Level() < MaxLevels {
		require.True(t, p.Advance())
	}
	for i := 0; i < 3; i++ {
		assert.False(t, p.Advance())
		assert.Equal(t, MaxLevels, p.Level())
		assert.Equal(t, MsgAllLevelDone, p.Feedback())
	}
}

func TestCreateBoardLevelOutOfRange(t *testing.T) {
	p := New(nil)
	assert.ErrorIs(t, p.CreateBoard(0), ErrLevelOutOfRange)
	assert.ErrorIs(t, p.CreateBoard(MaxLevels+1), ErrLevelOutOfRange)
	assert.Equal(t, 1, p.Level())
}
