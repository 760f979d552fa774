package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		token string
		want  Direction
	}{
		{"U", DirUp}, {"w", DirUp}, {"up", DirUp},
		{"d", DirDown}, {"S", DirDown}, {"Down", DirDown},
		{"l", DirLeft}, {"a", DirLeft}, {"LEFT", DirLeft},
		{"r", DirRight}, {" right ", DirRight},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.token)
		require.NoError(t, err, tt.token)
		require.Equal(t, tt.want, got, tt.token)
	}

	for _, bad := range []string{"", "x", "upp", "5"} {
		_, err := ParseDirection(bad)
		require.ErrorIs(t, err, ErrInvalidDirection, bad)
	}
}

func TestDirectionToken(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(string(d.Token()))
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
	require.False(t, Direction(-1).Valid())
	require.Equal(t, byte('?'), Direction(9).Token())
}

func TestReplayMatchesInteractivePlay(t *testing.T) {
	const seed = 555
	g, outcomes, err := Replay(4, 4, 5, seed, "L R u d z L")
	require.NoError(t, err)

	manual, err := New(4, 4, 5, seed)
	require.NoError(t, err)
	var want []PushOutcome
	for _, d := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		if out, ok := manual.Push(d); ok {
			want = append(want, out)
		}
	}
	manual.Undo()
	if out, ok := manual.Push(DirLeft); ok {
		want = append(want, out)
	}

	require.Equal(t, want, outcomes)
	require.Equal(t, manual.Board(), g.Board())
	require.Equal(t, manual.Score(), g.Score())
}

func TestReplayBadToken(t *testing.T) {
	g, _, err := Replay(4, 4, 1, 1, "LRx")
	require.ErrorIs(t, err, ErrInvalidDirection)
	require.NotNil(t, g)

	_, _, err = Replay(2, 4, 1, 1, "L")
	require.ErrorIs(t, err, ErrInvalidDimensions)
}
