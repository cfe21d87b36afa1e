package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func stateOf(t *testing.T, turnLimit, turn int, rows ...string) *GameState {
	t.Helper()
	s, err := NewGameState(turnLimit, WithBoard(MustParseBoard(rows...)), WithTurn(turn))
	require.NoError(t, err)
	return s
}

func TestNewGameState(t *testing.T) {
	t.Run("standard opening", func(t *testing.T) {
		s, err := NewGameState(70)
		require.NoError(t, err)
		require.Equal(t, 1, s.Turn())
		require.Equal(t, Dwarf, s.Player())
		require.False(t, s.IsTerminal())
		require.Equal(t, InProgress, s.Status())
		_, ok := s.PrevAction()
		require.False(t, ok)
	})

	t.Run("rejecting bad parameters", func(t *testing.T) {
		_, err := NewGameState(0)
		require.ErrorIs(t, err, ErrInvalidTurnLimit)
		_, err = NewGameState(10, WithTurn(0))
		require.ErrorIs(t, err, ErrInvalidTurn)
	})
}

func TestOpeningActions(t *testing.T) {
	t.Run("dwarves open", func(t *testing.T) {
		s, err := NewGameState(70)
		require.NoError(t, err)
		actions := s.ValidActions()

		require.NotEmpty(t, actions)
		for _, a := range actions {
			require.Contains(t, []MoveType{DwarfMove, DwarfHurl}, a.Type)
		}
	})

	t.Run("trolls cannot shove from the opening position", func(t *testing.T) {
		s, err := NewGameState(70, WithTurn(2))
		require.NoError(t, err)
		actions := s.ValidActions()

		require.Equal(t, Troll, s.Player())
		require.Empty(t, ofType(actions, TrollShove))
		require.Greater(t, len(ofType(actions, TrollMove)), 1)
	})
}

func TestApply(t *testing.T) {
	t.Run("apply leaves the receiver untouched", func(t *testing.T) {
		s, err := NewGameState(70)
		require.NoError(t, err)
		before := s.Clone()
		a := s.ValidActions()[0]

		next := s.Apply(a)

		require.True(t, s.Equal(before), "Receiver should not change")
		require.Equal(t, 2, next.Turn())
		require.Equal(t, Troll, next.Player())
		prev, ok := next.PrevAction()
		require.True(t, ok)
		require.Equal(t, a, prev)

		inPlace := s.Clone()
		inPlace.ApplyInPlace(a)
		require.True(t, inPlace.Equal(next), "Both forms should reach the same state")
		require.NoError(t, next.Board().checkIndex())
	})

	t.Run("a dwarf move can be walked back", func(t *testing.T) {
		s, err := NewGameState(70)
		require.NoError(t, err)
		for _, a := range ofType(s.ValidActions(), DwarfMove) {
			b := s.Apply(a).Board().Clone()
			require.NoError(t, b.Move(a.To, a.From))
			require.True(t, b.Equal(s.Board()), "Reversing %v should restore the board", a)
		}
	})

	t.Run("a hurl removes exactly one troll", func(t *testing.T) {
		s := stateOf(t, 10, 1,
			"D..",
			"D..",
			"...",
			"T.T",
		)
		hurl := Action{From: Coord{2, 1}, To: Coord{4, 1}, Capture: NewCaptureSet(Coord{4, 1}), Type: DwarfHurl}
		require.NoError(t, s.Validate(hurl))

		next := s.Apply(hurl)

		require.Equal(t, s.Board().Count(Dwarf), next.Board().Count(Dwarf))
		require.Equal(t, s.Board().Count(Troll)-1, next.Board().Count(Troll))
		require.Equal(t, Dwarf, next.PieceAt(4, 1))
		require.Equal(t, Empty, next.PieceAt(2, 1))
		require.Equal(t, []Coord{{4, 3}}, next.Locations(Troll))
	})

	t.Run("a shove removes every captured dwarf", func(t *testing.T) {
		s := stateOf(t, 10, 2,
			"T....",
			"T....",
			"T....",
			".....",
			"DD..D",
		)
		shove := Action{From: Coord{3, 1}, To: Coord{4, 1}, Capture: NewCaptureSet(Coord{5, 1}, Coord{5, 2}), Type: TrollShove}
		require.NoError(t, s.Validate(shove))

		next := s.Apply(shove)

		require.Equal(t, 1, next.Board().Count(Dwarf))
		require.Equal(t, 3, next.Board().Count(Troll))
		require.NoError(t, next.Board().checkIndex())
	})

	t.Run("an illegal action panics before changing anything", func(t *testing.T) {
		s, err := NewGameState(70)
		require.NoError(t, err)
		before := s.Clone()
		bad := Action{From: Coord{7, 7}, To: Coord{6, 7}, Type: TrollMove}

		require.Panics(t, func() { s.ApplyInPlace(bad) })
		require.True(t, s.Equal(before))
	})
}

func TestValidate(t *testing.T) {
	s, err := NewGameState(70)
	require.NoError(t, err)

	t.Run("accepting a legal action", func(t *testing.T) {
		require.NoError(t, s.Validate(s.ValidActions()[0]))
	})

	t.Run("rejecting the wrong side", func(t *testing.T) {
		err := s.Validate(Action{From: Coord{7, 7}, To: Coord{6, 7}, Type: TrollMove})
		var illegal *IllegalActionError
		require.True(t, errors.As(err, &illegal))
		require.Equal(t, 1, illegal.Turn)
	})

	t.Run("rejecting a dwarf jumping over another", func(t *testing.T) {
		err := s.Validate(Action{From: Coord{1, 6}, To: Coord{1, 8}, Type: DwarfMove})
		var illegal *IllegalActionError
		require.True(t, errors.As(err, &illegal))
	})

	t.Run("rejecting the zero action", func(t *testing.T) {
		require.Error(t, s.Validate(Action{}))
	})
}

func TestTermination(t *testing.T) {
	t.Run("capturing the last dwarf ends the game", func(t *testing.T) {
		s := stateOf(t, 10, 2,
			"D..",
			"..T",
		)
		require.False(t, s.IsTerminal())

		next := s.Apply(Action{From: Coord{2, 3}, To: Coord{2, 2}, Capture: NewCaptureSet(Coord{1, 1}), Type: TrollMove})

		require.True(t, next.IsTerminal())
		require.Equal(t, Eliminated, next.Status())
		require.Equal(t, Troll, next.Winner())
		require.Equal(t, 4.0, next.Result(Troll))
		require.Equal(t, -4.0, next.Result(Dwarf))
	})

	t.Run("passing the turn limit ends the game", func(t *testing.T) {
		s := stateOf(t, 1, 1,
			"D..",
			"..T",
		)
		require.False(t, s.IsTerminal())

		next := s.Apply(s.ValidActions()[0])

		require.True(t, next.IsTerminal())
		require.Equal(t, TurnLimitReached, next.Status())
	})

	t.Run("a side without moves is blocked but not terminal", func(t *testing.T) {
		s := stateOf(t, 10, 1,
			"DT",
			"TT",
		)
		require.False(t, s.IsTerminal())
		require.Equal(t, Blocked, s.Status())
		require.Empty(t, s.ValidActions())
	})
}

func TestScore(t *testing.T) {
	s, err := NewGameState(70)
	require.NoError(t, err)

	require.Equal(t, 32.0, s.Score(Dwarf))
	require.Equal(t, 32.0, s.Score(Troll))
	require.Equal(t, Draw, s.Winner())
	require.Equal(t, 0.0, s.Result(Dwarf))
	require.Equal(t, "Dwarf: 32 pieces, score 32", s.PlayerInfo(Dwarf))
	require.Equal(t, "Troll: 8 pieces, score 32", s.PlayerInfo(Troll))
	require.Equal(t, 1.0, EvaluateMaterial(stateOf(t, 5, 1, "D."), Dwarf))
}

func TestHash(t *testing.T) {
	s, err := NewGameState(70)
	require.NoError(t, err)
	other, err := NewGameState(30)
	require.NoError(t, err)
	later, err := NewGameState(70, WithTurn(3))
	require.NoError(t, err)

	require.Equal(t, s.Hash(), other.Hash(), "Turn limit is not part of the position")
	require.NotEqual(t, s.Hash(), later.Hash())
	require.NotEqual(t, s.Hash(), s.Apply(s.ValidActions()[0]).Hash())
}
