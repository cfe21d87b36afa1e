package game

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func ofType(actions []Action, t MoveType) []Action {
	return lo.Filter(actions, func(a Action, _ int) bool { return a.Type == t })
}

func TestLineLength(t *testing.T) {
	b := MustParseBoard(
		"...",
		"DDT",
		"T..",
	)
	cases := []struct {
		name  string
		start Coord
		dir   Coord
		piece Piece
		want  int
	}{
		{"empty piece", Coord{1, 1}, Coord{0, 1}, Empty, 0},
		{"wrong piece at start", Coord{1, 1}, Coord{0, 1}, Dwarf, 0},
		{"single dwarf", Coord{2, 1}, Coord{1, 0}, Dwarf, 1},
		{"two dwarves", Coord{2, 1}, Coord{0, 1}, Dwarf, 2},
		{"troll asked on a dwarf", Coord{2, 1}, Coord{1, 0}, Troll, 0},
		{"troll at the edge", Coord{2, 3}, Coord{0, 1}, Troll, 1},
		{"zero direction", Coord{2, 3}, Coord{0, 0}, Troll, 0},
		{"non playable", Coord{0, 0}, Coord{1, 1}, NonPlayable, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, LineLength(b, c.start, c.dir, c.piece))
		})
	}
}

func TestDwarfActions(t *testing.T) {
	b := MustParseBoard(
		"D..TT",
		"DDTDT",
		".....",
		"TT.#D",
	)
	actions := Rules{}.Actions(b, Dwarf)

	valid := []Action{
		{From: Coord{1, 1}, To: Coord{1, 2}, Type: DwarfMove},
		{From: Coord{1, 1}, To: Coord{1, 3}, Type: DwarfMove},
		{From: Coord{2, 2}, To: Coord{2, 3}, Capture: NewCaptureSet(Coord{2, 3}), Type: DwarfHurl},
		{From: Coord{2, 1}, To: Coord{4, 1}, Capture: NewCaptureSet(Coord{4, 1}), Type: DwarfHurl},
		{From: Coord{2, 4}, To: Coord{1, 4}, Capture: NewCaptureSet(Coord{1, 4}), Type: DwarfHurl},
		{From: Coord{2, 1}, To: Coord{3, 2}, Type: DwarfMove},
		{From: Coord{4, 5}, To: Coord{3, 5}, Type: DwarfMove},
	}
	invalid := []Action{
		{From: Coord{1, 2}, To: Coord{2, 2}, Type: DwarfMove},
		{From: Coord{1, 1}, To: Coord{0, 1}, Type: DwarfMove},
		{From: Coord{1, 1}, To: Coord{1, 4}, Capture: NewCaptureSet(Coord{1, 4}), Type: DwarfHurl},
		{From: Coord{2, 1}, To: Coord{3, 1}, Capture: NewCaptureSet(Coord{3, 1}), Type: DwarfHurl},
		{From: Coord{1, 1}, To: Coord{1, 4}, Type: DwarfMove},
		{From: Coord{4, 5}, To: Coord{4, 4}, Type: DwarfMove},
	}

	for _, a := range valid {
		require.Contains(t, actions, a, "%v should be legal", a)
	}
	for _, a := range invalid {
		require.NotContains(t, actions, a, "%v should be illegal", a)
	}
	for _, a := range actions {
		require.Equal(t, Dwarf, a.Type.Side())
		require.Contains(t, Rules{}.ActionsFrom(b, a.From), a, "Actions should agree with ActionsFrom")
	}
}

func TestHurlNeedsOrdinaryMove(t *testing.T) {
	// the dwarf on (2,1) is boxed in but lines up behind (1,1) towards the troll
	b := MustParseBoard(
		"D#",
		"D#",
		"T#",
	)
	require.Empty(t, Rules{}.ActionsFrom(b, Coord{2, 1}), "Dwarf without an ordinary move cannot be hurled")
}

func TestTrollActions(t *testing.T) {
	b := MustParseBoard(
		"T....",
		"T....",
		"T....",
		".....",
		"DD...",
	)
	landing := Coord{4, 1}
	one, other := Coord{5, 1}, Coord{5, 2}

	t.Run("shoving captures every non-empty subset", func(t *testing.T) {
		shoves := ofType(Rules{}.Actions(b, Troll), TrollShove)

		require.ElementsMatch(t, []Action{
			{From: Coord{3, 1}, To: landing, Capture: NewCaptureSet(one), Type: TrollShove},
			{From: Coord{3, 1}, To: landing, Capture: NewCaptureSet(other), Type: TrollShove},
			{From: Coord{3, 1}, To: landing, Capture: NewCaptureSet(one, other), Type: TrollShove},
		}, shoves)
	})

	t.Run("stepping captures at most one dwarf", func(t *testing.T) {
		steps := lo.Filter(ofType(Rules{}.Actions(b, Troll), TrollMove), func(a Action, _ int) bool { return a.To == landing })

		require.ElementsMatch(t, []Action{
			{From: Coord{3, 1}, To: landing, Capture: NewCaptureSet(one), Type: TrollMove},
			{From: Coord{3, 1}, To: landing, Capture: NewCaptureSet(other), Type: TrollMove},
			{From: Coord{3, 1}, To: landing, Type: TrollMove},
		}, steps)
	})

	t.Run("stepping with multi-capture", func(t *testing.T) {
		r := Rules{TrollMoveMultiCapture: true}
		steps := lo.Filter(ofType(r.Actions(b, Troll), TrollMove), func(a Action, _ int) bool { return a.To == landing })

		require.Len(t, steps, 4)
		require.Contains(t, steps, Action{From: Coord{3, 1}, To: landing, Capture: NewCaptureSet(one, other), Type: TrollMove})
	})

	t.Run("empty step always offered", func(t *testing.T) {
		for _, a := range ofType(Rules{}.Actions(b, Troll), TrollMove) {
			require.Contains(t, Rules{}.Actions(b, Troll), Action{From: a.From, To: a.To, Type: TrollMove})
		}
	})

	t.Run("no shove without a dwarf to capture", func(t *testing.T) {
		lonely := MustParseBoard(
			"T....",
			"T....",
			".....",
			".....",
		)
		require.Empty(t, ofType(Rules{}.Actions(lonely, Troll), TrollShove))
	})
}

func TestCaptureSets(t *testing.T) {
	b := MustParseBoard(
		".....",
		"DD...",
	)
	to := Coord{1, 1}

	require.Equal(t, []CaptureSet{{}}, Rules{}.CaptureSets(b, to, DwarfMove))
	require.Equal(t, []CaptureSet{NewCaptureSet(to)}, Rules{}.CaptureSets(b, to, DwarfHurl))
	require.Len(t, Rules{}.CaptureSets(b, to, TrollMove), 3, "Nothing or one of two dwarves")
	require.Len(t, Rules{TrollMoveMultiCapture: true}.CaptureSets(b, to, TrollMove), 4)
	require.Len(t, Rules{}.CaptureSets(b, to, TrollShove), 3)
	require.Empty(t, Rules{}.CaptureSets(b, Coord{1, 5}, TrollShove))
}

func TestCaptureSet(t *testing.T) {
	a, b, c := Coord{1, 1}, Coord{2, 3}, Coord{1, 2}

	require.Equal(t, NewCaptureSet(a, b, c), NewCaptureSet(c, b, a), "Order should not matter")
	require.Equal(t, NewCaptureSet(a, a), NewCaptureSet(a), "Duplicates should collapse")
	require.Equal(t, []Coord{a, c, b}, NewCaptureSet(b, c, a).Cells(), "Cells should come out sorted")
	require.True(t, NewCaptureSet(a, b).Contains(b))
	require.False(t, NewCaptureSet(a, b).Contains(c))
	require.Len(t, captureSubsets([]Coord{a, b, c}), 7)
	require.Nil(t, captureSubsets(nil))
}
