package game

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/combin"
)

type MoveType int8

const (
	DwarfMove MoveType = iota + 1
	DwarfHurl
	TrollMove
	TrollShove
)

func (m MoveType) String() string {
	switch m {
	case DwarfMove:
		return "DwarfMove"
	case DwarfHurl:
		return "DwarfHurl"
	case TrollMove:
		return "TrollMove"
	case TrollShove:
		return "TrollShove"
	}
	return fmt.Sprintf("MoveType(%d)", int8(m))
}

// Side is the piece that may play this kind of move.
func (m MoveType) Side() Piece {
	switch m {
	case DwarfMove, DwarfHurl:
		return Dwarf
	case TrollMove, TrollShove:
		return Troll
	}
	return Empty
}

// maxCaptures bounds a capture set: a cell has eight neighbours.
const maxCaptures = 8

// CaptureSet is an unordered set of captured cells. Cells are kept sorted so
// that two sets holding the same cells compare equal with ==.
type CaptureSet struct {
	n     uint8
	cells [maxCaptures]Coord
}

func NewCaptureSet(cells ...Coord) CaptureSet {
	var s CaptureSet
	for _, c := range cells {
		s.insert(c)
	}
	return s
}

func (s *CaptureSet) insert(c Coord) {
	i := 0
	for i < int(s.n) && compareCoords(s.cells[i], c) < 0 {
		i++
	}
	if i < int(s.n) && s.cells[i] == c {
		return
	}
	if int(s.n) == maxCaptures {
		panic("capture set holds at most eight cells")
	}
	copy(s.cells[i+1:s.n+1], s.cells[i:s.n])
	s.cells[i] = c
	s.n++
}

func (s CaptureSet) Len() int { return int(s.n) }

func (s CaptureSet) Cells() []Coord {
	out := make([]Coord, s.n)
	copy(out, s.cells[:s.n])
	return out
}

func (s CaptureSet) Contains(c Coord) bool {
	for _, x := range s.cells[:s.n] {
		if x == c {
			return true
		}
	}
	return false
}

func (s CaptureSet) String() string {
	parts := make([]string, s.n)
	for i, c := range s.cells[:s.n] {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// captureSubsets enumerates every non-empty subset of candidates, smallest first.
func captureSubsets(candidates []Coord) []CaptureSet {
	n := len(candidates)
	if n == 0 {
		return nil
	}
	sets := make([]CaptureSet, 0, 1<<n-1)
	for k := 1; k <= n; k++ {
		for _, combo := range combin.Combinations(n, k) {
			var s CaptureSet
			for _, i := range combo {
				s.insert(candidates[i])
			}
			sets = append(sets, s)
		}
	}
	return sets
}

// Action is one complete move. It is a comparable value: two actions are
// equal when source, destination, captures and type all agree.
type Action struct {
	From    Coord
	To      Coord
	Capture CaptureSet
	Type    MoveType
}

func (a Action) String() string {
	if a.Capture.Len() == 0 {
		return fmt.Sprintf("%v %v->%v", a.Type, a.From, a.To)
	}
	return fmt.Sprintf("%v %v->%v x%v", a.Type, a.From, a.To, a.Capture)
}

func (a Action) IsZero() bool {
	return a == Action{}
}
