package game

import (
	"errors"
	"fmt"
)

// Piece is the content of a board cell. Dwarf and Troll double as the two sides.
type Piece int8

const (
	// Draw is never stored on a board, it is what Winner reports when the scores are level.
	Draw Piece = iota - 1
	Empty
	Dwarf
	Troll
	NonPlayable
)

const numPieces = 4

func (p Piece) String() string {
	switch p {
	case Draw:
		return "Draw"
	case Empty:
		return "Empty"
	case Dwarf:
		return "Dwarf"
	case Troll:
		return "Troll"
	case NonPlayable:
		return "NonPlayable"
	}
	return fmt.Sprintf("Piece(%d)", int8(p))
}

// Opponent returns the other side. Only defined for Dwarf and Troll.
func (p Piece) Opponent() Piece {
	switch p {
	case Dwarf:
		return Troll
	case Troll:
		return Dwarf
	}
	panic(fmt.Sprintf("%v is not a side", p))
}

// Sign is +1 for Dwarf and -1 for Troll.
func (p Piece) Sign() float64 {
	switch p {
	case Dwarf:
		return 1
	case Troll:
		return -1
	}
	panic(fmt.Sprintf("%v is not a side", p))
}

func (p Piece) storable() bool {
	return p >= Empty && p <= NonPlayable
}

type StateHash uint64

var (
	ErrNoLegalActions   = errors.New("no legal actions")
	ErrEmptyTemplate    = errors.New("board template has no rows")
	ErrRaggedTemplate   = errors.New("board template rows differ in length")
	ErrUnknownCell      = errors.New("unknown cell symbol")
	ErrOffBoard         = errors.New("coordinate is off the board")
	ErrNotPlayable      = errors.New("cell is not playable")
	ErrInvalidTurnLimit = errors.New("turn limit must be positive")
	ErrInvalidTurn      = errors.New("turn must be positive")
)

// IllegalActionError reports an action that cannot be applied to a state.
type IllegalActionError struct {
	Action Action
	Turn   int
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %v on turn %d: %s", e.Action, e.Turn, e.Reason)
}
