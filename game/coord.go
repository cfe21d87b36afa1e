package game

import (
	"cmp"
	"fmt"
)

// Coord addresses a cell. X is the 1-based row, Y the 1-based column.
type Coord struct {
	X, Y int
}

func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

func (c Coord) Neg() Coord {
	return Coord{-c.X, -c.Y}
}

func (c Coord) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func compareCoords(a, b Coord) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Directions lists the eight unit vectors in generation order.
var Directions = [8]Coord{
	{1, 1}, {1, 0}, {1, -1},
	{0, 1}, {0, -1},
	{-1, 1}, {-1, 0}, {-1, -1},
}
