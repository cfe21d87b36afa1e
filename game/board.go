package game

import (
	"fmt"
	"slices"
	"strings"
)

// Board is a rectangular grid of pieces together with an index of where every
// piece of each kind stands. The index is kept in step with the grid by every
// mutating method, so Locations never has to scan the grid.
type Board struct {
	rows, cols int
	cells      []Piece
	locations  [numPieces][]Coord
	slot       []int // position of each cell inside locations[cells[i]]
}

// NewBoard builds a board from a grid of pieces given row by row.
func NewBoard(grid [][]Piece) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyTemplate
	}
	b := &Board{
		rows:  len(grid),
		cols:  len(grid[0]),
		cells: make([]Piece, 0, len(grid)*len(grid[0])),
	}
	b.slot = make([]int, b.rows*b.cols)
	for i, row := range grid {
		if len(row) != b.cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d: %w", i+1, len(row), b.cols, ErrRaggedTemplate)
		}
		for j, p := range row {
			if !p.storable() {
				return nil, fmt.Errorf("row %d column %d holds %v: %w", i+1, j+1, p, ErrUnknownCell)
			}
			c := Coord{i + 1, j + 1}
			b.slot[len(b.cells)] = len(b.locations[p])
			b.locations[p] = append(b.locations[p], c)
			b.cells = append(b.cells, p)
		}
	}
	return b, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) inBounds(c Coord) bool {
	return c.X >= 1 && c.X <= b.rows && c.Y >= 1 && c.Y <= b.cols
}

func (b *Board) offset(c Coord) int {
	return (c.X-1)*b.cols + (c.Y - 1)
}

// PieceAt returns the piece at row x, column y. Cells off the board read as NonPlayable.
func (b *Board) PieceAt(x, y int) Piece {
	return b.At(Coord{x, y})
}

func (b *Board) At(c Coord) Piece {
	if !b.inBounds(c) {
		return NonPlayable
	}
	return b.cells[b.offset(c)]
}

// set overwrites an in-bounds cell and returns what was there.
func (b *Board) set(c Coord, p Piece) Piece {
	i := b.offset(c)
	old := b.cells[i]
	if old == p {
		return old
	}

	// swap-remove c from the old piece's index
	list := b.locations[old]
	pos := b.slot[i]
	last := list[len(list)-1]
	list[pos] = last
	b.slot[b.offset(last)] = pos
	b.locations[old] = list[:len(list)-1]

	b.slot[i] = len(b.locations[p])
	b.locations[p] = append(b.locations[p], c)
	b.cells[i] = p
	return old
}

// Place puts p on c. NonPlayable cells can be neither written nor created.
func (b *Board) Place(c Coord, p Piece) error {
	if !b.inBounds(c) {
		return fmt.Errorf("place %v at %v: %w", p, c, ErrOffBoard)
	}
	if !p.storable() || p == NonPlayable || b.At(c) == NonPlayable {
		return fmt.Errorf("place %v at %v: %w", p, c, ErrNotPlayable)
	}
	b.set(c, p)
	return nil
}

// Remove empties c and returns what stood there.
func (b *Board) Remove(c Coord) (Piece, error) {
	if !b.inBounds(c) {
		return Empty, fmt.Errorf("remove %v: %w", c, ErrOffBoard)
	}
	if b.At(c) == NonPlayable {
		return NonPlayable, fmt.Errorf("remove %v: %w", c, ErrNotPlayable)
	}
	return b.set(c, Empty), nil
}

// Move relocates the piece on from to the empty cell to.
func (b *Board) Move(from, to Coord) error {
	if !b.inBounds(from) || !b.inBounds(to) {
		return fmt.Errorf("move %v->%v: %w", from, to, ErrOffBoard)
	}
	p := b.At(from)
	if p != Dwarf && p != Troll {
		return fmt.Errorf("move %v->%v: no piece to move", from, to)
	}
	if b.At(to) != Empty {
		return fmt.Errorf("move %v->%v: destination holds %v", from, to, b.At(to))
	}
	b.set(from, Empty)
	b.set(to, p)
	return nil
}

// Locations returns a copy of the cells currently holding p, in no particular order.
func (b *Board) Locations(p Piece) []Coord {
	if !p.storable() {
		return nil
	}
	return slices.Clone(b.locations[p])
}

func (b *Board) Count(p Piece) int {
	if !p.storable() {
		return 0
	}
	return len(b.locations[p])
}

func (b *Board) Clone() *Board {
	c := &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: slices.Clone(b.cells),
		slot:  slices.Clone(b.slot),
	}
	for p := range b.locations {
		c.locations[p] = slices.Clone(b.locations[p])
	}
	return c
}

// Equal compares grids only; the order of the location index is irrelevant.
func (b *Board) Equal(o *Board) bool {
	return b.rows == o.rows && b.cols == o.cols && slices.Equal(b.cells, o.cells)
}

var symbols = [numPieces]byte{Empty: '.', Dwarf: 'D', Troll: 'T', NonPlayable: '#'}

// String renders the board in template notation, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for x := 1; x <= b.rows; x++ {
		for y := 1; y <= b.cols; y++ {
			sb.WriteByte(symbols[b.PieceAt(x, y)])
		}
		if x < b.rows {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Representation returns two occupancy planes, dwarves first, as 0/1 grids.
func (b *Board) Representation() [2][][]uint8 {
	var planes [2][][]uint8
	for i, side := range [2]Piece{Dwarf, Troll} {
		plane := make([][]uint8, b.rows)
		for x := range plane {
			plane[x] = make([]uint8, b.cols)
		}
		for _, c := range b.locations[side] {
			plane[c.X-1][c.Y-1] = 1
		}
		planes[i] = plane
	}
	return planes
}

// checkIndex verifies that the location index mirrors the grid.
func (b *Board) checkIndex() error {
	seen := 0
	for p := range b.locations {
		for pos, c := range b.locations[p] {
			if b.At(c) != Piece(p) {
				return fmt.Errorf("index lists %v at %v but grid holds %v", Piece(p), c, b.At(c))
			}
			if b.slot[b.offset(c)] != pos {
				return fmt.Errorf("slot of %v is %d, expected %d", c, b.slot[b.offset(c)], pos)
			}
			seen++
		}
	}
	if seen != len(b.cells) {
		return fmt.Errorf("index covers %d cells, grid has %d", seen, len(b.cells))
	}
	return nil
}
