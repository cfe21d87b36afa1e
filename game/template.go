package game

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// standardRows is the opening position on the 15x15 board. The Thudstone in
// the centre and the clipped corners are not playable.
var standardRows = []string{
	"-----DD.DD-----",
	"----D.....D----",
	"---D.......D---",
	"--D.........D--",
	"-D...........D-",
	"D.............D",
	"D.....TTT.....D",
	"......T-T......",
	"D.....TTT.....D",
	"D.............D",
	"-D...........D-",
	"--D.........D--",
	"---D.......D---",
	"----D.....D----",
	"-----DD.DD-----",
}

// ParseBoard reads a board in template notation: one string per row with
// D for a dwarf, T for a troll, '.' for an empty cell and '-' or '#' for a
// cell outside play.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTemplate
	}
	grid := make([][]Piece, len(rows))
	for i, row := range rows {
		grid[i] = make([]Piece, 0, len(row))
		for j, r := range row {
			var p Piece
			switch r {
			case 'D', 'd':
				p = Dwarf
			case 'T', 't':
				p = Troll
			case '.':
				p = Empty
			case '-', '#':
				p = NonPlayable
			default:
				return nil, fmt.Errorf("row %d column %d: %q: %w", i+1, j+1, r, ErrUnknownCell)
			}
			grid[i] = append(grid[i], p)
		}
	}
	return NewBoard(grid)
}

// MustParseBoard is ParseBoard for templates known to be valid.
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// StandardBoard returns a fresh copy of the opening position.
func StandardBoard() *Board {
	return MustParseBoard(standardRows...)
}

// Template is the on-disk description of a starting position.
type Template struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
	Turn int      `yaml:"turn,omitempty"`
}

func LoadTemplate(r io.Reader) (*Template, error) {
	var t Template
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyTemplate
		}
		return nil, fmt.Errorf("decoding board template: %w", err)
	}
	if len(t.Rows) == 0 {
		return nil, ErrEmptyTemplate
	}
	return &t, nil
}

func LoadTemplateFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := LoadTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Template) Board() (*Board, error) {
	return ParseBoard(t.Rows...)
}

// Options turns the template into state options for NewGameState.
func (t *Template) Options() ([]StateOption, error) {
	b, err := t.Board()
	if err != nil {
		return nil, err
	}
	options := []StateOption{WithBoard(b)}
	if t.Turn > 0 {
		options = append(options, WithTurn(t.Turn))
	}
	return options, nil
}
