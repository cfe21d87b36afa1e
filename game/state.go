package game

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

type Status int8

const (
	InProgress Status = iota
	TurnLimitReached
	Eliminated
	// Blocked means the side to move has no legal action while the game is otherwise still running.
	Blocked
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case TurnLimitReached:
		return "TurnLimitReached"
	case Eliminated:
		return "Eliminated"
	case Blocked:
		return "Blocked"
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// trollWeight is what a troll is worth against a single dwarf.
const trollWeight = 4

// GameState is a position together with whose turn it is. Dwarves move on
// odd turns, trolls on even ones. Apply leaves the receiver untouched;
// ApplyInPlace is the mutating form for callers that own the state.
type GameState struct {
	board     *Board
	rules     Rules
	turn      int
	turnLimit int
	prev      Action
}

type StateOption func(*GameState)

// WithBoard starts from b instead of the standard position. The state takes ownership of b.
func WithBoard(b *Board) StateOption {
	return func(s *GameState) {
		s.board = b
	}
}

func WithTurn(turn int) StateOption {
	return func(s *GameState) {
		s.turn = turn
	}
}

func WithRules(r Rules) StateOption {
	return func(s *GameState) {
		s.rules = r
	}
}

func NewGameState(turnLimit int, options ...StateOption) (*GameState, error) {
	if turnLimit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTurnLimit, turnLimit)
	}
	s := &GameState{turn: 1, turnLimit: turnLimit}
	for _, option := range options {
		option(s)
	}
	if s.turn < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTurn, s.turn)
	}
	if s.board == nil {
		s.board = StandardBoard()
	}
	return s, nil
}

func (s *GameState) Turn() int      { return s.turn }
func (s *GameState) TurnLimit() int { return s.turnLimit }
func (s *GameState) Rules() Rules   { return s.rules }

// Board exposes the position for reading. Callers must not mutate it.
func (s *GameState) Board() *Board { return s.board }

// Player is the side to move.
func (s *GameState) Player() Piece {
	if s.turn%2 == 1 {
		return Dwarf
	}
	return Troll
}

func (s *GameState) PieceAt(x, y int) Piece {
	return s.board.PieceAt(x, y)
}

func (s *GameState) Locations(p Piece) []Coord {
	return s.board.Locations(p)
}

// PrevAction is the action that produced this state, if any.
func (s *GameState) PrevAction() (Action, bool) {
	return s.prev, !s.prev.IsZero()
}

func (s *GameState) ValidActions() []Action {
	return s.rules.Actions(s.board, s.Player())
}

func (s *GameState) Clone() *GameState {
	c := *s
	c.board = s.board.Clone()
	return &c
}

// Apply returns the successor state. The receiver is unchanged. An illegal
// action panics with an *IllegalActionError before anything is modified.
func (s *GameState) Apply(a Action) *GameState {
	next := s.Clone()
	next.ApplyInPlace(a)
	return next
}

func (s *GameState) ApplyInPlace(a Action) {
	if err := s.check(a); err != nil {
		panic(err)
	}
	for _, c := range a.Capture.cells[:a.Capture.n] {
		s.board.set(c, Empty)
	}
	p := s.board.set(a.From, Empty)
	s.board.set(a.To, p)
	s.turn++
	s.prev = a
}

// check rejects actions that would corrupt the board. It is cheaper than a
// full legality test and guards every application.
func (s *GameState) check(a Action) error {
	illegal := func(reason string, args ...any) error {
		return &IllegalActionError{Action: a, Turn: s.turn, Reason: fmt.Sprintf(reason, args...)}
	}
	side := s.Player()
	if a.Type.Side() != side {
		return illegal("%v cannot be played by %v", a.Type, side)
	}
	if p := s.board.At(a.From); p != side {
		return illegal("source holds %v, not %v", p, side)
	}
	for _, c := range a.Capture.cells[:a.Capture.n] {
		if p := s.board.At(c); p != side.Opponent() {
			return illegal("captured cell %v holds %v", c, p)
		}
	}
	switch p := s.board.At(a.To); {
	case p == Empty:
	case a.Type == DwarfHurl && p == Troll && a.Capture.Contains(a.To):
	default:
		return illegal("destination holds %v", p)
	}
	return nil
}

// Validate reports whether a is one of the legal actions in this state.
func (s *GameState) Validate(a Action) error {
	if err := s.check(a); err != nil {
		return err
	}
	if !lo.Contains(s.ValidActions(), a) {
		return &IllegalActionError{Action: a, Turn: s.turn, Reason: "not a legal action"}
	}
	return nil
}

// IsTerminal is true once the turn limit is passed or either side is wiped out.
func (s *GameState) IsTerminal() bool {
	return s.turn > s.turnLimit || s.board.Count(Dwarf) == 0 || s.board.Count(Troll) == 0
}

// Status refines IsTerminal and additionally detects a side with no moves.
func (s *GameState) Status() Status {
	switch {
	case s.turn > s.turnLimit:
		return TurnLimitReached
	case s.board.Count(Dwarf) == 0 || s.board.Count(Troll) == 0:
		return Eliminated
	case len(s.ValidActions()) == 0:
		return Blocked
	}
	return InProgress
}

// Score is the material held by side: one point per dwarf, four per troll.
func (s *GameState) Score(side Piece) float64 {
	switch side {
	case Dwarf:
		return float64(s.board.Count(Dwarf))
	case Troll:
		return trollWeight * float64(s.board.Count(Troll))
	}
	return 0
}

// Winner is the side with the higher score, or Draw.
func (s *GameState) Winner() Piece {
	d, t := s.Score(Dwarf), s.Score(Troll)
	switch {
	case d > t:
		return Dwarf
	case t > d:
		return Troll
	}
	return Draw
}

// Result is the score margin from side's point of view.
func (s *GameState) Result(side Piece) float64 {
	return side.Sign() * (s.Score(Dwarf) - s.Score(Troll))
}

func (s *GameState) Hash() StateHash {
	buf := make([]byte, 0, len(s.board.cells)+8)
	for _, p := range s.board.cells {
		buf = append(buf, byte(p))
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.turn))
	return StateHash(xxhash.Sum64(buf))
}

// Equal compares position and turn. Rules and the turn limit are not part of a position.
func (s *GameState) Equal(o *GameState) bool {
	return s.turn == o.turn && s.board.Equal(o.board)
}

// PlayerInfo summarises one side for display.
func (s *GameState) PlayerInfo(side Piece) string {
	return fmt.Sprintf("%v: %d pieces, score %.0f", side, s.board.Count(side), s.Score(side))
}

func (s *GameState) String() string {
	return fmt.Sprintf("turn %d/%d, %v to move\n%v", s.turn, s.turnLimit, s.Player(), s.board)
}
