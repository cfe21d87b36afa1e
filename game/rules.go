package game

// Rules carries the variants a game can be played under. The zero value is
// the standard rule set.
type Rules struct {
	// TrollMoveMultiCapture lets an ordinary troll step capture any non-empty
	// subset of the dwarves next to its destination instead of at most one.
	TrollMoveMultiCapture bool
}

// LineLength counts the consecutive cells holding p starting at start and
// stepping by dir, start included. It is zero for a zero direction and when
// start itself does not hold p.
func LineLength(b *Board, start, dir Coord, p Piece) int {
	if dir.IsZero() || p == Empty || p == NonPlayable {
		return 0
	}
	n := 0
	for c := start; b.At(c) == p; c = c.Add(dir) {
		n++
	}
	return n
}

// adjacent lists the neighbours of c holding p, in direction order.
func adjacent(b *Board, c Coord, p Piece) []Coord {
	var out []Coord
	for _, d := range Directions {
		if n := c.Add(d); b.At(n) == p {
			out = append(out, n)
		}
	}
	return out
}

// Actions returns every legal action of side on b.
func (r Rules) Actions(b *Board, side Piece) []Action {
	var out []Action
	for _, c := range b.locations[side] {
		out = r.appendActions(out, b, c)
	}
	return out
}

// ActionsFrom returns the legal actions of the piece on c. Empty and
// unplayable cells have none.
func (r Rules) ActionsFrom(b *Board, c Coord) []Action {
	return r.appendActions(nil, b, c)
}

func (r Rules) appendActions(out []Action, b *Board, c Coord) []Action {
	switch b.At(c) {
	case Dwarf:
		n := len(out)
		out = dwarfMoves(out, b, c)
		// a dwarf that cannot step cannot be hurled either
		if len(out) > n {
			out = dwarfHurls(out, b, c)
		}
	case Troll:
		out = r.trollMoves(out, b, c)
		out = trollShoves(out, b, c)
	}
	return out
}

func dwarfMoves(out []Action, b *Board, from Coord) []Action {
	for _, d := range Directions {
		for to := from.Add(d); b.At(to) == Empty; to = to.Add(d) {
			out = append(out, Action{From: from, To: to, Type: DwarfMove})
		}
	}
	return out
}

func dwarfHurls(out []Action, b *Board, from Coord) []Action {
	for _, d := range Directions {
		length := LineLength(b, from, d.Neg(), Dwarf)
		to := from
		for range length {
			to = to.Add(d)
			p := b.At(to)
			if p == Troll {
				out = append(out, Action{From: from, To: to, Capture: NewCaptureSet(to), Type: DwarfHurl})
			}
			if p != Empty {
				break
			}
		}
	}
	return out
}

func (r Rules) trollMoves(out []Action, b *Board, from Coord) []Action {
	for _, d := range Directions {
		to := from.Add(d)
		if b.At(to) != Empty {
			continue
		}
		for _, s := range r.stepCaptures(b, to) {
			out = append(out, Action{From: from, To: to, Capture: s, Type: TrollMove})
		}
		out = append(out, Action{From: from, To: to, Type: TrollMove})
	}
	return out
}

func (r Rules) stepCaptures(b *Board, to Coord) []CaptureSet {
	dwarves := adjacent(b, to, Dwarf)
	if r.TrollMoveMultiCapture {
		return captureSubsets(dwarves)
	}
	sets := make([]CaptureSet, len(dwarves))
	for i, c := range dwarves {
		sets[i] = NewCaptureSet(c)
	}
	return sets
}

// trollShoves only emits landings next to at least one dwarf: a shove must capture.
func trollShoves(out []Action, b *Board, from Coord) []Action {
	for _, d := range Directions {
		length := LineLength(b, from, d.Neg(), Troll)
		if length < 2 {
			continue
		}
		to := from
		for range length {
			to = to.Add(d)
			if b.At(to) != Empty {
				break
			}
			for _, s := range captureSubsets(adjacent(b, to, Dwarf)) {
				out = append(out, Action{From: from, To: to, Capture: s, Type: TrollShove})
			}
		}
	}
	return out
}

// CaptureSets lists the capture choices available to a move of type t ending
// on to, as a front end would offer them. The source cell must already be
// vacated or irrelevant: only the neighbours of to are inspected.
func (r Rules) CaptureSets(b *Board, to Coord, t MoveType) []CaptureSet {
	switch t {
	case DwarfMove:
		return []CaptureSet{{}}
	case DwarfHurl:
		return []CaptureSet{NewCaptureSet(to)}
	case TrollMove:
		return append([]CaptureSet{{}}, r.stepCaptures(b, to)...)
	case TrollShove:
		return captureSubsets(adjacent(b, to, Dwarf))
	}
	return nil
}
