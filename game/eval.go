package game

// Evaluate scores a state from side's point of view; larger is better for side.
type Evaluate func(s *GameState, side Piece) float64

// EvaluateResult is the raw score margin, the same quantity the game is decided on.
func EvaluateResult(s *GameState, side Piece) float64 {
	return s.Result(side)
}

// EvaluateMaterial is the score margin relative to the material left on the board, between -1 and 1.
func EvaluateMaterial(s *GameState, side Piece) float64 {
	return normalize(s.Score(side), s.Score(side.Opponent()))
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
