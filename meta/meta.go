// meta/meta.go
package meta

import "time"

// DEFAULT_TURN_LIMIT is the number of turns played before a game is scored.
const DEFAULT_TURN_LIMIT = 70

// DEFAULT_GAMES is the best-of length of a match.
const DEFAULT_GAMES = 2

// MINIMAX_DEPTH is the default search depth in plies.
const MINIMAX_DEPTH = 2

// MINIMAX_BUDGET is the default wall-clock budget of a minimax search.
const MINIMAX_BUDGET = 10 * time.Second

// MCTS_BUDGET is the default wall-clock budget of an MCTS search.
const MCTS_BUDGET = time.Second

// EXPLORATION is the default UCB1 exploration constant.
const EXPLORATION = 2.0

// REUSE_DEPTH is how many plies below the previous root a reused tree is searched for the new position.
const REUSE_DEPTH = 2
