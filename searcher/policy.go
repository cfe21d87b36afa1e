package searcher

import (
	"thud/game"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Policy chooses one of the legal actions of a state during a playout.
// actions is never empty.
type Policy func(state *game.GameState, actions []game.Action) game.Action

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return frand.Intn(n)
	}
	return rng.Intn(n)
}

// RandomPolicy plays uniformly at random. A nil rng draws from frand, which
// is safe for concurrent use; a *rand.Rand is not.
func RandomPolicy(rng *rand.Rand) Policy {
	return func(_ *game.GameState, actions []game.Action) game.Action {
		return actions[intn(rng, len(actions))]
	}
}

// CapturePolicy plays an action capturing the most pieces, breaking ties at random.
func CapturePolicy(rng *rand.Rand) Policy {
	return func(_ *game.GameState, actions []game.Action) game.Action {
		start := intn(rng, len(actions))
		rotated := append(actions[start:len(actions):len(actions)], actions[:start]...)
		return lo.MaxBy(rotated, func(a, b game.Action) bool {
			return a.Capture.Len() > b.Capture.Len()
		})
	}
}

// FirstPolicy always plays the first legal action.
func FirstPolicy(_ *game.GameState, actions []game.Action) game.Action {
	return actions[0]
}

// Rollout plays policy from a copy of state until the game ends, the side to
// move is blocked, or cutoff actions have been played when cutoff is
// positive. full reports whether the playout reached the end of the game.
func Rollout(state *game.GameState, policy Policy, cutoff int) (final *game.GameState, full bool) {
	final = state.Clone()
	for depth := 0; cutoff <= 0 || depth < cutoff; depth++ {
		if final.IsTerminal() {
			return final, true
		}
		actions := final.ValidActions()
		if len(actions) == 0 {
			return final, true
		}
		final.ApplyInPlace(policy(final, actions))
	}
	return final, final.IsTerminal()
}
