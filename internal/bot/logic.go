package bot

import (
	"math/rand/v2"

	"ctchen222/Tic-Tac-Toe-N/internal/game"
)

// RandomMover implements Mover with a uniformly random empty cell.
// It is not safe for concurrent use; each session owns its own mover.
type RandomMover struct {
	rng *rand.Rand
}

// NewRandomMover returns a mover whose choices are fully determined by seed.
func NewRandomMover(seed uint64) *RandomMover {
	return NewRandomMoverWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomMoverWithSource wraps an arbitrary randomness source.
func NewRandomMoverWithSource(src rand.Source) *RandomMover {
	return &RandomMover{rng: rand.New(src)}
}

// ChooseMove picks one of the empty cells with equal probability.
func (m *RandomMover) ChooseMove(board game.Board) (int, error) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return -1, ErrNoAvailableMoves
	}
	return available[m.rng.IntN(len(available))], nil
}
