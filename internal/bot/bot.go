package bot

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"ctchen222/Tic-Tac-Toe-N/internal/game"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Mover picks the computer's next cell on a board.
type Mover interface {
	ChooseMove(board game.Board) (int, error)
}

// NewSeed draws a seed from crypto/rand for production movers.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
