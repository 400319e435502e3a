package game

import (
	"errors"
	"fmt"
)

// Status is the state of the game state machine.
type Status int

const (
	Ongoing Status = iota
	Won
	Tied
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Tied:
		return "tied"
	default:
		return "ongoing"
	}
}

// Outcome is derived from a board after each move; it is never stored.
type Outcome struct {
	Status Status
	Winner PlayerMark
}

// Terminal reports whether no further move is accepted.
func (o Outcome) Terminal() bool {
	return o.Status != Ongoing
}

// Evaluate derives the outcome of a board. A full board without a completed
// line is a tie.
func Evaluate(board Board, lines []Line) Outcome {
	for _, mark := range []PlayerMark{PlayerX, PlayerO} {
		if HasLine(board, lines, mark) {
			return Outcome{Status: Won, Winner: mark}
		}
	}
	if len(board) > 0 && board.IsFull() {
		return Outcome{Status: Tied}
	}
	return Outcome{Status: Ongoing}
}

// ErrInvalidMove is matched by every rejected move.
var ErrInvalidMove = errors.New("invalid move")

var (
	ErrOutOfBounds  = fmt.Errorf("%w: cell out of bounds", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell already occupied", ErrInvalidMove)
	ErrNotYourTurn  = fmt.Errorf("%w: not player's turn", ErrInvalidMove)
	ErrGameOver     = fmt.Errorf("%w: game already finished", ErrInvalidMove)

	ErrInvalidSize = errors.New("invalid board size")
)
