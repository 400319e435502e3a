package game

import "fmt"

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
)

// Opponent returns the other player's mark.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return None
}

// Board is a row-major N×N grid of marks.
type Board []PlayerMark

// NewBoard returns an empty board for the given size.
func NewBoard(size int) Board {
	if size < 1 {
		return Board{}
	}
	return make(Board, size*size)
}

// Clone returns a copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// EmptyCells lists the indices of all empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, len(b))
	for i, cell := range b {
		if cell == None {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells hold the given mark.
func (b Board) Count(mark PlayerMark) int {
	n := 0
	for _, cell := range b {
		if cell == mark {
			n++
		}
	}
	return n
}

// IsFull reports whether no empty cell is left.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// Rows splits the board into its rows, used for rendering.
func (b Board) Rows(size int) [][]PlayerMark {
	if size < 1 || len(b) != size*size {
		return nil
	}
	rows := make([][]PlayerMark, size)
	for r := range rows {
		rows[r] = b[r*size : (r+1)*size : (r+1)*size]
	}
	return rows
}

// State is the complete game-rule state of one board. Transition functions
// take a State by value and return a new one; Board is never shared between
// the input and the result.
type State struct {
	Size  int
	Board Board
	Turn  PlayerMark
}

// NewState returns a fresh game of the given size with X to move.
func NewState(size int) (State, error) {
	if size < 1 {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return State{Size: size, Board: NewBoard(size), Turn: PlayerX}, nil
}

// Reset clears the board and gives the turn back to X.
func Reset(s State) State {
	return State{Size: s.Size, Board: NewBoard(s.Size), Turn: PlayerX}
}

// Resize starts a new game on an n×n board together with its winning lines.
func Resize(n int) (State, []Line, error) {
	s, err := NewState(n)
	if err != nil {
		return State{}, nil, err
	}
	return s, WinLines(n), nil
}

// Apply places by's mark on index and evaluates the result for the mover.
// The turn flips only while the game is still ongoing.
func Apply(s State, lines []Line, index int, by PlayerMark) (State, Outcome, error) {
	if current := Evaluate(s.Board, lines); current.Status != Ongoing {
		return s, current, ErrGameOver
	}
	if index < 0 || index >= len(s.Board) {
		return s, Outcome{Status: Ongoing}, fmt.Errorf("%w: cell %d", ErrOutOfBounds, index)
	}
	if by != s.Turn {
		return s, Outcome{Status: Ongoing}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.Turn)
	}
	if s.Board[index] != None {
		return s, Outcome{Status: Ongoing}, fmt.Errorf("%w: cell %d", ErrCellOccupied, index)
	}

	next := State{Size: s.Size, Board: s.Board.Clone(), Turn: s.Turn}
	next.Board[index] = by

	outcome := Outcome{Status: Ongoing}
	switch {
	case HasLine(next.Board, lines, by):
		outcome = Outcome{Status: Won, Winner: by}
	case next.Board.IsFull():
		outcome = Outcome{Status: Tied}
	default:
		next.Turn = by.Opponent()
	}
	return next, outcome, nil
}
