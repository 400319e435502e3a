package game

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func mustState(t *testing.T, size int) State {
	t.Helper()
	s, err := NewState(size)
	if err != nil {
		t.Fatalf("NewState(%d) failed: %v", size, err)
	}
	return s
}

// play applies the moves alternately starting with X and fails the test on any rejection.
func play(t *testing.T, s State, lines []Line, moves ...int) (State, Outcome) {
	t.Helper()
	var outcome Outcome
	for _, idx := range moves {
		var err error
		s, outcome, err = Apply(s, lines, idx, s.Turn)
		if err != nil {
			t.Fatalf("Apply(%d) by %s failed: %v", idx, s.Turn, err)
		}
	}
	return s, outcome
}

func TestNewState(t *testing.T) {
	for _, size := range []int{1, 3, 4, 7} {
		s := mustState(t, size)
		if len(s.Board) != size*size {
			t.Errorf("size %d: board length = %d, want %d", size, len(s.Board), size*size)
		}
		if s.Turn != PlayerX {
			t.Errorf("size %d: first turn = %q, want X", size, s.Turn)
		}
	}

	if _, err := NewState(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewState(0) error = %v, want ErrInvalidSize", err)
	}
}

func TestApply_XWinsTopRow(t *testing.T) {
	s := mustState(t, 3)
	lines := WinLines(3)

	s, outcome := play(t, s, lines, 0, 4, 1, 5, 2)

	if outcome.Status != Won || outcome.Winner != PlayerX {
		t.Fatalf("outcome = %+v, want X won", outcome)
	}
	if s.Turn != PlayerX {
		t.Errorf("turn after a win = %q, want it to stay with the winner", s.Turn)
	}
	if got := Evaluate(s.Board, lines); got != outcome {
		t.Errorf("Evaluate() = %+v, want %+v", got, outcome)
	}
}

func TestApply_FullBoardWithoutLineIsTie(t *testing.T) {
	s := mustState(t, 3)
	lines := WinLines(3)

	// X O X
	// X O O
	// O X X
	s, outcome := play(t, s, lines, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	if outcome.Status != Tied {
		t.Fatalf("outcome = %+v, want tie", outcome)
	}
	if !s.Board.IsFull() {
		t.Error("board should be full")
	}
}

func TestApply_LastCellCompletingLineIsWinNotTie(t *testing.T) {
	s := mustState(t, 3)
	lines := WinLines(3)

	// X O X
	// O X O
	// O X X  <- last move at 8 completes the diagonal
	_, outcome := play(t, s, lines, 0, 1, 2, 3, 4, 5, 7, 6, 8)

	if outcome.Status != Won || outcome.Winner != PlayerX {
		t.Errorf("outcome = %+v, want X won", outcome)
	}
}

func TestApply_Rejections(t *testing.T) {
	lines := WinLines(3)
	base := mustState(t, 3)
	base, _ = play(t, base, lines, 4)

	tests := []struct {
		name  string
		state State
		index int
		by    PlayerMark
		want  error
	}{
		{name: "occupied cell", state: base, index: 4, by: PlayerO, want: ErrCellOccupied},
		{name: "wrong player", state: base, index: 0, by: PlayerX, want: ErrNotYourTurn},
		{name: "negative index", state: base, index: -1, by: PlayerO, want: ErrOutOfBounds},
		{name: "index past the board", state: base, index: 9, by: PlayerO, want: ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state.Board.Clone()
			got, _, err := Apply(tt.state, lines, tt.index, tt.by)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidMove) {
				t.Errorf("Apply() error %v should match ErrInvalidMove", err)
			}
			for i := range before {
				if tt.state.Board[i] != before[i] || got.Board[i] != before[i] {
					t.Fatalf("board changed at %d after a rejected move", i)
				}
			}
		})
	}
}

func TestApply_AfterWinIsRejected(t *testing.T) {
	lines := WinLines(3)
	s, _ := play(t, mustState(t, 3), lines, 0, 4, 1, 5, 2)

	if _, _, err := Apply(s, lines, 8, s.Turn); !errors.Is(err, ErrGameOver) {
		t.Errorf("Apply() after win error = %v, want ErrGameOver", err)
	}
}

func TestApply_OutOfTurnComputerMoveRejected(t *testing.T) {
	// Solo mode: the computer plays O and must not move while X is to play.
	s := mustState(t, 3)
	lines := WinLines(3)

	_, _, err := Apply(s, lines, 3, PlayerO)
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("Apply() error = %v, want ErrNotYourTurn", err)
	}
	if s.Board.Count(PlayerO) != 0 {
		t.Error("rejected move must not mark the board")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := mustState(t, 3)
	next, _, err := Apply(s, WinLines(3), 0, PlayerX)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if s.Board[0] != None {
		t.Error("input board was mutated")
	}
	if next.Board[0] != PlayerX {
		t.Errorf("next.Board[0] = %q, want X", next.Board[0])
	}
}

func TestApply_MarkCountsStayBalanced(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, size := range []int{1, 2, 3, 4, 5} {
		for round := 0; round < 50; round++ {
			lines := WinLines(size)
			s := mustState(t, size)
			for {
				empty := s.Board.EmptyCells()
				if len(empty) == 0 {
					break
				}
				var (
					outcome Outcome
					err     error
				)
				s, outcome, err = Apply(s, lines, empty[rng.IntN(len(empty))], s.Turn)
				if err != nil {
					t.Fatalf("size %d: unexpected error %v", size, err)
				}

				x, o := s.Board.Count(PlayerX), s.Board.Count(PlayerO)
				if x != o && x != o+1 {
					t.Fatalf("size %d: X=%d O=%d violates move parity", size, x, o)
				}
				if outcome.Terminal() {
					break
				}
			}
		}
	}
}

func TestReset(t *testing.T) {
	lines := WinLines(4)
	s, _ := play(t, mustState(t, 4), lines, 0, 1, 2)

	r := Reset(s)

	if r.Size != 4 || len(r.Board) != 16 {
		t.Fatalf("Reset() size = %d len = %d, want 4/16", r.Size, len(r.Board))
	}
	if len(r.Board.EmptyCells()) != 16 {
		t.Error("Reset() board is not empty")
	}
	if r.Turn != PlayerX {
		t.Errorf("Reset() turn = %q, want X", r.Turn)
	}
	if s.Board.Count(PlayerX) != 2 {
		t.Error("Reset() must not clear the input state")
	}
}

func TestResize(t *testing.T) {
	s, lines, err := Resize(5)
	if err != nil {
		t.Fatalf("Resize(5) error = %v", err)
	}
	if s.Size != 5 || len(s.Board) != 25 || s.Turn != PlayerX {
		t.Errorf("Resize(5) state = %+v", s)
	}
	if len(lines) != 12 {
		t.Errorf("Resize(5) lines = %d, want 12", len(lines))
	}

	if _, _, err := Resize(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0) error = %v, want ErrInvalidSize", err)
	}
}

func TestSizeOneBoard(t *testing.T) {
	lines := WinLines(1)
	_, outcome := play(t, mustState(t, 1), lines, 0)
	if outcome.Status != Won || outcome.Winner != PlayerX {
		t.Errorf("outcome = %+v, want X won on a 1x1 board", outcome)
	}
}

func TestBoardRows(t *testing.T) {
	b := Board{PlayerX, None, PlayerO, None}
	rows := b.Rows(2)
	if len(rows) != 2 || rows[0][0] != PlayerX || rows[1][0] != PlayerO {
		t.Errorf("Rows(2) = %v", rows)
	}
	if b.Rows(3) != nil {
		t.Error("Rows with a mismatched size should be nil")
	}
}
