package game

// Line is a set of board indices that win when they all hold one mark.
type Line []int

// WinLines returns every winning line for an n×n board: n rows, n columns and
// the two full diagonals, 2n+2 lines in total.
func WinLines(n int) []Line {
	if n < 1 {
		return nil
	}

	lines := make([]Line, 0, 2*n+2)
	for i := 0; i < n; i++ {
		row := make(Line, n)
		column := make(Line, n)
		for j := 0; j < n; j++ {
			row[j] = i*n + j
			column[j] = j*n + i
		}
		lines = append(lines, row, column)
	}

	diag := make(Line, n)
	anti := make(Line, n)
	for i := 0; i < n; i++ {
		diag[i] = i*n + i
		anti[i] = (i+1)*n - (i + 1)
	}
	return append(lines, diag, anti)
}

// HasLine reports whether mark owns every cell of at least one line.
func HasLine(board Board, lines []Line, mark PlayerMark) bool {
	if mark == None {
		return false
	}
	for _, line := range lines {
		if lineOwnedBy(board, line, mark) {
			return true
		}
	}
	return false
}

func lineOwnedBy(board Board, line Line, mark PlayerMark) bool {
	if len(line) == 0 {
		return false
	}
	for _, idx := range line {
		if idx < 0 || idx >= len(board) || board[idx] != mark {
			return false
		}
	}
	return true
}
