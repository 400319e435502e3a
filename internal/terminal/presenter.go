package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/store"

	"github.com/muesli/termenv"
)

// Presenter renders a session as plain terminal output. Delayed tasks render
// from timer goroutines, so every write is serialized.
type Presenter struct {
	mu  sync.Mutex
	out *termenv.Output

	nameX string
	nameO string
}

// NewPresenter writes to w. Colours follow the terminal's capabilities;
// pass termenv.Ascii to disable them.
func NewPresenter(w io.Writer, profile termenv.Profile) *Presenter {
	return &Presenter{
		out:   termenv.NewOutput(w, termenv.WithProfile(profile)),
		nameX: store.DefaultPlayer1Name,
		nameO: store.DefaultPlayer2Name,
	}
}

func (p *Presenter) Status(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(p.out.String(text).Bold().String())
}

func (p *Presenter) Board(size int, board game.Board) {
	p.mu.Lock()
	defer p.mu.Unlock()

	width := len(strconv.Itoa(size * size))
	sep := strings.Repeat("-", size*(width+3)-1)

	var b strings.Builder
	for r, row := range board.Rows(size) {
		if r > 0 {
			b.WriteString(sep + "\n")
		}
		cells := make([]string, len(row))
		for c, mark := range row {
			cells[c] = " " + p.cell(r*size+c, mark, width) + " "
		}
		b.WriteString(strings.Join(cells, "|") + "\n")
	}
	fmt.Fprint(p.out, b.String())
}

func (p *Presenter) cell(index int, mark game.PlayerMark, width int) string {
	switch mark {
	case game.PlayerX:
		return p.out.String(pad(string(mark), width)).Foreground(p.out.Color("1")).Bold().String()
	case game.PlayerO:
		return p.out.String(pad(string(mark), width)).Foreground(p.out.Color("4")).Bold().String()
	default:
		return p.out.String(pad(strconv.Itoa(index+1), width)).Faint().String()
	}
}

func (p *Presenter) Scores(score store.ScoreRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(fmt.Sprintf("Score  %s (X): %d  |  %s (O): %d", p.nameX, score.X, p.nameO, score.O))
}

func (p *Presenter) Names(x, o string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nameX, p.nameO = x, o
	p.println(fmt.Sprintf("Players  X: %s  O: %s", x, o))
}

func (p *Presenter) ResetPrompt(open bool) {
	if !open {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(p.out.String("Reset the board? (yes/no)").Foreground(p.out.Color("3")).String())
}

// Message prints a line that is not part of the game state, such as help or
// an error.
func (p *Presenter) Message(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println(text)
}

func (p *Presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
