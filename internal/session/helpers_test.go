package session

import (
	"sync"
	"time"

	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/store"
)

// manualScheduler queues tasks until the test fires them.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
	// ignoreCancel simulates a timer that already fired when it was cancelled.
	ignoreCancel bool
}

type manualTask struct {
	delay     time.Duration
	f         func()
	cancelled bool
	ran       bool
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTask{delay: d, f: f}
	m.tasks = append(m.tasks, t)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.ignoreCancel {
			t.cancelled = true
		}
	}
}

// pending returns the delays of tasks that have neither run nor been cancelled.
func (m *manualScheduler) pending() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []time.Duration
	for _, t := range m.tasks {
		if !t.cancelled && !t.ran {
			out = append(out, t.delay)
		}
	}
	return out
}

// fire runs every task queued so far; tasks queued while firing wait for the next call.
func (m *manualScheduler) fire() int {
	m.mu.Lock()
	var due []*manualTask
	for _, t := range m.tasks {
		if !t.cancelled && !t.ran {
			t.ran = true
			due = append(due, t)
		}
	}
	m.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// recordingPresenter keeps the latest rendered value of every effect.
type recordingPresenter struct {
	statuses []string
	size     int
	board    game.Board
	scores   store.ScoreRecord
	nameX    string
	nameO    string
	prompt   bool
	boards   int
}

func (p *recordingPresenter) Status(text string) { p.statuses = append(p.statuses, text) }

func (p *recordingPresenter) Board(size int, board game.Board) {
	p.size = size
	p.board = board
	p.boards++
}

func (p *recordingPresenter) Scores(score store.ScoreRecord) { p.scores = score }

func (p *recordingPresenter) Names(x, o string) {
	p.nameX = x
	p.nameO = o
}

func (p *recordingPresenter) ResetPrompt(open bool) { p.prompt = open }

func (p *recordingPresenter) status() string {
	if len(p.statuses) == 0 {
		return ""
	}
	return p.statuses[len(p.statuses)-1]
}

// scriptedMover plays the given cells in order.
type scriptedMover struct {
	moves []int
	calls int
}

func (m *scriptedMover) ChooseMove(game.Board) (int, error) {
	idx := m.moves[m.calls%len(m.moves)]
	m.calls++
	return idx, nil
}
