package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ctchen222/Tic-Tac-Toe-N/internal/bot"
	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/store"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	StatusSoloMode  = "Solo Mode: Play against the computer"
	StatusMultiMode = "Multiplayer Mode: Play against a friend"
	StatusTie       = "It's a Tie!"
)

var (
	ErrClosed         = errors.New("session closed")
	ErrNoResetPending = errors.New("no reset confirmation pending")
)

// Options tune a session.
type Options struct {
	InitialSize   int
	MaxSize       int
	ResetDelay    time.Duration
	ComputerDelay time.Duration
}

// DefaultOptions mirrors the browser game: 3×3 board, 5s before a finished
// board clears, 1s of computer "thinking".
func DefaultOptions() Options {
	return Options{
		InitialSize:   3,
		MaxSize:       10,
		ResetDelay:    5 * time.Second,
		ComputerDelay: 1 * time.Second,
	}
}

// View is a read-only copy of the session state.
type View struct {
	ID          string
	Size        int
	Board       game.Board
	Turn        game.PlayerMark
	Outcome     game.Outcome
	Score       store.ScoreRecord
	Names       store.PlayerNames
	DisplayX    string
	DisplayO    string
	Solo        bool
	ResetPrompt bool
	Epoch       uint64
}

// Session is the turn controller of one local game. Every event and every
// fired timer is serialized by mu, which makes the session the single thread
// of control over its game state.
type Session struct {
	ID string

	mu        sync.Mutex
	store     store.Store
	presenter Presenter
	scheduler Scheduler
	mover     bot.Mover
	opts      Options

	state       game.State
	lines       []game.Line
	outcome     game.Outcome
	profile     store.Profile
	resetPrompt bool

	// epoch invalidates delayed tasks scheduled before the last reset or resize.
	epoch    uint64
	nextTask uint64
	pending  map[uint64]Cancel
	// writes counts profile saves made by this session. Reload discards a
	// profile read before the latest of them.
	writes uint64
	// computerTask is the pending computer move, at most one at a time.
	computerTask uint64
	closed   bool
}

// New creates a session. Start must be called before the first event.
func New(id string, st store.Store, presenter Presenter, scheduler Scheduler, mover bot.Mover, opts Options) (*Session, error) {
	if opts.MaxSize < 1 {
		opts.MaxSize = DefaultOptions().MaxSize
	}
	if opts.InitialSize < 1 || opts.InitialSize > opts.MaxSize {
		return nil, fmt.Errorf("%w: initial size %d", game.ErrInvalidSize, opts.InitialSize)
	}
	state, err := game.NewState(opts.InitialSize)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		store:     st,
		presenter: presenter,
		scheduler: scheduler,
		mover:     mover,
		opts:      opts,
		state:     state,
		lines:     game.WinLines(opts.InitialSize),
		outcome:   game.Outcome{Status: game.Ongoing},
		profile:   store.DefaultProfile(),
		pending:   make(map[uint64]Cancel),
	}, nil
}

// Start loads the saved profile and renders the whole game. A profile that
// cannot be read is replaced by the defaults.
func (s *Session) Start(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.Start", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	profile, err := s.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Could not load profile, using defaults", "session.id", s.ID, "error", err)
		span.RecordError(err)
		profile = store.DefaultProfile()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = profile
	s.presenter.Board(s.state.Size, s.state.Board.Clone())
	s.presenter.Scores(s.profile.Score)
	s.renderNamesLocked()
	s.presenter.ResetPrompt(false)
	s.presenter.Status(s.modeStatusLocked())
}

// Reload re-reads the profile after it was changed by another session.
func (s *Session) Reload(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.Reload", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	writes := s.writes
	s.mu.Unlock()

	profile, err := s.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Could not reload profile", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not reload profile")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if writes != s.writes {
		// The save that raced this read publishes its own update.
		slog.DebugContext(ctx, "Discarding stale profile reload", "session.id", s.ID)
		span.SetAttributes(attribute.Bool("reload.stale", true))
		return
	}

	soloChanged := profile.Solo != s.profile.Solo
	s.profile = profile
	s.presenter.Scores(s.profile.Score)
	s.renderNamesLocked()
	if soloChanged {
		s.presenter.Status(s.modeStatusLocked())
		s.maybeScheduleComputerLocked(ctx)
	}
}

// SelectCell plays the human move at index. In solo mode the human always
// plays X. Invalid moves change nothing and return an error matching
// game.ErrInvalidMove.
func (s *Session) SelectCell(ctx context.Context, index int) error {
	ctx, span := tracer.Start(ctx, "session.SelectCell", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("move.index", index),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	by := s.state.Turn
	if s.profile.Solo {
		by = game.PlayerX
	}
	return s.playLocked(ctx, index, by)
}

// RequestReset opens the reset confirmation prompt.
func (s *Session) RequestReset(ctx context.Context) error {
	_, span := tracer.Start(ctx, "session.RequestReset", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.resetPrompt = true
	s.presenter.ResetPrompt(true)
	return nil
}

// ConfirmReset clears the board if a confirmation prompt is open.
func (s *Session) ConfirmReset(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "session.ConfirmReset", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.resetPrompt {
		return ErrNoResetPending
	}

	s.resetPrompt = false
	s.presenter.ResetPrompt(false)
	s.resetLocked(ctx)
	return nil
}

// CancelReset closes the confirmation prompt and keeps the board.
func (s *Session) CancelReset(ctx context.Context) error {
	_, span := tracer.Start(ctx, "session.CancelReset", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.resetPrompt = false
	s.presenter.ResetPrompt(false)
	return nil
}

// ChangeSize switches to an n×n board, recomputes the winning lines and
// starts a new game.
func (s *Session) ChangeSize(ctx context.Context, n int) error {
	ctx, span := tracer.Start(ctx, "session.ChangeSize", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("board.size", n),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if n < 1 || n > s.opts.MaxSize {
		span.SetStatus(codes.Error, "Invalid board size")
		return fmt.Errorf("%w: %d (allowed 1-%d)", game.ErrInvalidSize, n, s.opts.MaxSize)
	}

	state, lines, err := game.Resize(n)
	if err != nil {
		return err
	}
	s.state = state
	s.lines = lines
	s.resetLocked(ctx)
	return nil
}

// ResetScores sets both win counters back to zero.
func (s *Session) ResetScores(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "session.ResetScores", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.profile.Score = store.ScoreRecord{}
	s.presenter.Scores(s.profile.Score)
	s.saveScoreLocked(ctx)
	return nil
}

// UpdateNames stores new display names. Blank names fall back to the defaults.
func (s *Session) UpdateNames(ctx context.Context, player1, player2 string) error {
	ctx, span := tracer.Start(ctx, "session.UpdateNames", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	names := store.PlayerNames{
		Player1: strings.TrimSpace(player1),
		Player2: strings.TrimSpace(player2),
	}
	if names.Player1 == "" {
		names.Player1 = store.DefaultPlayer1Name
	}
	if names.Player2 == "" {
		names.Player2 = store.DefaultPlayer2Name
	}
	s.profile.Names = names

	s.writes++
	if err := s.store.SaveNames(ctx, names); err != nil {
		slog.ErrorContext(ctx, "Failed to save player names", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save player names")
	}
	s.renderNamesLocked()
	if !s.outcome.Terminal() {
		s.presenter.Status(s.turnStatusLocked())
	}
	return nil
}

// ToggleSoloMode switches between playing a friend and playing the computer.
func (s *Session) ToggleSoloMode(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "session.ToggleSoloMode", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.profile.Solo = !s.profile.Solo
	span.SetAttributes(attribute.Bool("session.solo", s.profile.Solo))

	s.writes++
	if err := s.store.SaveMode(ctx, s.profile.Solo); err != nil {
		slog.ErrorContext(ctx, "Failed to save solo mode", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save solo mode")
	}
	s.renderNamesLocked()
	s.presenter.Status(s.modeStatusLocked())
	s.maybeScheduleComputerLocked(ctx)
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		ID:          s.ID,
		Size:        s.state.Size,
		Board:       s.state.Board.Clone(),
		Turn:        s.state.Turn,
		Outcome:     s.outcome,
		Score:       s.profile.Score,
		Names:       s.profile.Names,
		DisplayX:    s.displayNameLocked(game.PlayerX),
		DisplayO:    s.displayNameLocked(game.PlayerO),
		Solo:        s.profile.Solo,
		ResetPrompt: s.resetPrompt,
		Epoch:       s.epoch,
	}
}

// Close cancels every pending task. Further events return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.bumpEpochLocked()
}

func (s *Session) playLocked(ctx context.Context, index int, by game.PlayerMark) error {
	span := trace.SpanFromContext(ctx)

	next, outcome, err := game.Apply(s.state, s.lines, index, by)
	if err != nil {
		counters.rejected.Add(ctx, 1)
		span.SetAttributes(attribute.Bool("move.valid", false))
		slog.DebugContext(ctx, "Ignoring invalid move", "session.id", s.ID, "move.index", index, "player", string(by), "error", err)
		return err
	}
	span.SetAttributes(attribute.Bool("move.valid", true))
	counters.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("player", string(by))))

	s.state = next
	s.outcome = outcome
	s.presenter.Board(s.state.Size, s.state.Board.Clone())

	switch outcome.Status {
	case game.Won:
		s.presenter.Status(fmt.Sprintf("%s Wins!", outcome.Winner))
		if outcome.Winner == game.PlayerX {
			s.profile.Score.X++
		} else {
			s.profile.Score.O++
		}
		s.presenter.Scores(s.profile.Score)
		s.saveScoreLocked(ctx)
		s.finishLocked(ctx, outcome)
	case game.Tied:
		s.presenter.Status(StatusTie)
		s.finishLocked(ctx, outcome)
	default:
		s.presenter.Status(s.turnStatusLocked())
		s.maybeScheduleComputerLocked(ctx)
	}
	return nil
}

func (s *Session) finishLocked(ctx context.Context, outcome game.Outcome) {
	counters.finished.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome.Status.String()),
		attribute.String("winner", string(outcome.Winner)),
	))
	slog.InfoContext(ctx, "Game finished", "session.id", s.ID, "outcome", outcome.Status.String(), "winner", string(outcome.Winner))

	s.scheduleLocked(ctx, "auto-reset", s.opts.ResetDelay, func(ctx context.Context) {
		s.resetLocked(ctx)
	})
}

func (s *Session) maybeScheduleComputerLocked(ctx context.Context) {
	s.cancelTaskLocked(s.computerTask)
	s.computerTask = 0
	if !s.profile.Solo || s.state.Turn != game.PlayerO || s.outcome.Terminal() {
		return
	}
	s.computerTask = s.scheduleLocked(ctx, "computer-move", s.opts.ComputerDelay, s.computerMoveLocked)
}

func (s *Session) computerMoveLocked(ctx context.Context) {
	if !s.profile.Solo {
		return
	}
	index, err := s.mover.ChooseMove(s.state.Board)
	if err != nil {
		slog.WarnContext(ctx, "Computer could not choose a move", "session.id", s.ID, "error", err)
		return
	}
	if err := s.playLocked(ctx, index, game.PlayerO); err != nil {
		slog.WarnContext(ctx, "Computer move rejected", "session.id", s.ID, "move.index", index, "error", err)
	}
}

// resetLocked starts a new game on the current size and invalidates every
// pending task of the previous one.
func (s *Session) resetLocked(ctx context.Context) {
	s.bumpEpochLocked()
	s.state = game.Reset(s.state)
	s.outcome = game.Outcome{Status: game.Ongoing}
	s.presenter.Board(s.state.Size, s.state.Board.Clone())
	s.presenter.Status(s.turnStatusLocked())
	slog.DebugContext(ctx, "Board reset", "session.id", s.ID, "board.size", s.state.Size, "epoch", s.epoch)
}

func (s *Session) scheduleLocked(ctx context.Context, name string, delay time.Duration, task func(context.Context)) uint64 {
	epoch := s.epoch
	s.nextTask++
	id := s.nextTask
	taskCtx := context.WithoutCancel(ctx)

	s.pending[id] = s.scheduler.AfterFunc(delay, func() {
		ctx, span := tracer.Start(taskCtx, "session.task."+name, trace.WithAttributes(
			attribute.String("session.id", s.ID),
			attribute.Int64("task.epoch", int64(epoch)),
		))
		defer span.End()

		s.mu.Lock()
		defer s.mu.Unlock()

		_, live := s.pending[id]
		delete(s.pending, id)
		if !live || s.closed || epoch != s.epoch {
			slog.DebugContext(ctx, "Dropping stale task", "session.id", s.ID, "task", name, "task.epoch", epoch, "epoch", s.epoch)
			span.SetAttributes(attribute.Bool("task.stale", true))
			return
		}
		task(ctx)
	})
	return id
}

func (s *Session) cancelTaskLocked(id uint64) {
	if cancel, ok := s.pending[id]; ok {
		cancel()
		delete(s.pending, id)
	}
}

func (s *Session) bumpEpochLocked() {
	s.epoch++
	for id, cancel := range s.pending {
		cancel()
		delete(s.pending, id)
	}
}

func (s *Session) saveScoreLocked(ctx context.Context) {
	s.writes++
	if err := s.store.SaveScore(ctx, s.profile.Score); err != nil {
		slog.ErrorContext(ctx, "Failed to save score", "session.id", s.ID, "error", err)
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save score")
	}
}

func (s *Session) renderNamesLocked() {
	s.presenter.Names(s.displayNameLocked(game.PlayerX), s.displayNameLocked(game.PlayerO))
}

func (s *Session) displayNameLocked(mark game.PlayerMark) string {
	if mark == game.PlayerX {
		return s.profile.Names.Player1
	}
	if s.profile.Solo {
		return store.ComputerName
	}
	return s.profile.Names.Player2
}

func (s *Session) turnStatusLocked() string {
	return fmt.Sprintf("%s's Turn", s.displayNameLocked(s.state.Turn))
}

func (s *Session) modeStatusLocked() string {
	if s.profile.Solo {
		return StatusSoloMode
	}
	return StatusMultiMode
}
