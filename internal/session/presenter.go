package session

import (
	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/store"
)

//go:generate mockgen -destination=mock/presenter_mock.go -package=mock ctchen222/Tic-Tac-Toe-N/internal/session Presenter

// Presenter renders the effects of session transitions. Calls are made while
// the session lock is held, so implementations must not call back into the
// session.
type Presenter interface {
	Status(text string)
	Board(size int, board game.Board)
	Scores(score store.ScoreRecord)
	Names(x, o string)
	ResetPrompt(open bool)
}
